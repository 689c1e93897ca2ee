package flight

import "errors"

var (
	// ErrNegativeEnergy indicates a battery energy below zero. Negative
	// energy is rejected outright, never clamped to zero.
	ErrNegativeEnergy = errors.New("flight: negative battery energy")

	// ErrInvalidSpec indicates a motor spec with non-positive thrust or
	// mass.
	ErrInvalidSpec = errors.New("flight: non-positive motor spec")

	// ErrEmptyRange indicates a curve request over an empty battery grid.
	ErrEmptyRange = errors.New("flight: empty battery range")
)
