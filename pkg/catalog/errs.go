package catalog

import "errors"

var (
	// ErrMotorNotFound indicates a lookup for a name that is not in the
	// catalog. No fallback motor is ever substituted.
	ErrMotorNotFound = errors.New("catalog: motor not found")

	// ErrBadName indicates a motor name that is empty or contains the
	// reserved substring " (", which would break display-label round-trips.
	ErrBadName = errors.New("catalog: invalid motor name")

	// ErrDuplicateName indicates two entries sharing a name.
	ErrDuplicateName = errors.New("catalog: duplicate motor name")

	// ErrBadSpec indicates an entry with non-positive thrust or mass.
	ErrBadSpec = errors.New("catalog: non-positive motor spec")
)
