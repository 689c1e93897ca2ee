package flight

import (
	"fmt"
	"iter"

	"github.com/bramerlabs/lifttime/pkg/mathutil"
)

// Octocopter load split: 4 motors at full throttle and 4 held back at 70%,
// so total thrust is thrust_per_motor * 6.8. The asymmetric split is a fixed
// frame assumption, preserved as given.
const (
	motorsAtFull    = 4
	motorsDerated   = 4
	deratedThrottle = 0.7

	effectiveMotors = motorsAtFull + motorsDerated*deratedThrottle
)

// Model evaluates the closed-form lift and endurance formulas for one set
// of constants. All methods are pure and safe for concurrent use.
type Model struct {
	c Constants
}

// New creates a model with the given constants. Fields > 0 in cfg override
// defaults; non-positive fields are treated as "unset" and defaulted. When
// overrides leave the recommended T/W target below the minimum one, the
// recommended target is raised to match so the warning band collapses
// instead of inverting.
func New(cfg *Constants) *Model {
	base := _defaultConstants()

	if cfg == nil {
		return &Model{c: *base}
	}

	merged := *base
	if cfg.G > 0 {
		merged.G = cfg.G
	}
	if cfg.EmptyMassKg > 0 {
		merged.EmptyMassKg = cfg.EmptyMassKg
	}
	if cfg.PayloadKg > 0 {
		merged.PayloadKg = cfg.PayloadKg
	}
	if cfg.SpecificEnergy > 0 {
		merged.SpecificEnergy = cfg.SpecificEnergy
	}
	if cfg.PowerCoeff > 0 {
		merged.PowerCoeff = cfg.PowerCoeff
	}
	if cfg.TWMin > 0 {
		merged.TWMin = cfg.TWMin
	}
	if cfg.TWRec > 0 {
		merged.TWRec = cfg.TWRec
	}

	if merged.TWRec < merged.TWMin {
		merged.TWRec = merged.TWMin
	}

	return &Model{c: merged}
}

// Constants returns the merged constants the model evaluates with.
func (m *Model) Constants() Constants { return m.c }

func validateSpec(spec MotorSpec) error {
	if spec.ThrustKg <= 0 || spec.MotorMassKg <= 0 {
		return fmt.Errorf("%w: thrust=%g kgf, mass=%g kg", ErrInvalidSpec, spec.ThrustKg, spec.MotorMassKg)
	}
	return nil
}

// Compute derives every output quantity for a motor at a given battery
// energy. batteryWh must be >= 0; zero is a valid degenerate input and
// yields zero flight time.
func (m *Model) Compute(spec MotorSpec, batteryWh float64) (Result, error) {
	if err := validateSpec(spec); err != nil {
		return Result{}, err
	}
	if batteryWh < 0 {
		return Result{}, fmt.Errorf("%w: %g Wh", ErrNegativeEnergy, batteryWh)
	}

	batteryMass := mathutil.SafeDiv(batteryWh, m.c.SpecificEnergy)
	totalThrust := spec.ThrustKg * effectiveMotors
	totalMass := m.c.EmptyMassKg + batteryMass + m.c.PayloadKg
	hoverPower := totalMass * m.c.PowerCoeff

	// hoverPower > 0 always holds at the shipped constants (frame+payload
	// mass is fixed), but the guard stays for degenerate overrides.
	var flightMin float64
	if hoverPower > 0 {
		flightMin = (batteryWh / hoverPower) * 60
	}

	var tw float64
	if totalMass > 0 {
		tw = totalThrust / totalMass
	}

	return Result{
		BatteryMassKg:    batteryMass,
		TotalThrustKgf:   totalThrust,
		TotalThrustN:     totalThrust * m.c.G,
		TotalMassKg:      totalMass,
		AvailableExtraKg: mathutil.ClampMin(totalThrust-totalMass, 0),
		HoverPowerW:      hoverPower,
		FlightTimeMin:    flightMin,
		TWRatio:          tw,
	}, nil
}

// thresholdWh inverts the thrust/mass relation for one T/W target:
// solving totalThrust / (empty + batteryMass + payload) = target for
// batteryMass and converting to Wh. Floored at 0: a motor too weak to ever
// reach the target reports 0, meaning "unreachable".
func (m *Model) thresholdWh(spec MotorSpec, target float64) float64 {
	if target <= 0 {
		return 0
	}
	batteryMass := spec.ThrustKg*effectiveMotors/target - m.c.EmptyMassKg - m.c.PayloadKg
	return mathutil.ClampMin(batteryMass*m.c.SpecificEnergy, 0)
}

// Thresholds returns the battery energies at which the motor's T/W ratio
// equals the minimum and recommended targets. Whenever TWRec >= TWMin (the
// model guarantees it), RecWh <= MinWh: more battery mass lowers T/W, so
// the stricter target is crossed first.
func (m *Model) Thresholds(spec MotorSpec) (Thresholds, error) {
	if err := validateSpec(spec); err != nil {
		return Thresholds{}, err
	}
	return Thresholds{
		MinWh: m.thresholdWh(spec, m.c.TWMin),
		RecWh: m.thresholdWh(spec, m.c.TWRec),
	}, nil
}

// Curve returns a restartable sequence of (batteryWh, flightTimeMin)
// samples over the given battery grid, for plotting endurance against
// battery size. The sequence is pure: ranging over it twice yields the
// same points. Grid entries are evaluated in order; negative entries stop
// the sequence early rather than producing a clamped sample.
func (m *Model) Curve(spec MotorSpec, batteries []float64) (iter.Seq2[float64, float64], error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}
	if len(batteries) == 0 {
		return nil, ErrEmptyRange
	}
	return func(yield func(float64, float64) bool) {
		for _, wh := range batteries {
			res, err := m.Compute(spec, wh)
			if err != nil {
				return
			}
			if !yield(wh, res.FlightTimeMin) {
				return
			}
		}
	}, nil
}

// Classify maps a T/W ratio onto the advisory safety zones: CRITICAL below
// the minimum target, WARNING below the recommended one, OK otherwise.
func (m *Model) Classify(twRatio float64) Zone {
	switch {
	case twRatio < m.c.TWMin:
		return ZoneCritical
	case twRatio < m.c.TWRec:
		return ZoneWarning
	default:
		return ZoneOK
	}
}
