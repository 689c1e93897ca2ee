// Package flight implements the closed-form lift and endurance model for an
// eight-rotor drone carrying a fixed payload. It converts a motor spec and a
// battery energy into thrust, takeoff mass, hover power, flight time and
// thrust-to-weight figures, plus the battery-energy thresholds at which the
// craft crosses the minimum and recommended T/W targets.
//
// Overview
//
//   - Model:
//     New(cfg *Constants) merges user overrides over shipped defaults
//     (positive fields override, everything else keeps its default) and
//     returns an immutable evaluator. All methods are pure, O(1) apart from
//     Curve which is O(len(grid)), and safe for concurrent use.
//
//   - Compute(spec, batteryWh) -> Result:
//     battery mass   = batteryWh / SpecificEnergy
//     total thrust   = spec.ThrustKg * 6.8      (4 motors @100% + 4 @70%)
//     total mass     = EmptyMassKg + battery mass + PayloadKg
//     hover power    = total mass * PowerCoeff
//     flight time    = batteryWh / hover power * 60   (guarded)
//     T/W ratio      = total thrust / total mass       (guarded)
//     available extra payload = max(0, total thrust - total mass)
//
//   - Thresholds(spec) -> {MinWh, RecWh}:
//     the battery energies where T/W equals TWMin resp. TWRec, obtained by
//     inverting the thrust/mass relation for battery mass. Floored at 0;
//     zero means the target is unreachable for that motor, so callers must
//     treat the corresponding zone as empty rather than starting at 0 Wh.
//
//   - Curve(spec, grid) -> iter.Seq2[batteryWh, flightTimeMin]:
//     restartable plotting sequence, one sample per grid point.
//
//   - Classify(tw) -> Zone:
//     CRITICAL below TWMin, WARNING below TWRec, OK otherwise. Advisory
//     only; no computation is withheld for a bad ratio.
//
// Errors (errs.go):
//
//	ErrNegativeEnergy : batteryWh < 0
//	ErrInvalidSpec    : thrust or motor mass <= 0
//	ErrEmptyRange     : Curve called with an empty grid
//
// Flight time grows with battery energy but is bounded: as batteryWh → ∞
// the hover time approaches 60*SpecificEnergy/PowerCoeff minutes (one hour
// at the shipped constants), because every added watt-hour also adds mass
// that must be kept aloft.
//
// See also pkg/catalog for the motor table feeding MotorSpec values.
package flight
