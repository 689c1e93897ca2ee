package flight

// Constants holds the fixed physical coefficients of the lift model.
// Units:
//   - G: m/s²
//   - EmptyMassKg/PayloadKg: kg
//   - SpecificEnergy: Wh per kg of battery
//   - PowerCoeff: Watts of hover power per kg of takeoff mass
//   - TWMin/TWRec: dimensionless thrust-to-weight targets
type Constants struct {
	G              float64
	EmptyMassKg    float64
	PayloadKg      float64
	SpecificEnergy float64
	PowerCoeff     float64
	TWMin          float64
	TWRec          float64
}

// _defaultConstants returns the coefficients the calculator ships with:
// a 5 kg frame carrying a fixed 10 kg payload, 200 Wh/kg packs and a
// 200 W/kg hover coefficient.
func _defaultConstants() *Constants {
	return &Constants{
		G:              9.81,  // m/s²
		EmptyMassKg:    5.0,   // frame + electronics
		PayloadKg:      10.0,  // fixed mission payload
		SpecificEnergy: 200.0, // Wh/kg
		PowerCoeff:     200.0, // W/kg
		TWMin:          1.6,   // minimum safe T/W
		TWRec:          2.0,   // recommended T/W
	}
}

// FlightTimeCeilingMin returns the asymptotic hover-time bound in minutes
// as battery energy grows without limit: 60 * SpecificEnergy / PowerCoeff.
// At default constants this is the "one hour ceiling".
func (c Constants) FlightTimeCeilingMin() float64 {
	if c.PowerCoeff <= 0 {
		return 0
	}
	return 60 * c.SpecificEnergy / c.PowerCoeff
}

// MotorSpec describes one catalog motor: maximum single-motor thrust in
// kgf and the motor's own mass in kg.
type MotorSpec struct {
	ThrustKg    float64 `json:"thrust_kg"`
	MotorMassKg float64 `json:"motor_mass_kg"`
}

// ThrustToWeight returns the bare motor thrust over its own mass,
// the figure motor datasheets quote.
func (s MotorSpec) ThrustToWeight() float64 {
	if s.MotorMassKg <= 0 {
		return 0
	}
	return s.ThrustKg / s.MotorMassKg
}

// Result is the full set of derived quantities for one (motor, battery)
// selection.
type Result struct {
	BatteryMassKg    float64 `json:"battery_mass_kg"`
	TotalThrustKgf   float64 `json:"total_thrust_kgf"`
	TotalThrustN     float64 `json:"total_thrust_n"`
	TotalMassKg      float64 `json:"total_mass_kg"`
	AvailableExtraKg float64 `json:"available_extra_kg"`
	HoverPowerW      float64 `json:"hover_power_w"`
	FlightTimeMin    float64 `json:"flight_time_min"`
	TWRatio          float64 `json:"tw_ratio"`
}

// Thresholds is the pair of battery energies at which the thrust-to-weight
// ratio crosses the minimum and recommended targets. A zero value means the
// motor can never reach that target at any battery size: the corresponding
// zone is empty, not anchored at 0 Wh.
type Thresholds struct {
	MinWh float64 `json:"min_wh"`
	RecWh float64 `json:"rec_wh"`
}

// Zone is the advisory safety classification of a thrust-to-weight ratio.
type Zone int

const (
	ZoneCritical Zone = iota // T/W below the minimum target
	ZoneWarning              // between minimum and recommended
	ZoneOK                   // at or above recommended
)

func (z Zone) String() string {
	switch z {
	case ZoneCritical:
		return "CRITICAL"
	case ZoneWarning:
		return "WARNING"
	case ZoneOK:
		return "OK"
	default:
		return "UNKNOWN"
	}
}
