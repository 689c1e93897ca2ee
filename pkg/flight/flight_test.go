package flight

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bramerlabs/lifttime/pkg/mathutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reference motor used across tests (MN8012-class heavy multirotor motor)
var mn8012 = MotorSpec{ThrustKg: 11.8, MotorMassKg: 0.351}

func TestCompute_ReferenceScenario_WithLogs(t *testing.T) {
	m := New(nil)

	res, err := m.Compute(mn8012, 6000)
	require.NoError(t, err)

	// hand-computed: 6000/200=30 kg battery; 11.8*6.8=80.24 kgf;
	// 5+30+10=45 kg; 45*200=9000 W; 6000/9000*60=40 min
	assert.InDelta(t, 30.0, res.BatteryMassKg, 1e-9)
	assert.InDelta(t, 80.24, res.TotalThrustKgf, 1e-9)
	assert.InDelta(t, 80.24*9.81, res.TotalThrustN, 1e-9)
	assert.InDelta(t, 45.0, res.TotalMassKg, 1e-9)
	assert.InDelta(t, 9000.0, res.HoverPowerW, 1e-9)
	assert.InDelta(t, 40.0, res.FlightTimeMin, 1e-9)
	assert.InDelta(t, 80.24/45.0, res.TWRatio, 1e-9)
	assert.InDelta(t, 80.24-45.0, res.AvailableExtraKg, 1e-9)

	t.Logf("battery=%.2fkg thrust=%.2fkgf (%.0fN) mass=%.2fkg hover=%.0fW t=%.1fmin tw=%.2f extra=%.2fkg",
		res.BatteryMassKg, res.TotalThrustKgf, res.TotalThrustN, res.TotalMassKg,
		res.HoverPowerW, res.FlightTimeMin, res.TWRatio, res.AvailableExtraKg)
}

func TestCompute_ZeroBattery(t *testing.T) {
	m := New(nil)

	for _, spec := range []MotorSpec{
		{ThrustKg: 4.0, MotorMassKg: 0.32},
		mn8012,
		{ThrustKg: 102.0, MotorMassKg: 9.1},
	} {
		res, err := m.Compute(spec, 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, res.BatteryMassKg)
		assert.InDelta(t, 15.0, res.TotalMassKg, 1e-9, "empty frame + fixed payload only")
		assert.InDelta(t, 3000.0, res.HoverPowerW, 1e-9)
		assert.Equal(t, 0.0, res.FlightTimeMin)
	}
}

func TestCompute_RejectsInvalidInput(t *testing.T) {
	m := New(nil)

	_, err := m.Compute(mn8012, -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeEnergy)

	_, err = m.Compute(MotorSpec{ThrustKg: 0, MotorMassKg: 0.3}, 1000)
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = m.Compute(MotorSpec{ThrustKg: 5, MotorMassKg: -0.1}, 1000)
	assert.ErrorIs(t, err, ErrInvalidSpec)

	_, err = m.Thresholds(MotorSpec{})
	assert.ErrorIs(t, err, ErrInvalidSpec)
}

func TestFlightTime_StrictlyIncreasingAndBounded(t *testing.T) {
	m := New(nil)
	ceiling := m.Constants().FlightTimeCeilingMin()
	require.InDelta(t, 60.0, ceiling, 1e-9, "one hour ceiling at shipped constants")

	prev := -1.0
	for _, wh := range mathutil.Linspace(0, 500_000, 101) {
		res, err := m.Compute(mn8012, wh)
		require.NoError(t, err)
		require.Greater(t, res.FlightTimeMin, prev, "flight time must grow with battery energy (wh=%g)", wh)
		require.Less(t, res.FlightTimeMin, ceiling, "flight time must stay under the asymptote (wh=%g)", wh)
		prev = res.FlightTimeMin
	}
}

func TestAvailableExtra_NeverNegative(t *testing.T) {
	m := New(nil)

	// weakest catalog-class motor with a huge battery: thrust deficit
	res, err := m.Compute(MotorSpec{ThrustKg: 4.0, MotorMassKg: 0.32}, 20000)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.AvailableExtraKg)
	assert.Less(t, res.TWRatio, 1.0, "sanity: this craft cannot lift itself")
}

func TestThresholds_ReferenceMotor(t *testing.T) {
	m := New(nil)

	th, err := m.Thresholds(mn8012)
	require.NoError(t, err)

	// total thrust 80.24 kgf:
	// min: (80.24/1.6 - 15) * 200 = 7030 Wh
	// rec: (80.24/2.0 - 15) * 200 = 5024 Wh
	assert.InDelta(t, 7030.0, th.MinWh, 1e-9)
	assert.InDelta(t, 5024.0, th.RecWh, 1e-9)
	assert.LessOrEqual(t, th.RecWh, th.MinWh, "stricter target crossed at smaller battery")

	// at each threshold the ratio equals its target exactly
	res, err := m.Compute(mn8012, th.MinWh)
	require.NoError(t, err)
	assert.InDelta(t, m.Constants().TWMin, res.TWRatio, 1e-9)

	res, err = m.Compute(mn8012, th.RecWh)
	require.NoError(t, err)
	assert.InDelta(t, m.Constants().TWRec, res.TWRatio, 1e-9)
}

func TestThresholds_UnreachableTargetIsZero(t *testing.T) {
	m := New(nil)

	// 1 kgf per motor -> 6.8 kgf total; even an empty battery leaves
	// T/W = 6.8/15 < 1, far below both targets
	th, err := m.Thresholds(MotorSpec{ThrustKg: 1.0, MotorMassKg: 0.1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, th.MinWh, "unreachable target must floor at zero")
	assert.Equal(t, 0.0, th.RecWh)
}

func TestCurve_RestartableAndConsistent(t *testing.T) {
	m := New(nil)
	grid := mathutil.Linspace(1000, 20000, 50)

	seq, err := m.Curve(mn8012, grid)
	require.NoError(t, err)

	collect := func() (xs, ys []float64) {
		for wh, min := range seq {
			xs = append(xs, wh)
			ys = append(ys, min)
		}
		return
	}

	xs1, ys1 := collect()
	xs2, ys2 := collect()
	require.Len(t, xs1, len(grid))
	assert.Equal(t, xs1, xs2, "sequence must be restartable")
	assert.Equal(t, ys1, ys2)

	for i, wh := range xs1 {
		res, err := m.Compute(mn8012, wh)
		require.NoError(t, err)
		require.InDelta(t, res.FlightTimeMin, ys1[i], 1e-12, "curve point %d must match Compute", i)
	}
}

func TestCurve_EmptyGrid(t *testing.T) {
	m := New(nil)
	_, err := m.Curve(mn8012, nil)
	assert.True(t, errors.Is(err, ErrEmptyRange))
}

func TestClassify_Boundaries(t *testing.T) {
	m := New(nil)

	cases := []struct {
		tw   float64
		want Zone
	}{
		{0.0, ZoneCritical},
		{1.59, ZoneCritical},
		{1.6, ZoneWarning}, // inclusive lower bound of the warning band
		{1.99, ZoneWarning},
		{2.0, ZoneOK},
		{3.7, ZoneOK},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, m.Classify(tc.tw), "tw=%.2f", tc.tw)
	}

	assert.Equal(t, "CRITICAL", ZoneCritical.String())
	assert.Equal(t, "WARNING", ZoneWarning.String())
	assert.Equal(t, "OK", ZoneOK.String())
}

func TestNew_OverrideMerge(t *testing.T) {
	// nil config: pure defaults
	m := New(nil)
	assert.Equal(t, *_defaultConstants(), m.Constants())

	// positive fields override, zero fields keep defaults
	m = New(&Constants{PayloadKg: 2.5, TWMin: 1.2})
	c := m.Constants()
	assert.Equal(t, 2.5, c.PayloadKg)
	assert.Equal(t, 1.2, c.TWMin)
	assert.Equal(t, 5.0, c.EmptyMassKg)
	assert.Equal(t, 200.0, c.SpecificEnergy)

	// negative fields are "unset"
	m = New(&Constants{EmptyMassKg: -3})
	assert.Equal(t, 5.0, m.Constants().EmptyMassKg)

	// inverted targets collapse rather than invert
	m = New(&Constants{TWMin: 2.4, TWRec: 1.1})
	c = m.Constants()
	assert.Equal(t, 2.4, c.TWMin)
	assert.Equal(t, 2.4, c.TWRec)
}

func TestMotorSpec_ThrustToWeight(t *testing.T) {
	assert.InDelta(t, 11.8/0.351, mn8012.ThrustToWeight(), 1e-9)
	assert.Equal(t, 0.0, MotorSpec{ThrustKg: 5}.ThrustToWeight())
}

func ExampleModel_Compute() {
	m := New(nil)
	res, _ := m.Compute(MotorSpec{ThrustKg: 11.8, MotorMassKg: 0.351}, 6000)
	fmt.Printf("t=%.1f min tw=%.2f:1 zone=%s\n", res.FlightTimeMin, res.TWRatio, m.Classify(res.TWRatio))
	// Output: t=40.0 min tw=1.78:1 zone=WARNING
}
