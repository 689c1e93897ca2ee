package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bramerlabs/lifttime/pkg/catalog"
	"github.com/bramerlabs/lifttime/pkg/flight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneBands_AllThreePresent(t *testing.T) {
	// MN8012: rec=5024, min=7030 inside the default 1000..20000 range
	bands := zoneBands(flight.Thresholds{MinWh: 7030, RecWh: 5024}, 1000, 20000)
	require.Len(t, bands, 3)

	assert.Equal(t, "safe", bands[0].Label)
	assert.Equal(t, 1000.0, bands[0].FromWh)
	assert.Equal(t, 5024.0, bands[0].ToWh)

	assert.Equal(t, "warning", bands[1].Label)
	assert.Equal(t, 5024.0, bands[1].FromWh)
	assert.Equal(t, 7030.0, bands[1].ToWh)

	assert.Equal(t, "critical", bands[2].Label)
	assert.Equal(t, 7030.0, bands[2].FromWh)
	assert.Equal(t, 20000.0, bands[2].ToWh)
}

func TestZoneBands_SkipsEmptyZones(t *testing.T) {
	// both targets unreachable: everything is critical
	bands := zoneBands(flight.Thresholds{}, 1000, 20000)
	require.Len(t, bands, 1)
	assert.Equal(t, "critical", bands[0].Label)
	assert.Equal(t, 1000.0, bands[0].FromWh)

	// recommended unreachable, minimum inside the range
	bands = zoneBands(flight.Thresholds{MinWh: 400}, 100, 20000)
	require.Len(t, bands, 2)
	assert.Equal(t, "warning", bands[0].Label)
	assert.Equal(t, 100.0, bands[0].FromWh)
	assert.Equal(t, 400.0, bands[0].ToWh)
	assert.Equal(t, "critical", bands[1].Label)

	// thresholds beyond the plotted range: safe only
	bands = zoneBands(flight.Thresholds{MinWh: 90000, RecWh: 50000}, 1000, 20000)
	require.Len(t, bands, 1)
	assert.Equal(t, "safe", bands[0].Label)
	assert.Equal(t, 20000.0, bands[0].ToWh)
}

func TestBuildSweep_RowsMatchModel(t *testing.T) {
	m := flight.New(nil)
	spec := flight.MotorSpec{ThrustKg: 11.8, MotorMassKg: 0.351}

	rows, err := buildSweep(m, spec, 1000, 20000, 20)
	require.NoError(t, err)
	require.Len(t, rows, 20)

	assert.Equal(t, 1000.0, rows[0].BatteryWh)
	assert.Equal(t, 20000.0, rows[19].BatteryWh)

	for i, r := range rows {
		res, err := m.Compute(spec, r.BatteryWh)
		require.NoError(t, err)
		require.InDelta(t, res.FlightTimeMin, r.FlightTimeMin, 1e-12, "row %d", i)
		require.Equal(t, m.Classify(res.TWRatio).String(), r.Zone, "row %d", i)
	}

	// sweep crosses from OK through WARNING into CRITICAL as battery grows
	assert.Equal(t, "OK", rows[0].Zone)
	assert.Equal(t, "CRITICAL", rows[19].Zone)
}

func TestWriteHTML_RendersBandsAndCurves(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.html")

	cat := catalog.Default()
	m := flight.New(nil)
	spec, err := cat.Lookup("MN8012 KV100")
	require.NoError(t, err)

	res, err := m.Compute(spec, 6000)
	require.NoError(t, err)
	th, err := m.Thresholds(spec)
	require.NoError(t, err)

	require.NoError(t, writeHTML(path, cat, m, "MN8012 KV100", 6000, res, th, 1000, 20000, 50))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(b)

	assert.Contains(t, body, "MN8012 KV100 (11.8 kgf)")
	assert.Contains(t, body, "40.0 min")
	assert.Contains(t, body, "WARNING")
	// one polyline per cataloged motor
	assert.Equal(t, cat.Len(), strings.Count(body, "<polyline"), "one curve per motor")
	// three shaded bands for this motor at the default range
	assert.Equal(t, 3, strings.Count(body, "<rect"))
}
