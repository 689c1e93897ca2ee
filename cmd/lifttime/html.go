package main

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/bramerlabs/lifttime/pkg/catalog"
	"github.com/bramerlabs/lifttime/pkg/flight"
	"github.com/bramerlabs/lifttime/pkg/mathutil"
	"github.com/bramerlabs/lifttime/pkg/units"
)

const (
	chartW = 720
	chartH = 320
)

// band is one shaded safety region on the battery axis, in Wh.
type band struct {
	Label  string
	FromWh float64
	ToWh   float64
	Fill   string

	// pixel-space, filled in by chartData
	X float64
	W float64
}

// zoneBands clips the three safety regions to the plotted battery range.
// Zero- and negative-width bands are dropped: a threshold of 0 means the
// target is unreachable and its zone is empty, never anchored at 0 Wh.
func zoneBands(th flight.Thresholds, fromWh, toWh float64) []band {
	candidates := []band{
		{Label: "safe", FromWh: fromWh, ToWh: min(th.RecWh, toWh), Fill: "#d9ead3"},
		{Label: "warning", FromWh: max(th.RecWh, fromWh), ToWh: min(th.MinWh, toWh), Fill: "#fff2cc"},
		{Label: "critical", FromWh: max(th.MinWh, fromWh), ToWh: toWh, Fill: "#f4cccc"},
	}
	out := make([]band, 0, 3)
	for _, b := range candidates {
		if b.ToWh > b.FromWh {
			out = append(out, b)
		}
	}
	return out
}

type polyline struct {
	Name   string
	Color  string
	Points string
}

type chart struct {
	W, H     int
	Bands    []band
	Lines    []polyline
	FromWh   float64
	ToWh     float64
	TimeMax  float64
	Selected string
}

var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#8c564b", "#e377c2", "#7f7f7f",
}

// chartData renders one flight-time curve per cataloged motor and shades
// the selected motor's safety bands.
func chartData(cat *catalog.Catalog, m *flight.Model, selected string,
	th flight.Thresholds, fromWh, toWh float64, points int,
) (chart, error) {
	ch := chart{
		W: chartW, H: chartH,
		FromWh: fromWh, ToWh: toWh,
		TimeMax:  m.Constants().FlightTimeCeilingMin(),
		Selected: selected,
	}
	if ch.TimeMax <= 0 {
		ch.TimeMax = 1
	}

	xpx := func(wh float64) float64 { return (wh - fromWh) / (toWh - fromWh) * chartW }
	ypx := func(min float64) float64 { return chartH - min/ch.TimeMax*chartH }

	for _, b := range zoneBands(th, fromWh, toWh) {
		b.X = xpx(b.FromWh)
		b.W = xpx(b.ToWh) - xpx(b.FromWh)
		ch.Bands = append(ch.Bands, b)
	}

	grid := mathutil.Linspace(fromWh, toWh, points)
	for i, e := range cat.Entries() {
		seq, err := m.Curve(e.Spec, grid)
		if err != nil {
			return chart{}, err
		}
		var sb strings.Builder
		for wh, min := range seq {
			fmt.Fprintf(&sb, "%.1f,%.1f ", xpx(wh), ypx(min))
		}
		ch.Lines = append(ch.Lines, polyline{
			Name:   e.Name,
			Color:  palette[i%len(palette)],
			Points: strings.TrimSpace(sb.String()),
		})
	}
	return ch, nil
}

type reportView struct {
	Label     string
	BatteryWh units.WattHours
	Battery   units.Kilograms
	Thrust    units.KilogramsForce
	ThrustN   units.Newtons
	TotalMass units.Kilograms
	Hover     units.Watts
	Time      units.Minutes
	Extra     units.Kilograms
	TW        units.Ratio
	Zone      string
	Ceiling   units.Minutes
	MinWh     float64
	RecWh     float64
	Chart     chart
}

func writeHTML(path string, cat *catalog.Catalog, m *flight.Model, name string,
	batteryWh float64, res flight.Result, th flight.Thresholds,
	fromWh, toWh float64, points int,
) error {
	ch, err := chartData(cat, m, name, th, fromWh, toWh, points)
	if err != nil {
		return err
	}
	label, err := cat.Label(name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return tpl.Execute(f, reportView{
		Label:     label,
		BatteryWh: units.WattHours(batteryWh),
		Battery:   units.Kilograms(res.BatteryMassKg),
		Thrust:    units.KilogramsForce(res.TotalThrustKgf),
		ThrustN:   units.Newtons(res.TotalThrustN),
		TotalMass: units.Kilograms(res.TotalMassKg),
		Hover:     units.Watts(res.HoverPowerW),
		Time:      units.Minutes(res.FlightTimeMin),
		Extra:     units.Kilograms(res.AvailableExtraKg),
		TW:        units.Ratio(res.TWRatio),
		Zone:      m.Classify(res.TWRatio).String(),
		Ceiling:   units.Minutes(m.Constants().FlightTimeCeilingMin()),
		MinWh:     th.MinWh,
		RecWh:     th.RecWh,
		Chart:     ch,
	})
}

var tpl = template.Must(template.New("rep").Parse(`<!doctype html>
<html lang="en"><meta charset="utf-8">
<title>Lifttime Report</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Helvetica,Arial,sans-serif;margin:20px}
h1,h2{margin:0 0 8px}
ul{margin:6px 0 14px;padding-left:20px}
.small{color:#555}
.badge{display:inline-block;background:#eef;border:1px solid #ccd;padding:2px 6px;border-radius:6px;margin-right:6px;}
svg{border:1px solid #ddd;background:#fff}
.legend span{margin-right:14px}
</style>

<h1>Lifttime Report</h1>
<p class="small"><span class="badge">{{.Label}}</span> battery {{.BatteryWh}} &nbsp;|&nbsp; zone: <b>{{.Zone}}</b></p>

<h2>Results</h2>
<ul>
<li>Battery Mass: {{.Battery}}</li>
<li>Max Lift Capability: {{.Thrust}} ({{.ThrustN}})</li>
<li>Total Take-off Mass: {{.TotalMass}}</li>
<li>Hover Power: {{.Hover}}</li>
<li>Flight Time: {{.Time}}</li>
<li>Avail. Extra Payload: {{.Extra}}</li>
<li>Thrust-to-Weight: {{.TW}}</li>
</ul>

<h2>Safety thresholds</h2>
<ul>
{{if gt .RecWh 0.0}}<li>T/W at recommended target up to {{printf "%.0f" .RecWh}} Wh</li>{{else}}<li>Recommended target unreachable for this motor</li>{{end}}
{{if gt .MinWh 0.0}}<li>T/W at minimum target up to {{printf "%.0f" .MinWh}} Wh</li>{{else}}<li>Minimum target unreachable for this motor</li>{{end}}
<li>Time Ceiling: flight time approaches {{.Ceiling}} as battery grows, because every added watt-hour also adds mass.</li>
</ul>

<h2>Flight time vs battery energy</h2>
<p class="small">Shaded bands show the safety zones for {{.Chart.Selected}} ({{printf "%.0f" .Chart.FromWh}}&ndash;{{printf "%.0f" .Chart.ToWh}} Wh, y up to {{printf "%.0f" .Chart.TimeMax}} min).</p>
<svg width="{{.Chart.W}}" height="{{.Chart.H}}" viewBox="0 0 {{.Chart.W}} {{.Chart.H}}">
{{range .Chart.Bands}}  <rect x="{{printf "%.1f" .X}}" y="0" width="{{printf "%.1f" .W}}" height="{{$.Chart.H}}" fill="{{.Fill}}"><title>{{.Label}}</title></rect>
{{end}}{{range .Chart.Lines}}  <polyline fill="none" stroke="{{.Color}}" stroke-width="{{if eq .Name $.Chart.Selected}}2.5{{else}}1.2{{end}}" points="{{.Points}}"><title>{{.Name}}</title></polyline>
{{end}}</svg>
<p class="legend">
{{range .Chart.Lines}}<span style="color:{{.Color}}">&#9644; {{.Name}}</span>{{end}}
</p>
</html>`))
