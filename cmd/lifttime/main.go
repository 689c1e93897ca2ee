package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/bramerlabs/lifttime/pkg/api"
	"github.com/bramerlabs/lifttime/pkg/catalog"
	"github.com/bramerlabs/lifttime/pkg/flight"
	"github.com/bramerlabs/lifttime/pkg/mathutil"
	"github.com/bramerlabs/lifttime/pkg/units"
)

var (
	pretty bool
	list   bool
)

type opts struct {
	// selection
	batteryWh float64

	// sweep
	sweep  bool
	fromWh float64
	toWh   float64
	points int

	// model
	gravity        float64
	emptyMass      float64
	payload        float64
	specificEnergy float64
	powerCoeff     float64
	twMin          float64
	twRec          float64

	// outputs
	csvPath  string
	jsonPath string
	htmlPath string
}

// row is one battery sweep sample as written to CSV/JSON outputs.
type row struct {
	BatteryWh     float64 `json:"battery_wh"`
	BatteryMassKg float64 `json:"battery_mass_kg"`
	TotalMassKg   float64 `json:"total_mass_kg"`
	HoverPowerW   float64 `json:"hover_power_w"`
	FlightTimeMin float64 `json:"flight_time_min"`
	TWRatio       float64 `json:"tw_ratio"`
	Zone          string  `json:"zone"`
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "lifttime [MOTOR]",
		Short: "Drone lift capacity and flight endurance calculator",
		Long: `lifttime models the lift capacity and hover endurance of an 8-rotor
drone carrying a fixed payload. Pick a motor from the compiled-in catalog
and a battery energy to see battery mass, total thrust, takeoff mass,
hover power, flight time and the thrust-to-weight safety classification.

MOTOR is a catalog name ("MN8012 KV100") or a display label
("MN8012 KV100 (11.8 kgf)").

Examples:
  lifttime --list
  lifttime "MN8012 KV100" --battery 6000
  lifttime "U15II KV80" --sweep --from 1000 --to 20000 --html report.html
  lifttime serve --listen :8080`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, args)
		},
	}

	root.Flags().BoolVar(&pretty, "pretty", true, "format sweep output as a table instead of CSV-like lines")
	root.Flags().BoolVar(&list, "list", false, "list the motor catalog and exit")
	root.Flags().Float64VarP(&o.batteryWh, "battery", "b", 6000, "battery energy capacity in Wh")

	root.Flags().BoolVar(&o.sweep, "sweep", false, "sweep the battery range instead of a single point")
	root.Flags().Float64Var(&o.fromWh, "from", 1000, "sweep range start in Wh")
	root.Flags().Float64Var(&o.toWh, "to", 20000, "sweep range end in Wh")
	root.Flags().IntVar(&o.points, "points", 50, fmt.Sprintf("sweep sample count [2..%d]", api.MaxCurvePoints))

	root.Flags().Float64Var(&o.gravity, "gravity", 0, "gravitational acceleration in m/s² (0 = default 9.81)")
	root.Flags().Float64Var(&o.emptyMass, "empty-mass", 0, "frame+electronics mass in kg (0 = default 5)")
	root.Flags().Float64Var(&o.payload, "payload", 0, "fixed payload mass in kg (0 = default 10)")
	root.Flags().Float64Var(&o.specificEnergy, "specific-energy", 0, "battery energy density in Wh/kg (0 = default 200)")
	root.Flags().Float64Var(&o.powerCoeff, "power-coeff", 0, "hover power coefficient in W/kg (0 = default 200)")
	root.Flags().Float64Var(&o.twMin, "tw-min", 0, "minimum safe thrust-to-weight target (0 = default 1.6)")
	root.Flags().Float64Var(&o.twRec, "tw-rec", 0, "recommended thrust-to-weight target (0 = default 2.0)")

	root.Flags().StringVar(&o.csvPath, "csv", "", "write sweep rows to CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write sweep rows to JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write an HTML report with comparison chart")

	root.AddCommand(serveCmd(&o))

	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func (o opts) model() *flight.Model {
	return flight.New(&flight.Constants{
		G:              o.gravity,
		EmptyMassKg:    o.emptyMass,
		PayloadKg:      o.payload,
		SpecificEnergy: o.specificEnergy,
		PowerCoeff:     o.powerCoeff,
		TWMin:          o.twMin,
		TWRec:          o.twRec,
	})
}

func run(o opts, args []string) error {
	cat := catalog.Default()

	if list || len(args) == 0 {
		printCatalog(cat)
		return nil
	}
	if o.points < 2 || o.points > api.MaxCurvePoints {
		return fmt.Errorf("points must be in [2, %d]", api.MaxCurvePoints)
	}
	if o.fromWh < 0 || o.toWh < o.fromWh {
		return fmt.Errorf("bad sweep range [%g, %g]", o.fromWh, o.toWh)
	}

	name := catalog.ParseLabel(args[0])
	spec, err := cat.Lookup(name)
	if err != nil {
		return err
	}

	m := o.model()

	res, err := m.Compute(spec, o.batteryWh)
	if err != nil {
		return err
	}
	th, err := m.Thresholds(spec)
	if err != nil {
		return err
	}

	printReport(cat, m, name, spec, o.batteryWh, res, th)

	var rows []row
	if o.sweep || o.csvPath != "" || o.jsonPath != "" || o.htmlPath != "" {
		rows, err = buildSweep(m, spec, o.fromWh, o.toWh, o.points)
		if err != nil {
			return err
		}
	}
	if o.sweep {
		printSweep(rows)
	}

	if o.csvPath != "" {
		if err := writeCSV(o.csvPath, rows); err != nil {
			slog.Error("write csv", "err", err)
		}
	}
	if o.jsonPath != "" {
		if err := writeJSON(o.jsonPath, rows); err != nil {
			slog.Error("write json", "err", err)
		}
	}
	if o.htmlPath != "" {
		if err := writeHTML(o.htmlPath, cat, m, name, o.batteryWh, res, th, o.fromWh, o.toWh, o.points); err != nil {
			slog.Error("write html", "err", err)
		}
	}

	return nil
}

// buildSweep evaluates the model across a battery grid.
func buildSweep(m *flight.Model, spec flight.MotorSpec, fromWh, toWh float64, points int) ([]row, error) {
	grid := mathutil.Linspace(fromWh, toWh, points)
	rows := make([]row, 0, len(grid))
	for _, wh := range grid {
		res, err := m.Compute(spec, wh)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row{
			BatteryWh:     wh,
			BatteryMassKg: res.BatteryMassKg,
			TotalMassKg:   res.TotalMassKg,
			HoverPowerW:   res.HoverPowerW,
			FlightTimeMin: res.FlightTimeMin,
			TWRatio:       res.TWRatio,
			Zone:          m.Classify(res.TWRatio).String(),
		})
	}
	return rows, nil
}

func printCatalog(cat *catalog.Catalog) {
	fmt.Print(_console)
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "MOTOR\tMAX THRUST\tMASS\tT/W")
	fmt.Fprintln(tw, "-----\t----------\t----\t---")
	for _, e := range cat.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f:1\n",
			e.Name, units.KilogramsForce(e.Spec.ThrustKg), units.Kilograms(e.Spec.MotorMassKg),
			e.Spec.ThrustToWeight())
	}
	tw.Flush()
}

func printReport(cat *catalog.Catalog, m *flight.Model, name string, spec flight.MotorSpec,
	batteryWh float64, res flight.Result, th flight.Thresholds,
) {
	label, _ := cat.Label(name)
	c := m.Constants()

	fmt.Print(_console)
	fmt.Printf("Motor: %s\n", label)
	fmt.Printf("  Max Thrust:        %s\n", units.KilogramsForce(spec.ThrustKg))
	fmt.Printf("  Motor Mass:        %s\n", units.Kilograms(spec.MotorMassKg))
	fmt.Printf("  Thrust-to-Weight:  %.1f:1\n", spec.ThrustToWeight())
	fmt.Println()
	fmt.Printf("Constants:\n")
	fmt.Printf("  Empty Frame Mass:  %s\n", units.Kilograms(c.EmptyMassKg))
	fmt.Printf("  Fixed Payload:     %s\n", units.Kilograms(c.PayloadKg))
	fmt.Printf("  Specific Energy:   %.0f Wh/kg\n", c.SpecificEnergy)
	fmt.Printf("  Hover Power Coeff: %.0f W/kg\n", c.PowerCoeff)
	fmt.Println()
	fmt.Printf("Results @ %s:\n", units.WattHours(batteryWh))
	fmt.Printf("  Battery Mass:         %s\n", units.Kilograms(res.BatteryMassKg))
	fmt.Printf("  Max Lift Capability:  %s\n", units.KilogramsForce(res.TotalThrustKgf))
	fmt.Printf("  Total Thrust:         %s\n", units.Newtons(res.TotalThrustN))
	fmt.Printf("  Total Take-off Mass:  %s\n", units.Kilograms(res.TotalMassKg))
	fmt.Printf("  Hover Power:          %s\n", units.Watts(res.HoverPowerW))
	fmt.Printf("  Flight Time:          %s\n", units.Minutes(res.FlightTimeMin))
	fmt.Printf("  Avail. Extra Payload: %s\n", units.Kilograms(res.AvailableExtraKg))
	fmt.Printf("  Thrust-to-Weight:     %s [%s]\n", units.Ratio(res.TWRatio), m.Classify(res.TWRatio))
	fmt.Println()
	fmt.Printf("T/W thresholds (battery energy where the ratio crosses each target):\n")
	printThreshold(c.TWRec, th.RecWh)
	printThreshold(c.TWMin, th.MinWh)
	fmt.Printf("  Time Ceiling:      %s as battery grows (energy adds mass)\n",
		units.Minutes(c.FlightTimeCeilingMin()))
	fmt.Println()
}

func printThreshold(target, wh float64) {
	if wh <= 0 {
		fmt.Printf("  T/W >= %.2f:       unreachable for this motor\n", target)
		return
	}
	fmt.Printf("  T/W >= %.2f:       up to %s\n", target, units.WattHours(wh))
}

func printSweep(rows []row) {
	if pretty {
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "BATTERY\tBATT MASS\tTOTAL MASS\tHOVER\tTIME\tT/W\tZONE")
		fmt.Fprintln(tw, "-------\t---------\t----------\t-----\t----\t---\t----")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				units.WattHours(r.BatteryWh), units.Kilograms(r.BatteryMassKg),
				units.Kilograms(r.TotalMassKg), units.Watts(r.HoverPowerW),
				units.Minutes(r.FlightTimeMin), units.Ratio(r.TWRatio), r.Zone)
		}
		tw.Flush()
		return
	}
	fmt.Println("# battery_wh, battery_mass_kg, total_mass_kg, hover_w, flight_min, tw, zone")
	for _, r := range rows {
		fmt.Printf("%.0f, %.2f, %.2f, %.0f, %.1f, %.2f, %s\n",
			r.BatteryWh, r.BatteryMassKg, r.TotalMassKg, r.HoverPowerW,
			r.FlightTimeMin, r.TWRatio, r.Zone)
	}
}

func writeCSV(path string, rows []row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"battery_wh", "battery_mass_kg", "total_mass_kg", "hover_power_w",
		"flight_time_min", "tw_ratio", "zone",
	}); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write([]string{
			fmt.Sprintf("%.0f", r.BatteryWh),
			fmt.Sprintf("%.2f", r.BatteryMassKg),
			fmt.Sprintf("%.2f", r.TotalMassKg),
			fmt.Sprintf("%.0f", r.HoverPowerW),
			fmt.Sprintf("%.1f", r.FlightTimeMin),
			fmt.Sprintf("%.2f", r.TWRatio),
			r.Zone,
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeJSON(path string, rows []row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func serveCmd(o *opts) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the calculator as an HTTP JSON API with Prometheus metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), listen, o.model())
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "listen address")
	return cmd
}

func serve(ctx context.Context, listen string, m *flight.Model) error {
	col, err := api.NewCollector(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	srv := &http.Server{
		Addr:              listen,
		Handler:           api.NewServer(catalog.Default(), m, col, slog.Default()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("serving", "addr", listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		slog.Info("interrupted")
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

const _console = `Lifttime - Drone Lift & Flight Time Calculator

`
