// Package api exposes the calculator over HTTP for UI collaborators: motor
// listing, single-point flight results, threshold pairs and plotting curves,
// plus health and Prometheus metrics endpoints. All handlers are read-only
// and stateless; an invalid request fails that request alone.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bramerlabs/lifttime/pkg/catalog"
	"github.com/bramerlabs/lifttime/pkg/flight"
	"github.com/bramerlabs/lifttime/pkg/mathutil"
)

// MaxCurvePoints caps the sample count of a curve request.
const MaxCurvePoints = 200

// DefaultCurvePoints is used when a curve request omits points.
const DefaultCurvePoints = 100

// Server serves the calculator API over a catalog and a model.
type Server struct {
	cat   *catalog.Catalog
	model *flight.Model
	col   *Collector
	log   *slog.Logger
	mux   *http.ServeMux
}

// NewServer wires routes over the given catalog and model. col and logger
// may be nil (metrics disabled, default logger).
func NewServer(cat *catalog.Catalog, model *flight.Model, col *Collector, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cat:   cat,
		model: model,
		col:   col,
		log:   logger,
		mux:   http.NewServeMux(),
	}

	s.mux.HandleFunc("GET /api/v1/motors", s.instrument("motors", s.handleMotors))
	s.mux.HandleFunc("GET /api/v1/flight", s.instrument("flight", s.handleFlight))
	s.mux.HandleFunc("GET /api/v1/thresholds", s.instrument("thresholds", s.handleThresholds))
	s.mux.HandleFunc("GET /api/v1/curve", s.instrument("curve", s.handleCurve))
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	if col != nil {
		s.mux.Handle("GET /metrics", col.Handler())
		col.CatalogMotors.Set(float64(cat.Len()))
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		if s.col != nil {
			s.col.Observe(name, rec.status, time.Since(start))
		}
	}
}

type errBody struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "err", err)
	}
}

// writeErr maps model/catalog errors onto status codes: unknown motor is
// 404, invalid input is 400.
func (s *Server) writeErr(w http.ResponseWriter, err error) {
	code := http.StatusBadRequest
	if errors.Is(err, catalog.ErrMotorNotFound) {
		code = http.StatusNotFound
	}
	s.writeJSON(w, code, errBody{Error: err.Error()})
}

// motorView is one catalog row as the UI consumes it.
type motorView struct {
	Name           string  `json:"name"`
	Label          string  `json:"label"`
	ThrustKg       float64 `json:"thrust_kg"`
	MotorMassKg    float64 `json:"motor_mass_kg"`
	ThrustToWeight float64 `json:"thrust_to_weight"`
}

func (s *Server) handleMotors(w http.ResponseWriter, r *http.Request) {
	entries := s.cat.Entries()
	out := make([]motorView, 0, len(entries))
	for _, e := range entries {
		label, err := s.cat.Label(e.Name)
		if err != nil {
			s.writeErr(w, err)
			return
		}
		out = append(out, motorView{
			Name:           e.Name,
			Label:          label,
			ThrustKg:       e.Spec.ThrustKg,
			MotorMassKg:    e.Spec.MotorMassKg,
			ThrustToWeight: e.Spec.ThrustToWeight(),
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

// motorParam resolves the motor query parameter, accepting either the bare
// catalog key or a UI display label.
func (s *Server) motorParam(r *http.Request) (string, flight.MotorSpec, error) {
	name := catalog.ParseLabel(r.URL.Query().Get("motor"))
	if name == "" {
		return "", flight.MotorSpec{}, errors.New("missing motor parameter")
	}
	spec, err := s.cat.Lookup(name)
	return name, spec, err
}

func floatParam(r *http.Request, key string, def float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s: %q", key, raw)
	}
	return v, nil
}

type flightResponse struct {
	Motor      string            `json:"motor"`
	BatteryWh  float64           `json:"battery_wh"`
	Result     flight.Result     `json:"result"`
	Zone       string            `json:"zone"`
	Thresholds flight.Thresholds `json:"thresholds"`
}

func (s *Server) handleFlight(w http.ResponseWriter, r *http.Request) {
	name, spec, err := s.motorParam(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	batteryWh, err := floatParam(r, "battery_wh", 6000)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	res, err := s.model.Compute(spec, batteryWh)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	th, err := s.model.Thresholds(spec)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, flightResponse{
		Motor:      name,
		BatteryWh:  batteryWh,
		Result:     res,
		Zone:       s.model.Classify(res.TWRatio).String(),
		Thresholds: th,
	})
}

type thresholdsResponse struct {
	Motor      string            `json:"motor"`
	Thresholds flight.Thresholds `json:"thresholds"`
}

func (s *Server) handleThresholds(w http.ResponseWriter, r *http.Request) {
	name, spec, err := s.motorParam(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	th, err := s.model.Thresholds(spec)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, thresholdsResponse{Motor: name, Thresholds: th})
}

type curvePoint struct {
	BatteryWh     float64 `json:"battery_wh"`
	FlightTimeMin float64 `json:"flight_time_min"`
}

type curveResponse struct {
	Motor  string       `json:"motor"`
	Points []curvePoint `json:"points"`
}

func (s *Server) handleCurve(w http.ResponseWriter, r *http.Request) {
	name, spec, err := s.motorParam(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	from, err := floatParam(r, "from", 1000)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	to, err := floatParam(r, "to", 20000)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	points, err := floatParam(r, "points", DefaultCurvePoints)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	n := int(points)
	switch {
	case from < 0 || to < from:
		s.writeErr(w, fmt.Errorf("bad range [%g, %g]", from, to))
		return
	case n < 2 || n > MaxCurvePoints:
		s.writeErr(w, fmt.Errorf("points must be in [2, %d]", MaxCurvePoints))
		return
	}

	seq, err := flightCurve(s.model, spec, from, to, n)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	resp := curveResponse{Motor: name, Points: make([]curvePoint, 0, n)}
	for wh, min := range seq {
		resp.Points = append(resp.Points, curvePoint{BatteryWh: wh, FlightTimeMin: min})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintln(w, "ok")
}

func flightCurve(m *flight.Model, spec flight.MotorSpec, from, to float64, n int) (iter.Seq2[float64, float64], error) {
	return m.Curve(spec, mathutil.Linspace(from, to, n))
}

