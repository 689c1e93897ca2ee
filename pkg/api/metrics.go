package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of the HTTP surface.
type Collector struct {
	gatherer prometheus.Gatherer

	Requests  *prometheus.CounterVec
	Durations *prometheus.HistogramVec

	CatalogMotors prometheus.Gauge
}

// NewCollector registers the serve-mode metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
// Re-registering against the same registerer reuses the existing
// collectors instead of failing.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lifttime_requests_total",
		Help: "Total handled HTTP requests, labeled by handler and status code.",
	}, []string{"handler", "code"})
	requests, err := registerCounterVec(reg, requests)
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lifttime_request_duration_seconds",
		Help:    "HTTP handler latency in seconds.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	}, []string{"handler"})
	durations, err = registerHistogramVec(reg, durations)
	if err != nil {
		return nil, err
	}

	motors := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lifttime_catalog_motors",
		Help: "Number of motors in the compiled-in catalog.",
	})
	motors, err = registerGauge(reg, motors)
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		Requests:      requests,
		Durations:     durations,
		CatalogMotors: motors,
	}, nil
}

// Handler exposes the collector's gatherer in Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// Observe records one handled request.
func (c *Collector) Observe(handler string, code int, d time.Duration) {
	c.Requests.WithLabelValues(handler, strconv.Itoa(code)).Inc()
	c.Durations.WithLabelValues(handler).Observe(d.Seconds())
}

func registerCounterVec(reg prometheus.Registerer, cv *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(cv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return cv, nil
}

func registerHistogramVec(reg prometheus.Registerer, hv *prometheus.HistogramVec) (*prometheus.HistogramVec, error) {
	if err := reg.Register(hv); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return hv, nil
}

func registerGauge(reg prometheus.Registerer, g prometheus.Gauge) (prometheus.Gauge, error) {
	if err := reg.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return g, nil
}
