package telemetry

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/astar-grid/navigation"
)

// Outcome labels
const (
	OutcomeFound       = "found"
	OutcomeUnreachable = "unreachable"
	OutcomeError       = "error"
)

// Metrics holds search collectors registered on a caller-owned registry
type Metrics struct {
	registry *prometheus.Registry

	// searches counts searches by outcome
	searches *prometheus.CounterVec

	// duration tracks search latency
	duration *prometheus.HistogramVec

	// expanded tracks nodes expanded per search
	expanded prometheus.Histogram

	// pathSteps tracks path length of successful searches
	pathSteps prometheus.Histogram

	// obstacles reports the obstacle count of the last searched grid
	obstacles prometheus.Gauge
}

// NewMetrics registers search collectors on reg, a nil reg gets a fresh registry
func NewMetrics(reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		searches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "astar_search_total",
			Help: "Total searches by outcome",
		}, []string{"outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "astar_search_duration_seconds",
			Help:    "Search duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10µs to ~80ms
		}, []string{"outcome"}),
		expanded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "astar_search_expanded_nodes",
			Help:    "Nodes expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 9), // 1 to 65536
		}),
		pathSteps: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "astar_path_steps",
			Help:    "Steps per resolved path",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
		}),
		obstacles: factory.NewGauge(prometheus.GaugeOpts{
			Name: "astar_grid_obstacles",
			Help: "Obstacle cells in the last searched grid",
		}),
	}
}

// Registry returns the registry the collectors live on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Observe records one finished search
func (m *Metrics) Observe(res navigation.Result, obstacleCount int, err error) {
	outcome := outcomeOf(res, err)
	m.searches.WithLabelValues(outcome).Inc()
	m.obstacles.Set(float64(obstacleCount))
	if err != nil {
		return
	}
	m.duration.WithLabelValues(outcome).Observe(res.Duration.Seconds())
	m.expanded.Observe(float64(res.Expanded))
	if res.Found() {
		m.pathSteps.Observe(float64(res.Steps()))
	}
}

func outcomeOf(res navigation.Result, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case res.Found():
		return OutcomeFound
	default:
		return OutcomeUnreachable
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Serve runs a /metrics endpoint on addr until ctx is cancelled
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("telemetry: metrics shutdown: %v", err)
		}
	}()

	log.Printf("telemetry: serving metrics on %s", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
