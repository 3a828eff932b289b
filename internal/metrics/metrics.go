// Package metrics exposes Prometheus instruments for the registry and its caches.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zjrosen/defreg/internal/log"
)

const namespace = "defreg"

// Metrics holds the registry instruments on a private prometheus.Registry.
type Metrics struct {
	registry *prometheus.Registry

	compilations    *prometheus.CounterVec
	compileDuration prometheus.Histogram
	validations     *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	cacheEvictions  *prometheus.CounterVec
	accessChecks    *prometheus.CounterVec
	sourceChanges   *prometheus.CounterVec
	generation      prometheus.Gauge
}

// New creates the instruments and registers them with Go and process collectors.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.compilations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compilations_total",
			Help:      "Dependency entry compilations by result",
		},
		[]string{"result"},
	)
	m.compileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "compile_duration_seconds",
			Help:      "Duration of dependency entry compilations",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)
	m.validations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_calls_total",
			Help:      "Validation pipeline calls by phase",
		},
		[]string{"phase"},
	)
	m.cacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Cache tier lookups by cache and result",
		},
		[]string{"cache", "result"},
	)
	m.cacheEvictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_evictions_total",
			Help:      "Entries evicted by source change invalidation",
		},
		[]string{"cache"},
	)
	m.accessChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "access_checks_total",
			Help:      "Access guard decisions by verdict and path",
		},
		[]string{"verdict", "path"},
	)
	m.sourceChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_changes_total",
			Help:      "Source change events by kind",
		},
		[]string{"kind"},
	)
	m.generation = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cache_generation",
			Help:      "Current cache tier generation",
		},
	)

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.compilations, m.compileDuration, m.validations, m.cacheLookups,
		m.cacheEvictions, m.accessChecks, m.sourceChanges, m.generation,
	)
	return m
}

// Registry returns the underlying prometheus registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Compiled records one compilation.
func (m *Metrics) Compiled(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.compilations.WithLabelValues(result).Inc()
	m.compileDuration.Observe(d.Seconds())
}

// Validation records one call of a validation phase.
func (m *Metrics) Validation(phase string) {
	if m == nil {
		return
	}
	m.validations.WithLabelValues(phase).Inc()
}

// CacheLookup records a hit or a miss on cache.
func (m *Metrics) CacheLookup(cache string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(cache, result).Inc()
}

// Evicted records n entries removed from cache.
func (m *Metrics) Evicted(cache string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.cacheEvictions.WithLabelValues(cache).Add(float64(n))
}

// AccessCheck records an access decision. path is "global", "unsecured", "cached" or "policy".
func (m *Metrics) AccessCheck(allowed bool, path string) {
	if m == nil {
		return
	}
	verdict := "allowed"
	if !allowed {
		verdict = "denied"
	}
	m.accessChecks.WithLabelValues(verdict, path).Inc()
}

// SourceChange records a change event and the generation it produced.
func (m *Metrics) SourceChange(kind string, generation uint64) {
	if m == nil {
		return
	}
	m.sourceChanges.WithLabelValues(kind).Inc()
	m.generation.Set(float64(generation))
}

// Server serves /metrics and /health.
type Server struct {
	addr    string
	metrics *Metrics

	mu     sync.Mutex
	server *http.Server
}

// NewServer creates a server for addr (host:port).
func NewServer(addr string, m *Metrics) *Server {
	return &Server{addr: addr, metrics: m}
}

// Handler returns the mux with the metrics and health endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{EnableOpenMetrics: true}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	return mux
}

// Start listens in the background. The returned address is the bound one.
func (s *Server) Start() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return "", errors.New("metrics server already running")
	}
	if s.metrics == nil {
		return "", errors.New("metrics not configured")
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.server = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorErr(log.CatCLI, "metrics server stopped", err)
		}
	}()
	return ln.Addr().String(), nil
}

// Stop shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)
	s.server = nil
	return err
}
