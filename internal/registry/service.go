package registry

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/defreg/internal/access"
	"github.com/zjrosen/defreg/internal/defcache"
	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/metrics"
	"github.com/zjrosen/defreg/internal/source"
)

// ServiceOptions configure a Service. Zero values take defaults.
type ServiceOptions struct {
	Caches *defcache.Caches
	Policy access.Policy
	// UnsecuredPrefixes nil means access.DefaultUnsecuredPrefixes.
	UnsecuredPrefixes []string
	Tracer            trace.Tracer
	Metrics           *metrics.Metrics
}

// Service owns the process-wide pieces: the sub-registries, the shared cache
// tier and the access guard. Each request gets its own Registry from it.
type Service struct {
	subs    []SubRegistry
	caches  *defcache.Caches
	guard   *access.Guard
	tracer  trace.Tracer
	metrics *metrics.Metrics
}

// NewService builds a service over subs, consulted in order.
func NewService(subs []SubRegistry, opts ServiceOptions) *Service {
	caches := opts.Caches
	if caches == nil {
		caches = defcache.New(defcache.DefaultConfig(), opts.Metrics)
	}
	policy := opts.Policy
	if policy == nil {
		policy = access.NewDefaultPolicy()
	}
	unsecured := opts.UnsecuredPrefixes
	if unsecured == nil {
		unsecured = access.DefaultUnsecuredPrefixes
	}
	return &Service{
		subs:    append([]SubRegistry(nil), subs...),
		caches:  caches,
		guard:   access.NewGuard(caches, policy, unsecured, opts.Metrics),
		tracer:  opts.Tracer,
		metrics: opts.Metrics,
	}
}

// NewRegistry opens a registry instance for one request. A nil rctx gets a
// fresh authenticated Context.
func (s *Service) NewRegistry(rctx *Context) *Registry {
	if rctx == nil {
		rctx = NewContext()
	}
	return newRegistry(rctx, s.subs, s.caches, s.guard, s.tracer, s.metrics)
}

// Track subscribes the cache tier to a loader's change events.
func (s *Service) Track(loaders ...source.Loader) {
	for _, l := range loaders {
		l.Subscribe(s.caches.Listener())
		log.Debug(log.CatSource, "tracking loader", "loader", l.Name(), "access", l.Access())
	}
}

func (s *Service) Caches() *defcache.Caches { return s.caches }

func (s *Service) SubRegistries() []SubRegistry {
	return append([]SubRegistry(nil), s.subs...)
}

// Close stops invalidation delivery.
func (s *Service) Close() {
	s.caches.Close()
}
