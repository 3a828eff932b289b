package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/zjrosen/defreg/internal/access"
	"github.com/zjrosen/defreg/internal/builtin"
	"github.com/zjrosen/defreg/internal/config"
	"github.com/zjrosen/defreg/internal/defcache"
	"github.com/zjrosen/defreg/internal/domain/descriptor"
	"github.com/zjrosen/defreg/internal/infrastructure/sqlite"
	"github.com/zjrosen/defreg/internal/log"
	"github.com/zjrosen/defreg/internal/metrics"
	"github.com/zjrosen/defreg/internal/presentation"
	"github.com/zjrosen/defreg/internal/registry"
	"github.com/zjrosen/defreg/internal/source"
	"github.com/zjrosen/defreg/internal/subregistry"
	"github.com/zjrosen/defreg/internal/tracing"
)

// env is everything a command needs, built from the loaded configuration.
type env struct {
	svc      *registry.Service
	loaders  []source.Loader
	dirs     map[string]*source.DirLoader
	metrics  *metrics.Metrics
	provider *tracing.Provider
	closers  []io.Closer
}

// newEnv opens every configured source and builds the registry service.
// Configured sources come first, then the built-in namespace and the
// primitive types.
func newEnv(c config.Config) (*env, error) {
	provider, err := tracing.NewProvider(c.Tracing)
	if err != nil {
		return nil, fmt.Errorf("starting tracing: %w", err)
	}

	e := &env{
		dirs:     make(map[string]*source.DirLoader),
		metrics:  metrics.New(),
		provider: provider,
	}

	var subs []registry.SubRegistry
	for _, sc := range c.Sources {
		loader, err := e.open(sc)
		if err != nil {
			_ = e.Close()
			return nil, err
		}
		e.loaders = append(e.loaders, loader)
		subs = append(subs, subregistry.NewSourceRegistry(loader))
	}
	subs = append(subs,
		subregistry.NewSourceRegistry(builtin.Loader()),
		subregistry.NewTypeRegistry(),
	)

	caches := defcache.New(defcache.Config{
		DefaultExpiration: c.Cache.DefaultExpiration,
		CleanupInterval:   c.Cache.CleanupInterval,
		CacheExceptions:   c.Namespaces.CacheExceptions,
	}, e.metrics)

	e.svc = registry.NewService(subs, registry.ServiceOptions{
		Caches:            caches,
		Policy:            access.NewDefaultPolicy(c.Namespaces.Internal...),
		UnsecuredPrefixes: c.Namespaces.UnsecuredPrefixes,
		Tracer:            provider.Tracer(),
		Metrics:           e.metrics,
	})
	e.svc.Track(e.loaders...)

	log.Debug(log.CatCLI, "registry ready", "sources", len(c.Sources), "sub_registries", len(subs))
	return e, nil
}

func (e *env) open(sc config.SourceConfig) (source.Loader, error) {
	na, err := source.ParseNamespaceAccess(sc.Access)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", sc.LoaderName(), err)
	}

	switch sc.Kind {
	case config.KindSQLite:
		db, err := sqlite.NewDB(sc.Path)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", sc.LoaderName(), err)
		}
		e.closers = append(e.closers, db)
		return db.SourceStore(sc.LoaderName(), na), nil
	default:
		dl := source.NewDirLoader(sc.LoaderName(), sc.Path, na)
		if sc.Watch {
			e.dirs[sc.LoaderName()] = dl
		}
		return dl, nil
	}
}

// registry opens a request-scoped registry.
func (e *env) registry(anonymous bool) *registry.Registry {
	var opts []registry.ContextOption
	if anonymous {
		opts = append(opts, registry.Unauthenticated())
	}
	return e.svc.NewRegistry(registry.NewContext(opts...))
}

// Close releases databases and flushes spans.
func (e *env) Close() error {
	var errs []error
	if e.svc != nil {
		e.svc.Close()
	}
	for _, c := range e.closers {
		errs = append(errs, c.Close())
	}
	if e.provider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		errs = append(errs, e.provider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}

// withEnv builds an env for cfg, runs fn and closes the env.
func withEnv(fn func(e *env) error) (err error) {
	e, err := newEnv(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := e.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(e)
}

func output(w io.Writer) (presentation.Output, error) {
	return presentation.NewOutput(w, outFormat)
}

// parseDescriptor reads "TYPE@prefix://ns:name" or a name qualified with
// the given def type.
func parseDescriptor(arg, defType string) (descriptor.Descriptor, error) {
	if d, err := descriptor.ParseKey(arg); err == nil {
		return d, nil
	}
	t, err := descriptor.ParseDefType(defType)
	if err != nil {
		return descriptor.Descriptor{}, err
	}
	return descriptor.Parse(arg, t)
}
