package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/rs/zerolog"
)

// Loader produces the three per-region datasets from one data source.
type Loader interface {
	LoadDemographics(ctx context.Context) (map[string]domain.RegionDemographics, error)
	LoadDensity(ctx context.Context) (map[string]domain.BusinessDensity, error)
	LoadAssumptions(ctx context.Context) (map[string]domain.Assumptions, error)
}

// LoaderFactory is a function type that creates a Loader from the application config
type LoaderFactory func(ctx context.Context, cfg *config.Config) (Loader, error)

// Registry manages data source loader factories
type Registry interface {
	// Register adds a new data source loader factory
	Register(source string, factory LoaderFactory) error
	// Create instantiates a loader for the specified source using the provided config
	Create(ctx context.Context, source string, cfg *config.Config) (Loader, error)
	// ListSources returns the registered sources in alphabetical order
	ListSources() []string
}

type registry struct {
	mu        sync.RWMutex
	factories map[string]LoaderFactory
}

// NewRegistry creates a new loader registry seeded with factories
func NewRegistry(factories map[string]LoaderFactory) Registry {
	r := &registry{
		factories: make(map[string]LoaderFactory, len(factories)),
	}
	for source, factory := range factories {
		r.factories[source] = factory
	}
	return r
}

func (r *registry) Register(source string, factory LoaderFactory) error {
	if source == "" {
		return fmt.Errorf("source name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[source]; exists {
		return fmt.Errorf("source %q is already registered", source)
	}

	r.factories[source] = factory
	return nil
}

func (r *registry) Create(ctx context.Context, source string, cfg *config.Config) (Loader, error) {
	r.mu.RLock()
	factory, exists := r.factories[source]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("source %q is not registered", source)
	}

	return factory(ctx, cfg)
}

func (r *registry) ListSources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]string, 0, len(r.factories))
	for source := range r.factories {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}

// Load reads all three datasets into an immutable snapshot.
func Load(ctx context.Context, l Loader) (domain.Registries, error) {
	logger := zerolog.Ctx(ctx)

	demographics, err := l.LoadDemographics(ctx)
	if err != nil {
		return domain.Registries{}, fmt.Errorf("failed to load demographics: %w", err)
	}
	density, err := l.LoadDensity(ctx)
	if err != nil {
		return domain.Registries{}, fmt.Errorf("failed to load business density: %w", err)
	}
	assumptions, err := l.LoadAssumptions(ctx)
	if err != nil {
		return domain.Registries{}, fmt.Errorf("failed to load assumptions: %w", err)
	}

	logger.Info().
		Int("demographics", len(demographics)).
		Int("businesses", len(density)).
		Int("assumptions", len(assumptions)).
		Msg("registries loaded")

	return domain.Registries{
		Demographics: demographics,
		Density:      density,
		Assumptions:  assumptions,
	}, nil
}
