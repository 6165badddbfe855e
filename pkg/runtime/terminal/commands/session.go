package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/de-tools/region-atlas/pkg/services/registry"
	"github.com/rs/zerolog"
)

const loadTimeout = 60 * time.Second

// Session is filled by the root command before any subcommand runs.
type Session struct {
	Registry registry.Registry
	Config   *config.Config
}

// LoadRegistries creates the loader for the configured source and reads a
// registry snapshot from it.
func (s *Session) LoadRegistries(ctx context.Context) (domain.Registries, error) {
	if s.Config == nil {
		return domain.Registries{}, fmt.Errorf("configuration is not loaded")
	}

	ctx, cancel := context.WithTimeout(ctx, loadTimeout)
	defer cancel()

	loader, err := s.Registry.Create(ctx, s.Config.Source, s.Config)
	if err != nil {
		return domain.Registries{}, fmt.Errorf("failed to create a loader for source %s: %w", s.Config.Source, err)
	}
	if closer, ok := loader.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close loader")
			}
		}()
	}

	return registry.Load(ctx, loader)
}
