package delimited

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/de-tools/region-atlas/pkg/adapters"
	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/de-tools/region-atlas/pkg/services/registry"
	"github.com/de-tools/region-atlas/pkg/store/blob"
	"github.com/de-tools/region-atlas/pkg/store/inifile"
	"github.com/rs/zerolog"
)

// Loader reads the datasets from files (local or s3://) named in DataConfig.
// An assumptions file ending in .ini is read as INI instead of delimited text.
type Loader struct {
	opener blob.Opener
	data   config.DataConfig
}

func NewLoader(opener blob.Opener, data config.DataConfig) *Loader {
	return &Loader{opener: opener, data: data}
}

// LoaderFactory is registered as the csv source.
func LoaderFactory(_ context.Context, cfg *config.Config) (registry.Loader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	return NewLoader(blob.NewOpener(cfg.S3), cfg.Data), nil
}

func (l *Loader) options() Options {
	return Options{Delimiter: l.data.DelimiterRune()}
}

func (l *Loader) LoadDemographics(ctx context.Context) (map[string]domain.RegionDemographics, error) {
	rc, err := l.opener.Open(ctx, l.data.Regions)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(ctx, rc.Close)

	records, err := ReadRegions(ctx, rc, l.options())
	if err != nil {
		return nil, err
	}
	return adapters.MapRegionRecordsToDomain(records), nil
}

func (l *Loader) LoadDensity(ctx context.Context) (map[string]domain.BusinessDensity, error) {
	rc, err := l.opener.Open(ctx, l.data.Businesses)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(ctx, rc.Close)

	records, err := ReadBusinesses(ctx, rc, l.options())
	if err != nil {
		return nil, err
	}
	return adapters.MapBusinessRecordsToDomain(records), nil
}

func (l *Loader) LoadAssumptions(ctx context.Context) (map[string]domain.Assumptions, error) {
	rc, err := l.opener.Open(ctx, l.data.Assumptions)
	if err != nil {
		return nil, err
	}
	defer closeQuietly(ctx, rc.Close)

	if strings.EqualFold(filepath.Ext(l.data.Assumptions), ".ini") {
		records, err := inifile.ReadAssumptions(ctx, rc)
		if err != nil {
			return nil, err
		}
		return adapters.MapAssumptionRecordsToDomain(records), nil
	}

	records, err := ReadAssumptions(ctx, rc, l.options())
	if err != nil {
		return nil, err
	}
	return adapters.MapAssumptionRecordsToDomain(records), nil
}

func closeQuietly(ctx context.Context, closeFn func() error) {
	if err := closeFn(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close dataset")
	}
}
