// Package inifile reads per-region assumptions from INI files: one section
// per region, one key per parameter.
package inifile

import (
	"context"
	"fmt"
	"io"
	"math"

	"github.com/de-tools/region-atlas/pkg/models/store"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

func ReadAssumptions(ctx context.Context, r io.Reader) ([]store.AssumptionRecord, error) {
	logger := zerolog.Ctx(ctx)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read assumptions: %w", err)
	}

	cfg, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("parse assumptions: %w", err)
	}

	var records []store.AssumptionRecord
	for _, section := range cfg.Sections() {
		region := section.Name()
		if region == ini.DefaultSection {
			if len(section.Keys()) > 0 {
				logger.Debug().Msg("ignoring assumptions outside of a region section")
			}
			continue
		}

		for _, key := range section.Keys() {
			value, err := key.Float64()
			if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
				logger.Debug().
					Str("region", region).
					Str("param", key.Name()).
					Str("value", key.String()).
					Msg("skipping malformed assumption")
				continue
			}
			records = append(records, store.AssumptionRecord{
				Region: region,
				Param:  key.Name(),
				Value:  value,
			})
		}
	}

	return records, nil
}
