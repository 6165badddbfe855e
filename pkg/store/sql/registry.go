package sql

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/de-tools/region-atlas/pkg/adapters"
	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/de-tools/region-atlas/pkg/models/store"
	"github.com/rs/zerolog"
)

const (
	RegionsQuery     = `SELECT region, target_population, avg_rent_per_sqm FROM regions`
	BusinessesQuery  = `SELECT region, competitor_count FROM businesses`
	AssumptionsQuery = `SELECT region, param, value FROM assumptions`
)

// Loader reads the registries from the regions, businesses and assumptions
// tables. Rows with NULL or negative values are skipped.
type Loader struct {
	db    *sql.DB
	owned bool
}

func NewLoader(db *sql.DB) (*Loader, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Loader{db: db}, nil
}

// NewOwningLoader closes db when the loader is closed.
func NewOwningLoader(db *sql.DB) (*Loader, error) {
	l, err := NewLoader(db)
	if err != nil {
		return nil, err
	}
	l.owned = true
	return l, nil
}

func (l *Loader) Close() error {
	if !l.owned {
		return nil
	}
	return l.db.Close()
}

func (l *Loader) query(ctx context.Context, dataset, query string, scan func(rows *sql.Rows) error) error {
	logger := zerolog.Ctx(ctx)

	rows, err := l.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s query failed: %w", dataset, err)
	}
	defer func(rows *sql.Rows) {
		err := rows.Close()
		if err != nil {
			logger.Warn().Err(err).Str("dataset", dataset).Msg("failed to close query rows")
		}
	}(rows)

	for rows.Next() {
		if err := scan(rows); err != nil {
			return fmt.Errorf("%s scan failed: %w", dataset, err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%s rows failed: %w", dataset, err)
	}
	return nil
}

func skipRow(ctx context.Context, dataset, region, reason string) {
	zerolog.Ctx(ctx).Debug().
		Str("dataset", dataset).
		Str("region", region).
		Str("reason", reason).
		Msg("skipping malformed row")
}

func (l *Loader) LoadDemographics(ctx context.Context) (map[string]domain.RegionDemographics, error) {
	var records []store.RegionRecord
	err := l.query(ctx, "regions", RegionsQuery, func(rows *sql.Rows) error {
		var (
			region     sql.NullString
			population sql.NullInt64
			rent       sql.NullFloat64
		)
		if err := rows.Scan(&region, &population, &rent); err != nil {
			return err
		}
		switch {
		case !region.Valid || region.String == "":
			skipRow(ctx, "regions", "", "missing region")
		case !population.Valid || population.Int64 < 0:
			skipRow(ctx, "regions", region.String, "invalid target population")
		case !validAmount(rent):
			skipRow(ctx, "regions", region.String, "invalid rent")
		default:
			records = append(records, store.RegionRecord{
				Region:           region.String,
				TargetPopulation: int(population.Int64),
				AvgRentPerSqm:    rent.Float64,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adapters.MapRegionRecordsToDomain(records), nil
}

func (l *Loader) LoadDensity(ctx context.Context) (map[string]domain.BusinessDensity, error) {
	var records []store.BusinessRecord
	err := l.query(ctx, "businesses", BusinessesQuery, func(rows *sql.Rows) error {
		var (
			region sql.NullString
			count  sql.NullInt64
		)
		if err := rows.Scan(&region, &count); err != nil {
			return err
		}
		switch {
		case !region.Valid || region.String == "":
			skipRow(ctx, "businesses", "", "missing region")
		case !count.Valid || count.Int64 < 0:
			skipRow(ctx, "businesses", region.String, "invalid competitor count")
		default:
			records = append(records, store.BusinessRecord{
				Region:          region.String,
				CompetitorCount: int(count.Int64),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adapters.MapBusinessRecordsToDomain(records), nil
}

func (l *Loader) LoadAssumptions(ctx context.Context) (map[string]domain.Assumptions, error) {
	var records []store.AssumptionRecord
	err := l.query(ctx, "assumptions", AssumptionsQuery, func(rows *sql.Rows) error {
		var (
			region, param sql.NullString
			value         sql.NullFloat64
		)
		if err := rows.Scan(&region, &param, &value); err != nil {
			return err
		}
		switch {
		case !region.Valid || region.String == "":
			skipRow(ctx, "assumptions", "", "missing region")
		case !param.Valid || param.String == "":
			skipRow(ctx, "assumptions", region.String, "missing param")
		case !validAmount(value):
			skipRow(ctx, "assumptions", region.String, "invalid value")
		default:
			records = append(records, store.AssumptionRecord{
				Region: region.String,
				Param:  param.String,
				Value:  value.Float64,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adapters.MapAssumptionRecordsToDomain(records), nil
}

func validAmount(v sql.NullFloat64) bool {
	return v.Valid && v.Float64 >= 0 && !math.IsNaN(v.Float64) && !math.IsInf(v.Float64, 0)
}
