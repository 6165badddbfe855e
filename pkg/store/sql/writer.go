package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/region-atlas/pkg/adapters"
	"github.com/de-tools/region-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	InsertRegionQuery     = `INSERT INTO regions (region, target_population, avg_rent_per_sqm) VALUES (?, ?, ?)`
	InsertBusinessQuery   = `INSERT INTO businesses (region, competitor_count) VALUES (?, ?)`
	InsertAssumptionQuery = `INSERT INTO assumptions (region, param, value) VALUES (?, ?, ?)`
)

var truncateQueries = []string{
	`DELETE FROM regions`,
	`DELETE FROM businesses`,
	`DELETE FROM assumptions`,
}

type SaveStats struct {
	Regions     int
	Businesses  int
	Assumptions int
}

// Writer replaces the contents of the registry tables with a snapshot.
type Writer struct {
	db *sql.DB
}

func NewWriter(db *sql.DB) (*Writer, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &Writer{db: db}, nil
}

// Save runs in a single transaction; on failure the tables keep their
// previous contents.
func (w *Writer) Save(ctx context.Context, regs domain.Registries) (SaveStats, error) {
	logger := zerolog.Ctx(ctx)
	regions, businesses, assumptions := adapters.MapRegistriesDomainToStore(regs)

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveStats{}, fmt.Errorf("failed to instantiate transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			logger.Warn().Err(err).Msg("failed to roll back registry import")
		}
	}()

	for _, query := range truncateQueries {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return SaveStats{}, fmt.Errorf("failed to clear table: %w", err)
		}
	}

	for _, r := range regions {
		if _, err := tx.ExecContext(ctx, InsertRegionQuery, r.Region, r.TargetPopulation, r.AvgRentPerSqm); err != nil {
			return SaveStats{}, fmt.Errorf("failed to store region %s: %w", r.Region, err)
		}
	}
	for _, b := range businesses {
		if _, err := tx.ExecContext(ctx, InsertBusinessQuery, b.Region, b.CompetitorCount); err != nil {
			return SaveStats{}, fmt.Errorf("failed to store business record for %s: %w", b.Region, err)
		}
	}
	for _, a := range assumptions {
		if _, err := tx.ExecContext(ctx, InsertAssumptionQuery, a.Region, a.Param, a.Value); err != nil {
			return SaveStats{}, fmt.Errorf("failed to store assumption %s for %s: %w", a.Param, a.Region, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return SaveStats{}, fmt.Errorf("failed to commit registry import: %w", err)
	}

	stats := SaveStats{
		Regions:     len(regions),
		Businesses:  len(businesses),
		Assumptions: len(assumptions),
	}
	logger.Info().
		Int("regions", stats.Regions).
		Int("businesses", stats.Businesses).
		Int("assumptions", stats.Assumptions).
		Msg("registries stored")

	return stats, nil
}
