package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/de-tools/region-atlas/pkg/services/registry"
	sqlstore "github.com/de-tools/region-atlas/pkg/store/sql"
	"github.com/marcboeker/go-duckdb/v2"
)

const RegionsTableSchema = `
	CREATE TABLE IF NOT EXISTS regions (
		region VARCHAR NOT NULL PRIMARY KEY,
		target_population BIGINT,
		avg_rent_per_sqm DOUBLE
	);
`
const BusinessesTableSchema = `
	CREATE TABLE IF NOT EXISTS businesses (
		region VARCHAR NOT NULL PRIMARY KEY,
		competitor_count BIGINT
	);
`
const AssumptionsTableSchema = `
	CREATE TABLE IF NOT EXISTS assumptions (
		region VARCHAR NOT NULL,
		param VARCHAR NOT NULL,
		value DOUBLE,
		PRIMARY KEY (region, param)
	);
`

var bootQueries = []string{
	RegionsTableSchema,
	BusinessesTableSchema,
	AssumptionsTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		bootQueries := append([]string{}, bootQueries...)

		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}

// LoaderFactory is registered as the duckdb source. The returned loader owns
// the connection and closes it on Close.
func LoaderFactory(_ context.Context, cfg *config.Config) (registry.Loader, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	db, err := NewDB(Settings{DbPath: cfg.DuckDB.Path})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	loader, err := sqlstore.NewOwningLoader(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return loader, nil
}
