package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, SourceCSV, cfg.Source)
	assert.Equal(t, "₽", cfg.Currency)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, "regions.csv", cfg.Data.Regions)
	assert.Equal(t, ';', cfg.Data.DelimiterRune())
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
}

func TestLoad_ValidYAML_PopulatesAllFields(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "region-atlas.yaml")
	// No indentation inside the backtick block to avoid YAML parsing errors
	content := `source: duckdb
log_level: debug
currency: "RUB"
concurrency: 4
data:
  regions: "s3://atlas/regions.csv"
  businesses: "/data/businesses.csv"
  assumptions: "/data/assumptions.ini"
  delimiter: ","
duckdb:
  path: "/data/atlas.db"
s3:
  region: "eu-central-1"
  endpoint: "http://localhost:9000"
server:
  host: "0.0.0.0"
  port: 9090`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// When
	cfg, err := Load(path)

	// Then
	require.NoError(t, err)
	assert.Equal(t, SourceDuckDB, cfg.Source)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "RUB", cfg.Currency)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, "s3://atlas/regions.csv", cfg.Data.Regions)
	assert.Equal(t, "/data/assumptions.ini", cfg.Data.Assumptions)
	assert.Equal(t, ',', cfg.Data.DelimiterRune())
	assert.Equal(t, "/data/atlas.db", cfg.DuckDB.Path)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr())
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("REGION_ATLAS_CURRENCY", "USD")
	t.Setenv("REGION_ATLAS_DATA_REGIONS", "/env/regions.csv")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Currency)
	assert.Equal(t, "/env/regions.csv", cfg.Data.Regions)
}

func TestLoad_InvalidYAML_ReturnsError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("source: csv: bad"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Source:      SourceCSV,
			Concurrency: 1,
			Data:        DataConfig{Delimiter: ";"},
			DuckDB:      DuckDBConfig{Path: "atlas.db"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown source", mutate: func(c *Config) { c.Source = "parquet" }, wantErr: true},
		{name: "empty delimiter", mutate: func(c *Config) { c.Data.Delimiter = "" }, wantErr: true},
		{name: "long delimiter", mutate: func(c *Config) { c.Data.Delimiter = ";;" }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: true},
		{name: "duckdb without path", mutate: func(c *Config) {
			c.Source = SourceDuckDB
			c.DuckDB.Path = ""
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
