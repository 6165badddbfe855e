package config

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/viper"
)

const (
	SourceCSV    = "csv"
	SourceDuckDB = "duckdb"

	EnvPrefix = "REGION_ATLAS"
)

type Config struct {
	Source      string       `mapstructure:"source"`
	LogLevel    string       `mapstructure:"log_level"`
	Currency    string       `mapstructure:"currency"`
	Concurrency int          `mapstructure:"concurrency"`
	Data        DataConfig   `mapstructure:"data"`
	DuckDB      DuckDBConfig `mapstructure:"duckdb"`
	S3          S3Config     `mapstructure:"s3"`
	Server      ServerConfig `mapstructure:"server"`
}

type DataConfig struct {
	Regions     string `mapstructure:"regions"`
	Businesses  string `mapstructure:"businesses"`
	Assumptions string `mapstructure:"assumptions"`
	Delimiter   string `mapstructure:"delimiter"`
}

type DuckDBConfig struct {
	Path string `mapstructure:"path"`
}

type S3Config struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (d DataConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(d.Delimiter)
	return r
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source", SourceCSV)
	v.SetDefault("log_level", "info")
	v.SetDefault("currency", "₽")
	v.SetDefault("concurrency", 1)
	v.SetDefault("data.regions", "regions.csv")
	v.SetDefault("data.businesses", "businesses.csv")
	v.SetDefault("data.assumptions", "assumptions.csv")
	v.SetDefault("data.delimiter", ";")
	v.SetDefault("duckdb.path", "region-atlas.db")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8080)
}

// Load reads the optional config file at path and overlays REGION_ATLAS_*
// environment variables on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Source {
	case SourceCSV, SourceDuckDB:
	default:
		return fmt.Errorf("unknown data source %q", c.Source)
	}

	if utf8.RuneCountInString(c.Data.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Data.Delimiter)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Source == SourceDuckDB && c.DuckDB.Path == "" {
		return fmt.Errorf("duckdb.path is required for the duckdb source")
	}
	return nil
}
