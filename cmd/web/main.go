package main

import (
	"fmt"
	"io"
	"os"

	"github.com/de-tools/region-atlas/pkg/server"
	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/de-tools/region-atlas/pkg/services/evaluator"
	"github.com/de-tools/region-atlas/pkg/services/registry"
	"github.com/de-tools/region-atlas/pkg/store/delimited"
	"github.com/de-tools/region-atlas/pkg/store/duckdb"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Region Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (REGION_ATLAS_* variables and .env are applied on top)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	sources := registry.NewRegistry(map[string]registry.LoaderFactory{
		config.SourceCSV:    delimited.LoaderFactory,
		config.SourceDuckDB: duckdb.LoaderFactory,
	})

	loader, err := sources.Create(ctx, cfg.Source, cfg)
	if err != nil {
		return fmt.Errorf("failed to create a loader for source %s: %w", cfg.Source, err)
	}
	regs, err := registry.Load(ctx, loader)
	if closer, ok := loader.(io.Closer); ok {
		if closeErr := closer.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("failed to close loader")
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load registries: %w", err)
	}

	logger.Info().Msgf("Source `%s` loaded with %d regions.", cfg.Source, len(regs.Regions()))

	web := server.NewWebAPI(server.Config{
		Addr: cfg.Server.Addr(),
		Dependencies: server.Dependencies{
			Analyzer: evaluator.NewEvaluator(regs, evaluator.Options{Concurrency: cfg.Concurrency}),
			Logger:   logger,
		},
	})

	return web.Start(ctx)
}
