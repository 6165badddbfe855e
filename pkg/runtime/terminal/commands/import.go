package commands

import (
	"fmt"

	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/de-tools/region-atlas/pkg/store/duckdb"
	sqlstore "github.com/de-tools/region-atlas/pkg/store/sql"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	target  string
	session *Session
}

// NewImportCmd copies the registries of the configured source into a DuckDB
// file that the duckdb source can later serve.
func NewImportCmd(session *Session) *cobra.Command {
	ic := &ImportCmd{session: session}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store the configured source's registries in a DuckDB file",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.target, "duckdb", "", "Target DuckDB file (defaults to duckdb.path from the config)")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	cfg := ic.session.Config

	target := ic.target
	if target == "" {
		target = cfg.DuckDB.Path
	}
	if cfg.Source == config.SourceDuckDB && target == cfg.DuckDB.Path {
		return fmt.Errorf("source and target are the same DuckDB file: %s", target)
	}

	regs, err := ic.session.LoadRegistries(ctx)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: target})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("failed to close DuckDB")
		}
	}()

	writer, err := sqlstore.NewWriter(db)
	if err != nil {
		return err
	}
	stats, err := writer.Save(ctx, regs)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d regions, %d business records and %d assumptions into %s\n",
		stats.Regions, stats.Businesses, stats.Assumptions, target)
	return nil
}
