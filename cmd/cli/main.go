package main

import (
	"fmt"
	"os"

	"github.com/de-tools/region-atlas/pkg/runtime/terminal"
	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/de-tools/region-atlas/pkg/services/registry"
	"github.com/de-tools/region-atlas/pkg/store/delimited"
	"github.com/de-tools/region-atlas/pkg/store/duckdb"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry: registry.NewRegistry(map[string]registry.LoaderFactory{
			config.SourceCSV:    delimited.LoaderFactory,
			config.SourceDuckDB: duckdb.LoaderFactory,
		}),
		Output: os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
