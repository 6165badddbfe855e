package terminal

import (
	"io"
	"os"

	"github.com/de-tools/region-atlas/pkg/runtime/terminal/commands"
	"github.com/de-tools/region-atlas/pkg/services/config"
	"github.com/de-tools/region-atlas/pkg/services/registry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// CLI represents the command-line interface
type CLI struct {
	session   *commands.Session
	errOutput io.Writer
	rootCmd   *cobra.Command

	configPath string
	logLevel   string
}

// Options contain configuration for the CLI
type Options struct {
	Registry  registry.Registry
	Output    io.Writer
	ErrOutput io.Writer
	Input     io.Reader
}

// NewCLI creates a new CLI instance
func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.ErrOutput == nil {
		opts.ErrOutput = os.Stderr
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}

	cli := &CLI{
		session:   &commands.Session{Registry: opts.Registry},
		errOutput: opts.ErrOutput,
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	cli.rootCmd.SetErr(opts.ErrOutput)
	cli.rootCmd.SetIn(opts.Input)
	return cli
}

func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "region-atlas",
		Short:             "Regional profitability analysis for a children's education center",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.setup,
	}

	cmd.PersistentFlags().StringVarP(&cli.configPath, "config", "c", "", "Path to the configuration file")
	cmd.PersistentFlags().StringVar(&cli.logLevel, "log-level", "", "Override the configured log level")

	cmd.AddCommand(commands.NewAnalyzeCmd(cli.session))
	cmd.AddCommand(commands.NewRegionsCmd(cli.session))
	cmd.AddCommand(commands.NewSourcesCmd(cli.session))
	cmd.AddCommand(commands.NewImportCmd(cli.session))

	return cmd
}

func (cli *CLI) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return err
	}
	if cli.logLevel != "" {
		cfg.LogLevel = cli.logLevel
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cli.errOutput}).
		Level(level).
		With().
		Timestamp().
		Logger()

	cmd.SetContext(logger.WithContext(cmd.Context()))
	cli.session.Config = cfg
	return nil
}
