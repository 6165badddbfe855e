package commands

import (
	"fmt"

	"github.com/de-tools/region-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/region-atlas/pkg/runtime/terminal/selection"
	"github.com/de-tools/region-atlas/pkg/services/evaluator"
	"github.com/spf13/cobra"
)

type AnalyzeCmd struct {
	regions     []string
	all         bool
	interactive bool
	format      string
	session     *Session
}

func NewAnalyzeCmd(session *Session) *cobra.Command {
	ac := &AnalyzeCmd{session: session}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Compute financial summaries for regions",
		RunE:  ac.run,
	}

	cmd.Flags().StringArrayVar(&ac.regions, "region", nil, "Region to analyze (repeatable, order is kept)")
	cmd.Flags().BoolVar(&ac.all, "all", false, "Analyze every region known to the demographics registry")
	cmd.Flags().BoolVar(&ac.interactive, "interactive", false, "Choose regions from a numbered list")
	cmd.Flags().StringVar(&ac.format, "format", string(export.FormatTableView), "Output format: table, text or json")

	cmd.MarkFlagsMutuallyExclusive("region", "all", "interactive")
	cmd.MarkFlagsOneRequired("region", "all", "interactive")

	return cmd
}

func (ac *AnalyzeCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	format, err := export.ParseFormat(ac.format)
	if err != nil {
		return err
	}

	regs, err := ac.session.LoadRegistries(ctx)
	if err != nil {
		return err
	}

	var regionIDs []string
	switch {
	case ac.all:
		regionIDs = regs.Regions()
	case ac.interactive:
		regionIDs, err = selection.NewPrompt(cmd.InOrStdin(), cmd.ErrOrStderr()).Select(regs.Regions())
		if err != nil {
			return err
		}
	default:
		regionIDs = ac.regions
	}

	eval := evaluator.NewEvaluator(regs, evaluator.Options{Concurrency: ac.session.Config.Concurrency})
	batch, err := eval.Run(ctx, regionIDs)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	return export.NewReporter(cmd.OutOrStdout(), ac.session.Config.Currency, format).Handle(batch)
}
