package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type RegionsCmd struct {
	session *Session
}

func NewRegionsCmd(session *Session) *cobra.Command {
	rc := &RegionsCmd{session: session}
	return &cobra.Command{
		Use:   "regions",
		Short: "List regions available in the configured data source",
		RunE:  rc.run,
	}
}

func (rc *RegionsCmd) run(cmd *cobra.Command, _ []string) error {
	regs, err := rc.session.LoadRegistries(cmd.Context())
	if err != nil {
		return err
	}

	regions := regs.Regions()
	if len(regions) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No regions found for source: %s\n", rc.session.Config.Source)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", strings.Join(regions, "\n"))
	return nil
}

// NewSourcesCmd lists the data sources the binary was built with.
func NewSourcesCmd(session *Session) *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List supported data sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Supported sources:\n%s\n",
				strings.Join(session.Registry.ListSources(), "\n"))
			return nil
		},
	}
}
