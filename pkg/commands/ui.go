package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cadence/pkg/commands/options"
	"tableflip.dev/cadence/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	eo := &options.EndpointOptions{}
	wo := &options.WeekOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive week board",
		Example: `
cadence ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(eo, wo)
			if err != nil {
				return err
			}
			signals, err := buildSignals(eo)
			if err != nil {
				return err
			}
			i := ui.UI{Service: svc, Signals: signals}
			return i.Do(context.Background())
		},
	}

	options.AddEndpointArgs(cmd, eo)
	options.AddWeekArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
