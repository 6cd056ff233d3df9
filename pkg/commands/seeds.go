package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cadence/pkg/commands/options"
	"tableflip.dev/cadence/pkg/runner/seeds"
)

func addSeeds(topLevel *cobra.Command) {
	eo := &options.EndpointOptions{}
	wo := &options.WeekOptions{}
	so := &options.SeedOptions{}

	cmd := &cobra.Command{
		Use:   "seeds",
		Short: "list the signal catalogue",
		Example: `
cadence seeds
cadence seeds --seed t1 --seed q4
cadence seeds --refresh
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(eo, wo)
			if err != nil {
				return err
			}
			signals, err := buildSignals(eo)
			if err != nil {
				return err
			}
			s := seeds.Seeds{
				Service: svc,
				Signals: signals,
				Toggle:  so.Toggle,
				Refresh: so.Refresh,
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddEndpointArgs(cmd, eo)
	options.AddWeekArgs(cmd, wo)
	options.AddSeedArgs(cmd, so)

	topLevel.AddCommand(cmd)
}
