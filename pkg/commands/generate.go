package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cadence/pkg/commands/options"
	"tableflip.dev/cadence/pkg/runner/generate"
)

func addGenerate(topLevel *cobra.Command) {
	eo := &options.EndpointOptions{}
	wo := &options.WeekOptions{}
	so := &options.SeedOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "plan the week and stream draft generation",
		Example: `
cadence generate --seed t1 --seed t2 --brand acme
cadence generate --id seeded-2026-01-05-t1
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
			g := generate.Generate{
				ShowID:  io.ShowID,
				Service: svc,
				Signals: signals,
				Seeds:   so.Toggle,
				DraftID: io.ID,
			}
			return output.HandleError(g.Do(context.Background()))
		},
	}

	options.AddEndpointArgs(cmd, eo)
	options.AddWeekArgs(cmd, wo)
	options.AddSeedArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	options.AddIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
