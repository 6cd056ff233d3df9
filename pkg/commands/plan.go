package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cadence/pkg/commands/options"
	"tableflip.dev/cadence/pkg/runner/plan"
)

func addPlan(topLevel *cobra.Command) {
	eo := &options.EndpointOptions{}
	wo := &options.WeekOptions{}
	so := &options.SeedOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "seed the week with placeholder drafts",
		Long: "Rotate the selected seeds across the week's platform days and " +
			"reserve the newsletter slot. Days that already carry a draft for a " +
			"seed are left alone, so plan is safe to re-run.",
		Example: `
cadence plan --seed t1 --seed t2
cadence plan --week="2026-2-2" --seed t1
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
			p := plan.Plan{
				ShowID:  io.ShowID,
				Service: svc,
				Signals: signals,
				Seeds:   so.Toggle,
			}
			return output.HandleError(p.Do(context.Background()))
		},
	}

	options.AddEndpointArgs(cmd, eo)
	options.AddWeekArgs(cmd, wo)
	options.AddSeedArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
