package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cadence/pkg/commands/options"
	"tableflip.dev/cadence/pkg/runner/week"
)

func addWeek(topLevel *cobra.Command) {
	eo := &options.EndpointOptions{}
	wo := &options.WeekOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "week",
		Short: "show the planning board for a week",
		Example: `
cadence week
cadence week --week="2026-2-2"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildService(eo, wo)
			if err != nil {
				return err
			}
			w := week.Week{
				ShowID:  io.ShowID,
				Service: svc,
			}
			return output.HandleError(w.Do(context.Background()))
		},
	}

	options.AddEndpointArgs(cmd, eo)
	options.AddWeekArgs(cmd, wo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
