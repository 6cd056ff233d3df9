package options

import (
	"github.com/spf13/cobra"
)

// SeedOptions
type SeedOptions struct {
	Toggle  []string
	Refresh bool
}

func AddSeedArgs(cmd *cobra.Command, o *SeedOptions) {
	cmd.Flags().StringSliceVarP(&o.Toggle, "seed", "s", nil,
		"Toggle a seed selection by id, repeatable.")
	cmd.Flags().BoolVar(&o.Refresh, "refresh", false,
		"Bypass the cached catalogue and re-fetch from the signals service.")
}
