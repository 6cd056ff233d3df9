package options

import (
	"os"

	"github.com/spf13/cobra"
)

// EndpointOptions carry the collaborator addresses and the brand scope.
type EndpointOptions struct {
	Generate string
	Signals  string
	Brand    string
	Accounts map[string]string
}

func AddEndpointArgs(cmd *cobra.Command, o *EndpointOptions) {
	cmd.Flags().StringVar(&o.Generate, "endpoint", envDefault("CADENCE_ENDPOINT", ""),
		"Generation service endpoint.")
	cmd.Flags().StringVar(&o.Signals, "signals", envDefault("CADENCE_SIGNALS", ""),
		"Signals service endpoint for the seed catalogue.")
	cmd.Flags().StringVar(&o.Brand, "brand", envDefault("CADENCE_BRAND", ""),
		"Brand profile id scoping generation.")
	cmd.Flags().StringToStringVar(&o.Accounts, "account", nil,
		"Platform account ids, example: --account instagram=acct_1.")
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
