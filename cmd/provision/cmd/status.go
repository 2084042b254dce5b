package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/provision/internal/service/applier"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "List recorded deliveries.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signalContext()
		defer stop()

		return applier.Status(ctx, &applier.StatusOptions{
			ConfigPath: configPath,
			Out:        cmd.OutOrStdout(),
		})
	},
}
