package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/provision/internal/service/remote"
)

var remoteCmd = &cobra.Command{
	Use:   "remote [server-address] [package...]",
	Short: "Ask a provision-server for install sequences.",
	Long: `Sends every declared package, or only the named ones, to a provision-server and prints the returned sequences.

The server address can be provided as the first argument or loaded from server_addr in the configuration file.
Use "-" as the address to take it from the configuration while naming packages.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		var address string
		if len(args) > 0 {
			address, args = args[0], args[1:]
		}

		if address == "-" {
			address = ""
		}

		return remote.Run(ctx, &remote.Options{
			ConfigPath:    configPath,
			ManifestPath:  manifestPath,
			ServerAddress: address,
			Packages:      args,
			Out:           cmd.OutOrStdout(),
		})
	},
}
