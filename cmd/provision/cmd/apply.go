package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/provision/internal/service/applier"
)

var (
	// dryRun prints commands instead of running them.
	dryRun bool

	applyCmd = &cobra.Command{
		Use:   "apply [package...]",
		Short: "Run install sequences on this host.",
		Long: `Runs the install sequence of every declared package, or only the named ones, in manifest order.

Commands run one by one through the configured shell. The first failing command stops the run;
packages after it are not touched. Every delivery is recorded in the runs file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return applier.Run(ctx, &applier.Options{
				ConfigPath:   configPath,
				ManifestPath: manifestPath,
				Packages:     args,
				DryRun:       dryRun,
				Out:          cmd.OutOrStdout(),
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	applyCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "print commands instead of running them")
}
