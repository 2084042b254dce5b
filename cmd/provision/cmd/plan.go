package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/provision/internal/service/planner"
)

var (
	// stage restricts the plan to one stage.
	stage string
	// plain prints bare commands.
	plain bool

	planCmd = &cobra.Command{
		Use:   "plan [package...]",
		Short: "Print install sequences without running them.",
		Long: `Prints the install sequence of every declared package, or only the named ones.

With --stage only that stage's commands are printed (prepare, download, configure, build or install).
With --plain the output is one command per line, ready to pipe into a shell.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext()
			defer stop()

			return planner.Run(ctx, &planner.Options{
				ConfigPath:   configPath,
				ManifestPath: manifestPath,
				Packages:     args,
				Stage:        stage,
				Plain:        plain,
				Out:          cmd.OutOrStdout(),
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	planCmd.Flags().StringVarP(&stage, "stage", "s", "", "print only this stage")
	planCmd.Flags().BoolVar(&plain, "plain", false, "print bare commands without headers")
}
