package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/provision/internal/config"
	"github.com/oshokin/provision/internal/logger"
	"github.com/oshokin/provision/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// manifestPath to the package declaration file.
	manifestPath string
	// logLevel is the minimum level of printed log messages.
	logLevel string

	// rootCmd represents the base command; subcommands do the work.
	rootCmd = &cobra.Command{
		Use:   "provision",
		Short: "Install packages from source control.",
		Long: `Builds and delivers install sequences for packages checked out from source control.

Each package declared in the manifest is turned into an ordered list of shell commands:
create the install and build areas, check out the sources, configure, build and install.
Supported backends are git, svn (the default), hg, bzr, darcs and cvs.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}

			logger.SetLevel(level)

			return nil
		},
	}
)

// Execute runs the provision CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// signalContext is canceled on SIGTERM or SIGINT.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&manifestPath, "manifest", "m", config.DefaultManifestFilename, "path to package manifest (YAML or TOML)")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(planCmd, applyCmd, statusCmd, remoteCmd)
}
