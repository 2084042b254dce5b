package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/provision/internal/config"
	"github.com/oshokin/provision/internal/logger"
	"github.com/oshokin/provision/internal/manifest"
	"github.com/oshokin/provision/internal/service/common"
	"github.com/oshokin/provision/internal/service/planner"
)

// ErrNoServerAddress is returned when neither the flag nor the settings name a server.
var ErrNoServerAddress = errors.New("no server address configured")

// Options contains inputs for the remote plan entry point.
type Options struct {
	// ConfigPath is the deployment settings file.
	ConfigPath string
	// ManifestPath is the package declaration file.
	ManifestPath string
	// ServerAddress overrides server_addr from the settings.
	ServerAddress string
	// Packages restricts the request to these names; all packages when empty.
	Packages []string
	// Out receives the rendered plans; os.Stdout when nil.
	Out io.Writer
}

// Run requests a sequence per declared package and prints the plans.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "remote")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	address := opts.ServerAddress
	if address == "" {
		address = cfg.ServerAddress
	}

	if address == "" {
		return ErrNoServerAddress
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = config.DefaultManifestFilename
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	decls, err := m.Select(opts.Packages...)
	if err != nil {
		return err
	}

	client, err := common.Dial(ctx, address, common.WithCallTimeout(cfg.Timeout))
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Unable to close connection", "error", closeErr)
		}
	}()

	plans, err := Fetch(ctx, client, decls)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Plans received", "server", address, "packages", len(plans))

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return planner.Render(out, plans)
}

// Fetch requests the sequence of every declaration in order.
func Fetch(ctx context.Context, client *common.Client, decls []manifest.Declaration) ([]*planner.Plan, error) {
	plans := make([]*planner.Plan, 0, len(decls))

	for i := range decls {
		decl := &decls[i]

		commands, err := client.Generate(ctx, decl)
		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", decl.Name, err)
		}

		plans = append(plans, &planner.Plan{
			Package:  decl.Package(),
			Source:   decl.Source,
			Commands: commands,
		})
	}

	return plans, nil
}
