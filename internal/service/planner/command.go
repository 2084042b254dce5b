package planner

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/oshokin/provision/internal/config"
	"github.com/oshokin/provision/internal/logger"
	"github.com/oshokin/provision/internal/manifest"
	"github.com/oshokin/provision/internal/pipeline"
)

// Options contains inputs for the plan entry point.
type Options struct {
	// ConfigPath is the deployment settings file (defaults to provision.yaml).
	ConfigPath string
	// ManifestPath is the package declaration file (defaults to packages.yaml).
	ManifestPath string
	// Packages restricts the plan to these names; all packages when empty.
	Packages []string
	// Stage restricts the output to one stage.
	Stage string
	// Plain prints bare commands without headers.
	Plain bool
	// Out receives the rendered plan; os.Stdout when nil.
	Out io.Writer
}

// Load reads the settings and the manifest and builds the plans.
func Load(ctx context.Context, opts *Options) (*config.Config, []*Plan, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load settings: %w", err)
	}

	manifestPath := opts.ManifestPath
	if manifestPath == "" {
		manifestPath = config.DefaultManifestFilename
	}

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	decls, err := m.Select(opts.Packages...)
	if err != nil {
		return nil, nil, err
	}

	installers, err := Installers(cfg, decls)
	if err != nil {
		return nil, nil, err
	}

	plans, err := Build(ctx, installers, pipeline.StageName(opts.Stage))
	if err != nil {
		return nil, nil, err
	}

	return cfg, plans, nil
}

// Run builds and prints the plans.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "planner")

	_, plans, err := Load(ctx, opts)
	if err != nil {
		return err
	}

	logger.InfoKV(ctx, "Plans ready", "packages", len(plans))

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	if opts.Plain {
		return renderPlain(out, plans)
	}

	return Render(out, plans)
}

// Render writes each plan with a header and numbered commands.
func Render(out io.Writer, plans []*Plan) error {
	var (
		header = color.New(color.FgCyan, color.Bold)
		source = color.New(color.Faint)
		index  = color.New(color.FgYellow)
	)

	for i, plan := range plans {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}

		if _, err := header.Fprintf(out, "==> %s", plan.Package); err != nil {
			return err
		}

		if _, err := source.Fprintf(out, " (%s)\n", plan.Source); err != nil {
			return err
		}

		for n, command := range plan.Commands {
			if _, err := index.Fprintf(out, "%4d ", n+1); err != nil {
				return err
			}

			if _, err := fmt.Fprintln(out, command); err != nil {
				return err
			}
		}
	}

	return nil
}

func renderPlain(out io.Writer, plans []*Plan) error {
	for _, plan := range plans {
		for _, command := range plan.Commands {
			if _, err := fmt.Fprintln(out, command); err != nil {
				return err
			}
		}
	}

	return nil
}
