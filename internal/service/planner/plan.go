package planner

import (
	"context"
	"fmt"

	"github.com/oshokin/provision/internal/config"
	"github.com/oshokin/provision/internal/domain/provision"
	"github.com/oshokin/provision/internal/installer"
	"github.com/oshokin/provision/internal/manifest"
	"github.com/oshokin/provision/internal/pipeline"
)

// Plan is the install sequence of one package.
type Plan struct {
	// Package is the planned package.
	Package provision.Package
	// Source is the repository URL.
	Source string
	// Commands is the ordered sequence.
	Commands []string
}

// Installers builds one installer per declaration.
func Installers(cfg *config.Config, decls []manifest.Declaration) ([]*installer.Installer, error) {
	defaults := cfg.DefaultsFor(installer.Kind)
	result := make([]*installer.Installer, 0, len(decls))

	for i := range decls {
		d := &decls[i]

		inst, err := installer.New(d.Package(), d.Source, d.Builder(), installer.WithDefaults(defaults))
		if err != nil {
			return nil, fmt.Errorf("installer for %s: %w", d.Name, err)
		}

		result = append(result, inst)
	}

	return result, nil
}

// Build produces a plan per installer. When stage is set, only that stage's
// commands are included.
func Build(ctx context.Context, installers []*installer.Installer, stage pipeline.StageName) ([]*Plan, error) {
	plans := make([]*Plan, 0, len(installers))

	for _, inst := range installers {
		var (
			commands []string
			err      error
		)

		if stage == "" {
			commands, err = inst.InstallSequence(ctx)
		} else {
			commands, err = inst.StageCommands(ctx, stage)
		}

		if err != nil {
			return nil, fmt.Errorf("plan %s: %w", inst.Package().Name, err)
		}

		plans = append(plans, &Plan{
			Package:  inst.Package(),
			Source:   inst.Source(),
			Commands: commands,
		})
	}

	return plans, nil
}
