package pipeline

import (
	"path"

	"github.com/oshokin/provision/internal/buildsys"
	"github.com/oshokin/provision/internal/domain/provision"
	"github.com/oshokin/provision/internal/options"
	"github.com/oshokin/provision/internal/scm"
	"github.com/oshokin/provision/internal/source"
)

// StageName identifies a pipeline stage.
type StageName string

// The install stages, in execution order.
const (
	Prepare   StageName = "prepare"
	Download  StageName = "download"
	Configure StageName = "configure"
	Build     StageName = "build"
	Install   StageName = "install"
)

// Input is everything a pipeline run reads. It is never modified.
type Input struct {
	// Package is the package being installed.
	Package provision.Package
	// Source is the repository URL to fetch.
	Source string
	// Options is the frozen installer configuration.
	Options options.Options
	// BuildSystem produces configure, build and install commands.
	// Autotools is used when nil.
	BuildSystem buildsys.System
}

// Run carries the values derived while one sequence is produced.
type Run struct {
	*Input

	// buildDir is resolved once per run and shared by the later stages.
	buildDir string
}

// BuildDir returns {builds}/{name}-{version} for the run's source.
func (r *Run) BuildDir() (string, error) {
	if r.buildDir != "" {
		return r.buildDir, nil
	}

	builds, ok := r.Options.Builds()
	if !ok {
		return "", ErrNoBuildArea
	}

	if !r.Package.HasVersion() {
		return "", ErrNoPackageVersion
	}

	name, err := source.BuildDirectoryName(r.Source, r.Package.Version)
	if err != nil {
		return "", err
	}

	r.buildDir = path.Join(builds, name)

	return r.buildDir, nil
}

func (r *Run) buildSystem() buildsys.System {
	if r.BuildSystem == nil {
		return buildsys.Autotools{}
	}

	return r.BuildSystem
}

// buildContext resolves what the build system needs.
func (r *Run) buildContext() (*buildsys.Context, error) {
	dir, err := r.BuildDir()
	if err != nil {
		return nil, err
	}

	prefix, _ := r.Options.Prefix()

	return &buildsys.Context{
		PackageName: r.Package.Name,
		BuildDir:    dir,
		Prefix:      prefix,
		Options:     r.Options,
	}, nil
}

// Stage describes one pipeline step.
type Stage struct {
	// Name identifies the stage and selects its hooks.
	Name StageName
	// Check validates the stage's preconditions before anything is emitted.
	Check func(r *Run) error
	// Commands produces the stage's own commands.
	Commands func(r *Run) ([]string, error)
}

// DefaultStages returns prepare, download, configure, build and install.
func DefaultStages() []Stage {
	return []Stage{
		{
			Name:     Prepare,
			Check:    requireInstallArea,
			Commands: prepareCommands,
		},
		{
			Name:     Download,
			Check:    requireCheckout,
			Commands: downloadCommands,
		},
		{
			Name:  Configure,
			Check: requireInstallArea,
			Commands: func(r *Run) ([]string, error) {
				return buildStep(r, buildsys.System.Configure)
			},
		},
		{
			Name:  Build,
			Check: requireInstallArea,
			Commands: func(r *Run) ([]string, error) {
				return buildStep(r, buildsys.System.Build)
			},
		},
		{
			Name:  Install,
			Check: requireInstallArea,
			Commands: func(r *Run) ([]string, error) {
				return buildStep(r, buildsys.System.Install)
			},
		},
	}
}

// requireInstallArea checks prefix, builds and version, in that order.
func requireInstallArea(r *Run) error {
	if _, ok := r.Options.Prefix(); !ok {
		return ErrNoInstallationArea
	}

	return requireCheckout(r)
}

// requireCheckout checks builds and version, in that order.
func requireCheckout(r *Run) error {
	if _, ok := r.Options.Builds(); !ok {
		return ErrNoBuildArea
	}

	if !r.Package.HasVersion() {
		return ErrNoPackageVersion
	}

	return nil
}

func prepareCommands(r *Run) ([]string, error) {
	prefix, _ := r.Options.Prefix()
	builds, _ := r.Options.Builds()

	return []string{
		"mkdir -p " + prefix,
		"mkdir -p " + builds,
	}, nil
}

func downloadCommands(r *Run) ([]string, error) {
	dir, err := r.BuildDir()
	if err != nil {
		return nil, err
	}

	return scm.FetchCommands(r.Options.SCM(), r.Source, dir)
}

func buildStep(r *Run, step func(buildsys.System, *buildsys.Context) []string) ([]string, error) {
	c, err := r.buildContext()
	if err != nil {
		return nil, err
	}

	return step(r.buildSystem(), c), nil
}
