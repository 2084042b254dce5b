package installer

import (
	"context"
	"errors"

	"github.com/oshokin/provision/internal/buildsys"
	"github.com/oshokin/provision/internal/domain/provision"
	"github.com/oshokin/provision/internal/logger"
	"github.com/oshokin/provision/internal/options"
	"github.com/oshokin/provision/internal/pipeline"
)

// Kind is the installer kind used to look up deployment defaults.
const Kind = "scm"

// errNoSource is returned when an installer is created without a source URL.
var errNoSource = errors.New("source must be provided")

// Installer produces the install sequence for one package.
// It is immutable after New and safe for concurrent use.
type Installer struct {
	// input is shared read-only by every pipeline run.
	input *pipeline.Input
	// pipeline composes the stages.
	pipeline *pipeline.Pipeline
}

// Option configures an installer at construction time.
type Option func(*settings)

// settings collects options before the installer is frozen.
type settings struct {
	defaults    map[string]string
	buildSystem buildsys.System
	stages      []pipeline.Stage
}

// WithDefaults merges a deployment-wide defaults layer under the declared options.
func WithDefaults(layer map[string]string) Option {
	return func(s *settings) {
		if s.defaults == nil {
			s.defaults = make(map[string]string, len(layer))
		}

		for key, value := range layer {
			if _, ok := s.defaults[key]; !ok {
				s.defaults[key] = value
			}
		}
	}
}

// WithBuildSystem replaces the default autotools build system.
func WithBuildSystem(system buildsys.System) Option {
	return func(s *settings) {
		if system != nil {
			s.buildSystem = system
		}
	}
}

// WithStages replaces the default stage list.
func WithStages(stages ...pipeline.Stage) Option {
	return func(s *settings) {
		s.stages = stages
	}
}

// New creates an installer. The builder is cloned, so later changes to it do
// not affect the installer. Missing prefix, builds or version are reported by
// InstallSequence, not here.
func New(pkg provision.Package, source string, builder *options.Builder, opts ...Option) (*Installer, error) {
	if source == "" {
		return nil, errNoSource
	}

	s := new(settings)
	for _, opt := range opts {
		opt(s)
	}

	if builder == nil {
		builder = options.NewBuilder()
	}

	frozen := builder.Clone().MergeDefaults(s.defaults).Build()

	return &Installer{
		input: &pipeline.Input{
			Package:     pkg,
			Source:      source,
			Options:     frozen,
			BuildSystem: s.buildSystem,
		},
		pipeline: pipeline.New(s.stages...),
	}, nil
}

// Package returns the package reference.
func (i *Installer) Package() provision.Package {
	return i.input.Package
}

// Source returns the source URL.
func (i *Installer) Source() string {
	return i.input.Source
}

// Options returns the frozen options.
func (i *Installer) Options() options.Options {
	return i.input.Options
}

// Stages returns the stage names in execution order.
func (i *Installer) Stages() []pipeline.StageName {
	return i.pipeline.Stages()
}

// InstallSequence returns every command of every stage, in order.
func (i *Installer) InstallSequence(ctx context.Context) ([]string, error) {
	ctx = logger.WithKV(ctx, "package", i.input.Package.String())

	sequence, err := i.pipeline.InstallSequence(ctx, i.input)
	if err != nil {
		return nil, err
	}

	logger.DebugKV(ctx, "Install sequence produced", "commands", len(sequence))

	return sequence, nil
}

// StageCommands returns the commands of one stage.
func (i *Installer) StageCommands(ctx context.Context, stage pipeline.StageName) ([]string, error) {
	ctx = logger.WithKV(ctx, "package", i.input.Package.String())

	return i.pipeline.StageCommands(ctx, i.input, stage)
}
