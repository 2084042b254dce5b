package pipeline

import (
	"context"
	"fmt"

	"github.com/oshokin/provision/internal/logger"
)

// Pipeline runs an ordered list of stages.
type Pipeline struct {
	// stages are executed in slice order.
	stages []Stage
}

// New returns a pipeline over the given stages, or over DefaultStages when none are given.
func New(stages ...Stage) *Pipeline {
	if len(stages) == 0 {
		stages = DefaultStages()
	}

	return &Pipeline{
		stages: append([]Stage(nil), stages...),
	}
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []StageName {
	names := make([]StageName, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.Name)
	}

	return names
}

// InstallSequence concatenates every stage's commands in order.
// Any failure aborts the whole sequence and no commands are returned.
func (p *Pipeline) InstallSequence(ctx context.Context, in *Input) ([]string, error) {
	var (
		run      = &Run{Input: in}
		sequence []string
	)

	for _, s := range p.stages {
		commands, err := p.runStage(ctx, run, s)
		if err != nil {
			return nil, err
		}

		sequence = append(sequence, commands...)
	}

	return sequence, nil
}

// StageCommands returns the commands of a single stage, hooks included.
func (p *Pipeline) StageCommands(ctx context.Context, in *Input, name StageName) ([]string, error) {
	for _, s := range p.stages {
		if s.Name == name {
			return p.runStage(ctx, &Run{Input: in}, s)
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownStage, name)
}

func (p *Pipeline) runStage(ctx context.Context, run *Run, s Stage) ([]string, error) {
	if s.Check != nil {
		if err := s.Check(run); err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
	}

	own, err := s.Commands(run)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}

	pre, post := run.Options.Hooks(string(s.Name))

	commands := make([]string, 0, len(pre)+len(own)+len(post))
	commands = append(commands, pre...)
	commands = append(commands, own...)
	commands = append(commands, post...)

	logger.DebugKV(ctx, "Stage commands produced", "stage", s.Name, "count", len(commands))

	return commands, nil
}
