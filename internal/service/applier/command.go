package applier

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/provision/internal/config"
	"github.com/oshokin/provision/internal/delivery"
	"github.com/oshokin/provision/internal/logger"
	"github.com/oshokin/provision/internal/repository/runs"
	"github.com/oshokin/provision/internal/service/common"
	"github.com/oshokin/provision/internal/service/planner"
)

// Options are inputs accepted by the apply entry point.
type Options struct {
	// ConfigPath is the deployment settings file.
	ConfigPath string
	// ManifestPath is the package declaration file.
	ManifestPath string
	// Packages restricts delivery to these names; all packages when empty.
	Packages []string
	// DryRun prints the commands instead of running them.
	DryRun bool
	// Out receives command output, or the printed commands in a dry run.
	Out io.Writer
	// Deliverer overrides the shell delivery. Used by tests.
	Deliverer delivery.Deliverer
}

// runner holds the collaborators of a single apply execution.
type runner struct {
	cfg       *config.Config
	plans     []*planner.Plan
	deliverer delivery.Deliverer
	repo      runs.Repository
}

// Run executes the apply lifecycle and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "applier")

	cfg, plans, err := planner.Load(ctx, &planner.Options{
		ConfigPath:   opts.ConfigPath,
		ManifestPath: opts.ManifestPath,
		Packages:     opts.Packages,
	})
	if err != nil {
		return err
	}

	if opts.DryRun {
		logger.Info(ctx, "Dry run, commands are printed only")

		p := &delivery.Printer{Out: opts.Out}
		for _, plan := range plans {
			if err = p.Deliver(ctx, plan.Commands); err != nil {
				return err
			}
		}

		return nil
	}

	lock := &delivery.Lock{Path: cfg.LockFile}

	release, err := lock.Acquire(ctx)
	if err != nil {
		return err
	}

	defer release()

	r := &runner{
		cfg:       cfg,
		plans:     plans,
		deliverer: opts.Deliverer,
		repo:      runs.NewFileRepository(cfg.RunsFile),
	}

	if r.deliverer == nil {
		r.deliverer = &delivery.Shell{
			Path:   cfg.Shell,
			Stdout: opts.Out,
		}
	}

	if err = r.Run(ctx); err != nil {
		logger.ErrorKV(ctx, "Apply failed", "error", err)

		return err
	}

	logger.Info(ctx, "Apply completed")

	return nil
}

// Run delivers every plan in order and stops at the first failure.
func (r *runner) Run(ctx context.Context) error {
	actor, err := common.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Unable to detect actor", "error", err)
	}

	for _, plan := range r.plans {
		record := runs.NewRecord(plan.Package, actor, plan.Commands)
		pkgCtx := logger.WithFields(ctx, "package", plan.Package.String(), "run_id", record.ID)

		logger.InfoKV(pkgCtx, "Delivering install sequence", "commands", len(plan.Commands))

		deliverErr := r.deliverer.Deliver(pkgCtx, plan.Commands)
		if deliverErr == nil {
			record.Succeed()
		} else {
			record.Fail(failedIndex(deliverErr), deliverErr)
		}

		if err = r.repo.Append(ctx, record); err != nil {
			logger.WarnKV(pkgCtx, "Unable to save run record", "error", err)
		}

		if deliverErr != nil {
			return fmt.Errorf("deliver %s: %w", plan.Package, deliverErr)
		}

		logger.InfoKV(pkgCtx, "Package installed", "duration", record.Duration())
	}

	return nil
}

// failedIndex extracts the failed command position, or -1 when unknown.
func failedIndex(err error) int {
	var cmdErr *delivery.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Index
	}

	return -1
}
