package applier

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"github.com/oshokin/provision/internal/config"
	"github.com/oshokin/provision/internal/repository/runs"
)

// StatusOptions are inputs accepted by the status entry point.
type StatusOptions struct {
	// ConfigPath is the deployment settings file.
	ConfigPath string
	// Out receives the table; os.Stdout when nil.
	Out io.Writer
}

// Status prints the recorded deliveries, oldest first.
func Status(ctx context.Context, opts *StatusOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	records, err := runs.NewFileRepository(cfg.RunsFile).Load(ctx)
	if err != nil {
		return err
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "ID\tPACKAGE\tVERSION\tSTATUS\tSTARTED\tDETAILS")

	for _, r := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Package, r.Version, statusLabel(r.Status), r.StartedAt.Format(time.RFC3339), details(r))
	}

	return w.Flush()
}

func statusLabel(s runs.Status) string {
	switch s {
	case runs.StatusSucceeded:
		return color.GreenString(string(s))
	case runs.StatusFailed:
		return color.RedString(string(s))
	default:
		return string(s)
	}
}

func details(r *runs.Record) string {
	if r.Status != runs.StatusFailed || r.FailedIndex < 0 || r.FailedIndex >= len(r.Commands) {
		return ""
	}

	return fmt.Sprintf("failed at #%d: %s", r.FailedIndex+1, r.Commands[r.FailedIndex])
}
