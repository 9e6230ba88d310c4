package sidebar

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// ApplyOptions controls how a plan is written out.
type ApplyOptions struct {
	DryRun  bool
	Verbose bool
}

// Applier writes a Plan's changes below a root directory.
type Applier struct {
	root    string
	options ApplyOptions
	report  *Report
	output  io.Writer
	logger  *logrus.Entry
}

func NewApplier(root string, options ApplyOptions, output io.Writer, logger *logrus.Entry) *Applier {
	if output == nil {
		output = io.Discard
	}
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	return &Applier{
		root:    root,
		options: options,
		output:  output,
		logger:  logger.WithField("sub-component", "applier"),
	}
}

// Apply performs the plan's changes in order. Failing to remove a stale
// index file is recorded in the report and does not stop the run; any write
// failure aborts it. The report is returned in both cases.
func (a *Applier) Apply(ctx context.Context, plan *Plan) (*Report, error) {
	a.report = NewReport()
	a.report.DryRun = a.options.DryRun
	a.report.TotalFiles = len(plan.Changes)
	defer a.report.Complete()

	for _, change := range plan.Changes {
		if err := ctx.Err(); err != nil {
			return a.report, err
		}
		if err := a.applyChange(change); err != nil {
			return a.report, err
		}
	}

	a.logger.WithFields(logrus.Fields{
		"created":   a.report.Created,
		"updated":   a.report.Updated,
		"deleted":   a.report.Deleted,
		"unchanged": a.report.Unchanged,
		"dry_run":   a.options.DryRun,
	}).Debug("Applied sidebar plan")

	return a.report, nil
}

func (a *Applier) applyChange(change Change) error {
	target := filepath.Join(a.root, filepath.FromSlash(change.Path))
	log := a.logger.WithField("path", change.Path)

	switch change.Action {
	case ActionUnchanged:
		a.report.Unchanged++
		log.Debug("Generated file is up to date, skipping.")
		return nil

	case ActionDelete:
		a.describe("-", change.Path)
		if a.options.DryRun {
			a.report.Deleted++
			return nil
		}
		if err := os.Remove(target); err != nil {
			log.WithError(err).Warn("Failed to remove stale index file")
			a.report.AddError(change.Path, err)
			return nil
		}
		a.report.Deleted++
		return nil

	case ActionCreate, ActionUpdate:
		symbol := "+"
		if change.Action == ActionUpdate {
			symbol = "~"
		}
		a.describe(symbol, change.Path)
		if !a.options.DryRun {
			if err := os.WriteFile(target, change.Content, 0644); err != nil {
				a.report.AddError(change.Path, err)
				return fmt.Errorf("failed to write %s: %w", change.Path, err)
			}
		}
		if change.Action == ActionCreate {
			a.report.Created++
		} else {
			a.report.Updated++
		}
		return nil

	default:
		return fmt.Errorf("unknown change action %q for %s", change.Action, change.Path)
	}
}

func (a *Applier) describe(symbol, path string) {
	if a.options.Verbose {
		fmt.Fprintf(a.output, "  %s %s\n", symbol, path)
	}
}
