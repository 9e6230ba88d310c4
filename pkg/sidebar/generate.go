package sidebar

import (
	"context"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Generate regenerates the sidebar and index files below root.
func Generate(ctx context.Context, root string, opts Options, applyOpts ApplyOptions, output io.Writer, logger *logrus.Entry) (*Report, error) {
	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}
	logger = logger.WithField("root", root)

	plan, err := Build(os.DirFS(root), opts)
	if err != nil {
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"index_files": len(plan.Indexes),
		"pending":     len(plan.Pending()),
	}).Debug("Built sidebar plan")

	return NewApplier(root, applyOpts, output, logger).Apply(ctx, plan)
}
