package runner

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gomdlinks/internal/logging"
)

// FileChecker checks a single file. *Adapter is the production implementation.
type FileChecker interface {
	CheckFile(ctx context.Context, path string) (FileOutcome, error)
}

// Runner checks many files concurrently.
type Runner struct {
	// Checker handles one file at a time.
	Checker FileChecker
}

// New creates a new Runner with the given file checker.
func New(checker FileChecker) *Runner {
	return &Runner{Checker: checker}
}

// Run checks every file in opts.Files concurrently and returns the outcomes in
// input order.
//
// All checks must finish before Run returns. If any check fails, the other
// checks are cancelled and Run returns the first error with a nil Result;
// there are no partial results.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)

	if len(opts.Files) == 0 {
		return NewResult(nil), nil
	}

	logger.Debug("checking files",
		logging.FieldFiles, len(opts.Files),
		logging.FieldJobs, opts.Jobs,
	)

	// Each goroutine owns one slot, so no locking is needed.
	outcomes := make([]FileOutcome, len(opts.Files))

	group, groupCtx := errgroup.WithContext(ctx)
	if opts.Jobs > 0 {
		group.SetLimit(opts.Jobs)
	}

	for i, path := range opts.Files {
		group.Go(func() error {
			outcome, err := r.Checker.CheckFile(groupCtx, path)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("check files: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	result := NewResult(outcomes)

	logger.Debug("checked files",
		logging.FieldFilesChecked, result.Stats.FilesChecked,
		logging.FieldLinksTotal, result.Stats.LinksTotal,
		logging.FieldDeadLinks, result.Stats.LinksDead,
	)

	return result, nil
}
