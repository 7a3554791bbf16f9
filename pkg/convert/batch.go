package convert

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Job is one named input text queued for conversion.
type Job struct {
	// Name identifies the input, usually a file name.
	Name string
	// Text is the raw SQL text, possibly containing many statements.
	Text string
	// Err marks a job that could not be read. It is carried into the
	// JobResult so the report can account for every input.
	Err error
}

// Runner converts many jobs concurrently. Jobs are independent: statements
// within a job run in order on one worker, jobs are spread across workers,
// and one job's failure never affects another.
type Runner struct {
	pipeline *Pipeline
	workers  int
	logger   *slog.Logger
}

// NewRunner creates a batch runner. workers caps concurrent jobs; values
// below 1 mean one worker.
func NewRunner(p *Pipeline, workers int, logger *slog.Logger) *Runner {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{pipeline: p, workers: workers, logger: logger}
}

// Run converts all jobs and returns one JobResult per job, in input order.
// The error is non-nil only when ctx is cancelled; per-job failures are
// reported in the results.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if job.Err != nil {
				r.logger.Warn("skipping unreadable input", "name", job.Name, "error", job.Err)
				results[i] = JobResult{Name: job.Name, Err: job.Err}
				return nil
			}
			r.logger.Info("converting", "name", job.Name)
			results[i] = r.pipeline.ConvertText(gctx, job.Name, job.Text)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
