// Package executor runs generation jobs sequentially under provider rate
// limits, persisting each page as it completes so a mid-batch fault never
// discards finished work.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/studybuddy/pseo-engine/internal/retry"
	"github.com/studybuddy/pseo-engine/internal/synthesis"
	"github.com/studybuddy/pseo-engine/internal/types"
)

// Pacing defaults tuned for free-tier generative API quotas
const (
	DefaultBatchSize = 1
	DefaultCallDelay = 20 * time.Second
	DefaultJobPause  = 2 * time.Second
)

// Runner produces a finished page for one keyword. retry.Controller is the
// production implementation.
type Runner interface {
	Run(ctx context.Context, kw types.KeywordRecord, existingContent string) (*retry.Result, error)
}

// PageWriter persists completed pages. store implementations satisfy it.
type PageWriter interface {
	SavePage(ctx context.Context, page *types.PageRecord) error
}

// Job is one unit of batch work. ExistingContent carries the previously
// published body when a page is being refreshed.
type Job struct {
	Keyword         types.KeywordRecord
	ExistingContent string
}

// JobOutcome records how a single job ended
type JobOutcome struct {
	Keyword string
	Result  *retry.Result
	Err     error
}

// BatchOutcome is the final tally for a batch run. When Aborted is set,
// jobs after the aborting one were never attempted; their outcomes are
// absent from Outcomes.
type BatchOutcome struct {
	Outcomes []JobOutcome
	Aborted  bool
	AbortErr error
}

// Generated counts jobs that produced a persisted page
func (b *BatchOutcome) Generated() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Err == nil && o.Result != nil && o.Result.Page != nil {
			n++
		}
	}
	return n
}

// Failed counts jobs that ended in a job-level error
func (b *BatchOutcome) Failed() int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Executor walks a job list in order, one at a time, sleeping between
// provider calls. Zero pacing fields fall back to the defaults; a nil
// Sleep uses a context-aware real sleep.
type Executor struct {
	Runner    Runner
	Writer    PageWriter
	BatchSize int
	CallDelay time.Duration
	JobPause  time.Duration

	// Sleep is swapped out in tests
	Sleep func(ctx context.Context, d time.Duration) error
}

// New wires an executor with default pacing
func New(runner Runner, writer PageWriter) *Executor {
	return &Executor{
		Runner:    runner,
		Writer:    writer,
		BatchSize: DefaultBatchSize,
		CallDelay: DefaultCallDelay,
		JobPause:  DefaultJobPause,
	}
}

func (e *Executor) batchSize() int {
	if e.BatchSize <= 0 {
		return DefaultBatchSize
	}
	return e.BatchSize
}

func (e *Executor) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if e.Sleep != nil {
		return e.Sleep(ctx, d)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RunBatch executes jobs in order. Job-level failures (timeouts, unusable
// responses past the retry cap) are recorded and the batch continues. A
// quota or billing fault aborts the rest of the batch; everything persisted
// so far stays persisted.
func (e *Executor) RunBatch(ctx context.Context, jobs []Job) (*BatchOutcome, error) {
	outcome := &BatchOutcome{}

	for i, job := range jobs {
		if i > 0 {
			if err := e.sleep(ctx, e.JobPause); err != nil {
				return outcome, err
			}
		}
		if i > 0 && i%e.batchSize() == 0 {
			if err := e.sleep(ctx, e.CallDelay); err != nil {
				return outcome, err
			}
		}

		result, err := e.Runner.Run(ctx, job.Keyword, job.ExistingContent)
		if err != nil {
			if synthesis.IsQuota(err) {
				outcome.Aborted = true
				outcome.AbortErr = err
				return outcome, nil
			}
			if ctx.Err() != nil {
				return outcome, ctx.Err()
			}
			outcome.Outcomes = append(outcome.Outcomes, JobOutcome{Keyword: job.Keyword.Keyword, Err: err})
			continue
		}

		if err := e.Writer.SavePage(ctx, result.Page); err != nil {
			outcome.Outcomes = append(outcome.Outcomes, JobOutcome{
				Keyword: job.Keyword.Keyword,
				Err:     fmt.Errorf("persisting %q: %w", result.Page.Slug, err),
			})
			continue
		}
		outcome.Outcomes = append(outcome.Outcomes, JobOutcome{Keyword: job.Keyword.Keyword, Result: result})
	}

	return outcome, nil
}
