package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"reposync/internal/git"
)

// SyncOutcome is the recorded result of executing one SyncTask. Err is nil on
// success; for successful pulls, Pull says whether anything actually moved.
type SyncOutcome struct {
	Task SyncTask
	Pull git.PullResult
	Err  error
}

func (o SyncOutcome) Failed() bool { return o.Err != nil }

// Executor runs planned tasks concurrently against a git.Runner.
type Executor struct {
	runner      git.Runner
	concurrency int
}

func NewExecutor(runner git.Runner, concurrency int) (*Executor, error) {
	if runner == nil {
		return nil, errors.New("runner is nil")
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("concurrency must be >= 1, got %d", concurrency)
	}
	return &Executor{runner: runner, concurrency: concurrency}, nil
}

// Execute streams per-task outcomes as they complete.
//
// Channel semantics:
//   - At most s.concurrency git subprocesses run at once; each is a blocking
//     external operation, so overlapping them is where the wall-clock win is.
//   - In the normal (non-canceled) case, exactly one SyncOutcome is sent per
//     task, in completion order.
//   - A task failure is data (Outcome.Err), never a reason to stop siblings;
//     there is no retry.
//   - On context cancellation no new subprocesses are started; already-running
//     ones are killed by their command context and report as failures. Tasks
//     never started emit no outcome.
//   - The channel is closed once all started tasks have reported.
func (e *Executor) Execute(ctx context.Context, tasks []SyncTask) <-chan SyncOutcome {
	out := make(chan SyncOutcome)

	go func() {
		defer close(out)

		var g errgroup.Group
		g.SetLimit(e.concurrency)

		for _, task := range tasks {
			if ctx.Err() != nil {
				break
			}
			task := task
			g.Go(func() error {
				out <- e.runTask(ctx, task)
				return nil
			})
		}
		_ = g.Wait()
	}()

	return out
}

func (e *Executor) runTask(ctx context.Context, task SyncTask) SyncOutcome {
	switch task.Action {
	case ActionPull:
		res, err := e.runner.Pull(ctx, task.TargetPath)
		return SyncOutcome{Task: task, Pull: res, Err: err}
	case ActionClone:
		err := e.runner.Clone(ctx, task.Repo.CloneURL, task.TargetPath)
		return SyncOutcome{Task: task, Err: err}
	default:
		return SyncOutcome{Task: task, Err: fmt.Errorf("unknown action %q", task.Action)}
	}
}
