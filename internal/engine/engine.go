package engine

import (
	"context"
	"fmt"
	"os"

	"reposync/internal/config"
	"reposync/internal/git"
	gh "reposync/internal/github"
	"reposync/internal/output"
)

func exitCodeForRun(fatal, failed bool) int {
	// Exit code contract:
	// 0 = everything synced
	// 1 = one or more repositories failed to sync
	// 2 = fatal error (listing or local scan failed, no sync ran)
	if fatal {
		return 2
	}
	if failed {
		return 1
	}
	return 0
}

type Engine struct {
	Client *gh.Client
	Runner git.Runner

	// listRemote is a test seam for remote discovery.
	// If nil, Engine queries the GitHub API.
	listRemote func(ctx context.Context, cfg *config.Config) ([]RemoteRepo, error)
}

func NewEngine(client *gh.Client, runner git.Runner) *Engine {
	return &Engine{
		Client: client,
		Runner: runner,
	}
}

func (e *Engine) discover(ctx context.Context, cfg *config.Config) ([]RemoteRepo, error) {
	if e.listRemote != nil {
		return e.listRemote(ctx, cfg)
	}
	return ListRemoteRepos(ctx, e.Client, cfg)
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()
	if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.Format)); err != nil {
		outMgr.Close()
		return nil, err
	}
	return outMgr, nil
}

// Run executes one full reconciliation: discover the remote set, scan the
// local root, plan, execute, and report. It returns the process exit code.
func (e *Engine) Run(ctx context.Context, cfg *config.Config) int {
	progress := cfg.Output.Format == "text"

	if progress {
		fmt.Fprintln(os.Stderr, "Discovering remote repositories...")
	}
	remotes, err := e.discover(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeForRun(true, false)
	}

	locals, err := ScanLocalRepos(cfg.Local.Root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeForRun(true, false)
	}

	plan := PlanSync(remotes, locals, cfg)
	if progress {
		fmt.Fprintf(os.Stderr, "Planned %d repositories (%d remote, %d already local).\n",
			len(plan.Tasks), len(remotes), len(locals))
	}

	if cfg.Output.DryRun {
		for _, task := range plan.Tasks {
			fmt.Printf("%-5s %s -> %s\n", task.Action, task.Repo.Name, task.TargetPath)
		}
		return 0
	}

	executor, err := NewExecutor(e.Runner, cfg.Runtime.Concurrency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCodeForRun(true, false)
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return exitCodeForRun(true, false)
	}
	defer outMgr.Close()

	_ = outMgr.Write(output.Event{Type: "run.started", Repos: len(plan.Tasks)})

	var summary Summary
	for outcome := range executor.Execute(ctx, plan.Tasks) {
		summary.Add(outcome)
		_ = outMgr.Write(resultFromOutcome(outcome))
	}

	for _, name := range plan.ArchivedLocal {
		_ = outMgr.Write(output.Result{Repo: name, Status: output.StatusArchived})
	}

	// Tasks that never started (global timeout or interrupt) must not be
	// silently reported as synced.
	skipped := len(plan.Tasks) - summary.Total()
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "Canceled before %d repositories were attempted.\n", skipped)
	}

	code := exitCodeForRun(false, summary.Failed > 0 || skipped > 0)
	_ = outMgr.Write(output.Event{
		Type:     "run.finished",
		Counts:   &output.Counts{Pulled: summary.Pulled, Cloned: summary.Cloned, Failed: summary.Failed},
		ExitCode: &code,
	})
	return code
}

func resultFromOutcome(o SyncOutcome) output.Result {
	r := output.Result{
		Repo:   o.Task.Repo.Name,
		Action: string(o.Task.Action),
	}
	switch {
	case o.Failed():
		r.Status = output.StatusFailed
		r.Detail = o.Err.Error()
	case o.Task.Action == ActionClone:
		r.Status = output.StatusCloned
	case o.Pull.Updated:
		r.Status = output.StatusUpdated
		r.Detail = o.Pull.Detail
	default:
		r.Status = output.StatusUpToDate
	}
	return r
}
