// Package git runs pull and clone operations by shelling out to the installed
// git binary. Using the real tool (rather than a pure-Go reimplementation)
// keeps credential helpers, SSH configuration and LFS working exactly as they
// do for the user's interactive git.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Runner executes git operations against the local filesystem.
//
// Implementations must be safe for concurrent use: the sync executor invokes
// Pull and Clone from many goroutines at once, each against a distinct
// directory.
type Runner interface {
	// Pull updates the existing checkout at dir from its configured remote.
	Pull(ctx context.Context, dir string) (PullResult, error)

	// Clone clones cloneURL into target. target must not already contain a
	// checkout; git itself refuses to clone into a nonempty directory, which
	// is the behavior we want for stray directories that shadow a repo name.
	Clone(ctx context.Context, cloneURL, target string) error
}

// PullResult reports what a successful pull actually did.
type PullResult struct {
	// Updated is false when the checkout was already at the remote head.
	Updated bool

	// Detail is git's own description of the update (branch and ref movement),
	// empty for a no-op pull.
	Detail string
}

// ExecRunner is the production Runner. It invokes the git binary found on
// PATH (or GitPath, if set) and bounds every subprocess with Timeout.
type ExecRunner struct {
	GitPath string
	Timeout time.Duration
}

func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

func (r *ExecRunner) git() string {
	if r.GitPath != "" {
		return r.GitPath
	}
	return "git"
}

func (r *ExecRunner) Pull(ctx context.Context, dir string) (PullResult, error) {
	stdout, stderr, err := r.run(ctx, dir, "pull", "--ff-only")
	if err != nil {
		return PullResult{}, fmt.Errorf("git pull in %s: %w: %s", dir, err, firstLine(stderr))
	}
	if isUpToDate(stdout) {
		return PullResult{}, nil
	}
	return PullResult{Updated: true, Detail: stdout}, nil
}

func (r *ExecRunner) Clone(ctx context.Context, cloneURL, target string) error {
	_, stderr, err := r.run(ctx, "", "clone", cloneURL, target)
	if err != nil {
		return fmt.Errorf("git clone %s: %w: %s", cloneURL, err, firstLine(stderr))
	}
	return nil
}

func (r *ExecRunner) run(ctx context.Context, cwd string, args ...string) (string, string, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.git(), args...)
	if cwd != "" {
		cmd.Dir = cwd
	}
	outbuf := bytes.NewBuffer(nil)
	errbuf := bytes.NewBuffer(nil)
	cmd.Stdout = outbuf
	cmd.Stderr = errbuf

	err := cmd.Run()
	stdout := strings.TrimSpace(outbuf.String())
	stderr := strings.TrimSpace(errbuf.String())
	if err != nil {
		if ctx.Err() != nil {
			return stdout, stderr, fmt.Errorf("timed out after %s", r.Timeout)
		}
		return stdout, stderr, err
	}
	return stdout, stderr, nil
}

// isUpToDate reports whether git's pull output indicates that nothing moved.
// The phrasing varies across git versions and locales we care about; tag-only
// fetches are treated as no-ops as well.
func isUpToDate(stdout string) bool {
	if stdout == "" || stdout == "Already up to date." {
		return true
	}
	if strings.Contains(stdout, "is up to date") {
		return true
	}
	if strings.Contains(stdout, "[new tag]") {
		return true
	}
	return false
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
