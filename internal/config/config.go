package config

import (
	"errors"
	"fmt"
	"net/url"
	"runtime"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect sync
	// behavior, keep the CLI flags in internal/cli/sync.go in sync.
	Remote  Remote
	Local   Local
	Output  Output
	Runtime Runtime
}

type Remote struct {
	// Org is the GitHub organization account whose repositories define the
	// sync scope (name or URL; see --org).
	Org string

	// Team optionally narrows the scope to a team slug within Org (see --team).
	Team string

	// Token is an explicit GitHub access token (see --token). When empty, the
	// token is resolved from GITHUB_TOKEN or the gh CLI.
	Token string

	// Archived controls how archived remote repos are handled (see --archived).
	// Allowed values: include, exclude.
	Archived string
}

type Local struct {
	// Root is the directory that holds (and receives) the local checkouts
	// (see --root).
	Root string

	// Prefix plans only repositories whose name starts with this value
	// (see --prefix). Empty means no filtering.
	Prefix string

	// StripPrefix removes Prefix from the local directory name, so the repo
	// team_widgets is checked out as widgets (see --strip-prefix).
	StripPrefix bool
}

type Output struct {
	// Format controls the console output format (see --output).
	// Allowed values: text, json, ndjson.
	Format string

	// DryRun resolves the remote set and prints the sync plan without running
	// any git operation (see --dry-run).
	DryRun bool
}

type Runtime struct {
	// Concurrency bounds simultaneous pull/clone subprocesses (see --concurrency).
	// Must be >= 1.
	Concurrency int

	// Timeout is the global deadline for the whole run (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// GitTimeout bounds each individual git subprocess (see --git-timeout).
	// Must be > 0.
	GitTimeout time.Duration

	// Verbose enables more detailed diagnostics (primarily GitHub API calls
	// and full git output on failures).
	Verbose bool
}

// DefaultConcurrency is a small multiple of the machine's parallelism: the
// operations are I/O bound, so running a few per CPU keeps the network busy
// without exhausting file descriptors on large teams.
func DefaultConcurrency() int {
	return 4 * runtime.NumCPU()
}

func New() *Config {
	return &Config{
		Remote: Remote{
			Archived: "exclude",
		},
		Output: Output{
			Format: "text",
		},
		Runtime: Runtime{
			Concurrency: DefaultConcurrency(),
			Timeout:     30 * time.Minute,
			GitTimeout:  10 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	// Normalize account selectors.
	if c.Remote.Org != "" {
		org, err := normalizeAccountSelector(c.Remote.Org)
		if err != nil {
			return fmt.Errorf("invalid --org value: %w", err)
		}
		c.Remote.Org = org
	}

	if c.Remote.Org == "" {
		return errors.New("--org must be provided")
	}
	if strings.Contains(c.Remote.Team, "/") {
		return fmt.Errorf("invalid --team value %q: expected a team slug", c.Remote.Team)
	}

	if strings.TrimSpace(c.Local.Root) == "" {
		return errors.New("--root must be provided")
	}
	if c.Local.StripPrefix && c.Local.Prefix == "" {
		return errors.New("--strip-prefix requires --prefix")
	}

	c.Remote.Archived = normalizeEnumValue(c.Remote.Archived)
	if c.Remote.Archived == "" {
		c.Remote.Archived = "exclude"
	}
	if c.Remote.Archived != "include" && c.Remote.Archived != "exclude" {
		return fmt.Errorf("unsupported --archived: %s (must be one of: include, exclude)", c.Remote.Archived)
	}

	c.Output.Format = normalizeEnumValue(c.Output.Format)
	if c.Output.Format == "" {
		c.Output.Format = "text"
	}
	if c.Output.Format != "text" && c.Output.Format != "json" && c.Output.Format != "ndjson" {
		return fmt.Errorf("unsupported --output: %s (must be one of: text, json, ndjson)", c.Output.Format)
	}

	if c.Runtime.Concurrency <= 0 {
		return errors.New("--concurrency must be >= 1")
	}
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}
	if c.Runtime.GitTimeout <= 0 {
		return errors.New("--git-timeout must be > 0")
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func normalizeAccountSelector(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	// Accept a raw account name, or a GitHub URL like:
	//   https://github.com/<name>
	//   https://github.com/orgs/<name>
	//   github.com/<name>
	if strings.HasPrefix(raw, "github.com/") || strings.HasPrefix(raw, "www.github.com/") {
		raw = "https://" + raw
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		u, err := url.Parse(raw)
		if err != nil {
			return "", fmt.Errorf("%q", raw)
		}
		host := strings.ToLower(u.Hostname())
		if host == "www.github.com" {
			host = "github.com"
		}
		if host != "github.com" {
			return "", fmt.Errorf("%q", raw)
		}
		parts := strings.FieldsFunc(strings.Trim(u.Path, "/"), func(r rune) bool { return r == '/' })
		if len(parts) == 0 {
			return "", fmt.Errorf("%q", raw)
		}
		if parts[0] == "orgs" {
			if len(parts) < 2 {
				return "", fmt.Errorf("%q", raw)
			}
			return parts[1], nil
		}
		return parts[0], nil
	}

	// Basic sanity: reject obvious repo-like inputs.
	if strings.Contains(raw, "/") {
		return "", fmt.Errorf("%q", raw)
	}
	return raw, nil
}
