package flags

// Package flags defines canonical CLI flag names shared across the CLI and engine.
// Keeping these as constants helps avoid drift between Cobra flag wiring and other
// code paths that need to reference flags (e.g. error messages that tell the user
// which flag to set).
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Remote.Org, flags.FlagOrg, "", "...")
//	arg := "--" + flags.FlagOrg
const (
	// Remote
	FlagOrg      = "org"
	FlagTeam     = "team"
	FlagToken    = "token"
	FlagArchived = "archived"

	// Local
	FlagRoot        = "root"
	FlagPrefix      = "prefix"
	FlagStripPrefix = "strip-prefix"

	// Output
	FlagOutput = "output"
	FlagDryRun = "dry-run"

	// Runtime
	FlagConcurrency = "concurrency"
	FlagTimeout     = "timeout"
	FlagGitTimeout  = "git-timeout"
)
