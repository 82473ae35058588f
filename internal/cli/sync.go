package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"reposync/internal/config"
	"reposync/internal/engine"
	"reposync/internal/flags"
	"reposync/internal/git"
	gh "reposync/internal/github"
)

var cfg = config.New()

const syncHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
	Reposync authenticates to GitHub using an access token.

	Sources (in order):
	1) --token flag
	2) GITHUB_TOKEN environment variable
	3) GitHub CLI (gh) authentication via gh auth token (if gh is installed and logged in)

	Without a token, only public repositories are listed (at a reduced rate limit).

	Flag defaults can also come from the environment:
	  REPOSYNC_ORG     default for --org
	  REPOSYNC_ROOT    default for --root
	  REPOSYNC_PREFIX  default for --prefix

  Examples:
    # macOS/Linux
    export GITHUB_TOKEN="<your_token>"
    reposync sync --org my-org --root ~/src

		# GitHub CLI auth
		gh auth login
		reposync sync --org my-org --team platform --root ~/src

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull existing checkouts and clone missing team repositories",
	Long: `Sync a local directory against the repositories of a GitHub organization
or team.

Every repository in the remote set is planned exactly once: as a pull when a
checkout with its name already exists under --root, otherwise as a clone.
Operations run concurrently (bounded by --concurrency), and one repository
failing never stops the others; failures are collected and reported at the end.

Authentication:
  Reposync uses a GitHub access token. It prefers --token, then GITHUB_TOKEN,
  then GitHub CLI authentication if the gh CLI is installed and logged in.

Output:
	Console output is controlled by --output (default: text).
	NDJSON mode emits one JSON object per line: lifecycle Events with a "type"
	field (run.started, repo.synced, run.finished); per-repo outcomes are nested
	under "result".

Exit codes:
	0 = every repository synced
	1 = one or more repositories failed to pull or clone
	2 = fatal error (listing or local scan failed; nothing was synced)

Examples:
  # Token via environment variable
  export GITHUB_TOKEN="<your_token>"
  reposync sync --org my-org --root ~/src

  # Only team repos, with the team prefix stripped from directory names
  reposync sync --org my-org --prefix team_ --strip-prefix --root ~/src

	# AI Agent: stream machine-readable events to stdout
	reposync sync --org my-org --root ~/src --output ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 && os.Getenv("REPOSYNC_ORG") == "" {
			_ = cmd.Help()
			return
		}

		applyEnvDefaults(cmd, cfg)

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		ctx, cancel := context.WithTimeout(ctx, cfg.Runtime.Timeout)
		defer cancel()

		token, _, err := gh.ResolveAuthToken(ctx, cfg.Remote.Token)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(2)
		}

		client, err := gh.NewClient(ctx, token, gh.WithVerbose(cfg.Runtime.Verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create GitHub client: %v\n", err)
			os.Exit(2)
		}

		runner := git.NewExecRunner(cfg.Runtime.GitTimeout)
		eng := engine.NewEngine(client, runner)
		os.Exit(eng.Run(ctx, cfg))
	},
}

// applyEnvDefaults fills flags the user did not set from REPOSYNC_* variables,
// so the tool can run bare in a shell profile or cron entry.
func applyEnvDefaults(cmd *cobra.Command, cfg *config.Config) {
	if cmd == nil {
		return
	}
	if !cmd.Flags().Changed(flags.FlagOrg) {
		if v := os.Getenv("REPOSYNC_ORG"); v != "" {
			cfg.Remote.Org = v
		}
	}
	if !cmd.Flags().Changed(flags.FlagRoot) {
		if v := os.Getenv("REPOSYNC_ROOT"); v != "" {
			cfg.Local.Root = v
		}
	}
	if !cmd.Flags().Changed(flags.FlagPrefix) {
		if v := os.Getenv("REPOSYNC_PREFIX"); v != "" {
			cfg.Local.Prefix = v
		}
	}
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.SetHelpTemplate(syncHelpTemplate)

	// Remote
	syncCmd.Flags().StringVar(&cfg.Remote.Org, flags.FlagOrg, "", "GitHub organization whose repositories define the sync scope (name or URL)")
	syncCmd.Flags().StringVar(&cfg.Remote.Team, flags.FlagTeam, "", "Team slug within --org to narrow the repository set")
	syncCmd.Flags().StringVar(&cfg.Remote.Token, flags.FlagToken, "", "GitHub access token (default: GITHUB_TOKEN, then gh CLI auth)")
	syncCmd.Flags().StringVar(&cfg.Remote.Archived, flags.FlagArchived, "exclude", "Archived repos policy: include|exclude (default: exclude)")

	// Local
	syncCmd.Flags().StringVar(&cfg.Local.Root, flags.FlagRoot, "", "Directory that holds the local checkouts")
	syncCmd.Flags().StringVar(&cfg.Local.Prefix, flags.FlagPrefix, "", "Only sync repositories whose name starts with this prefix")
	syncCmd.Flags().BoolVar(&cfg.Local.StripPrefix, flags.FlagStripPrefix, false, "Strip --prefix from local directory names (requires --prefix)")

	// Output
	syncCmd.Flags().StringVar(&cfg.Output.Format, flags.FlagOutput, "text", "Output format: text|json|ndjson (default: text)")
	syncCmd.Flags().BoolVar(&cfg.Output.DryRun, flags.FlagDryRun, false, "Resolve repos and print the plan without running git")

	// Runtime
	syncCmd.Flags().IntVar(&cfg.Runtime.Concurrency, flags.FlagConcurrency, cfg.Runtime.Concurrency, "Maximum simultaneous pull/clone operations (default: 4x CPUs)")
	syncCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout for the whole run (default: 30m)")
	syncCmd.Flags().DurationVar(&cfg.Runtime.GitTimeout, flags.FlagGitTimeout, cfg.Runtime.GitTimeout, "Timeout for each git subprocess (default: 10m)")
}
