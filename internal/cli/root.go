package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "reposync",
	Short: "Keep a directory of team repositories in sync with GitHub",
	Long: `Reposync mirrors the repositories of a GitHub organization or team into a
local directory: existing checkouts are pulled, missing ones are cloned, and
each run ends with a pulled/cloned/failed summary.

Reposync never deletes anything. Repositories that disappear from the remote
set, and local checkouts of archived repositories, are reported but left alone.

Examples:
	# Show available commands and global flags
	reposync --help

	# Sync all repositories of an organization into ~/src
	reposync sync --org my-org --root ~/src

	# Print build info
	reposync version`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints every GitHub API call and full git error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
