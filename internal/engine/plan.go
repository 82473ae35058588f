package engine

import (
	"path/filepath"
	"strings"

	"reposync/internal/config"
)

type Action string

const (
	ActionPull  Action = "pull"
	ActionClone Action = "clone"
)

// SyncTask is one planned pull-or-clone unit of work. Tasks are independent:
// distinct repositories, distinct target directories, no ordering between them.
type SyncTask struct {
	Repo       RemoteRepo
	Action     Action
	TargetPath string
}

// Plan is the reconciliation of the remote listing against the local scan.
type Plan struct {
	Tasks []SyncTask

	// ArchivedLocal lists local checkouts whose remote repository is archived.
	// They are never synced; they are surfaced so the user can prune them.
	ArchivedLocal []string
}

// PlanSync diffs remotes against locals and emits one task per qualifying
// repository. It performs no I/O and is deterministic: task order follows the
// remote listing order.
//
// A repository qualifies when its name carries the configured prefix (if any)
// and it is not excluded by the archived policy. A qualifying repository whose
// directory already exists locally is planned as a pull, otherwise as a clone
// into root/<name> (with the prefix stripped from <name> when configured).
// A remote name seen twice is planned once; later duplicates are dropped.
func PlanSync(remotes []RemoteRepo, locals []LocalRepo, cfg *config.Config) Plan {
	localNames := make(map[string]struct{}, len(locals))
	for _, l := range locals {
		localNames[l.Name] = struct{}{}
	}

	var plan Plan
	planned := make(map[string]struct{}, len(remotes))
	for _, remote := range remotes {
		if cfg.Local.Prefix != "" && !strings.HasPrefix(remote.Name, cfg.Local.Prefix) {
			continue
		}

		dirName := remote.Name
		if cfg.Local.StripPrefix {
			dirName = strings.TrimPrefix(dirName, cfg.Local.Prefix)
		}
		if _, ok := planned[dirName]; ok {
			continue
		}
		planned[dirName] = struct{}{}

		_, existsLocally := localNames[dirName]

		if remote.Archived && cfg.Remote.Archived == "exclude" {
			if existsLocally {
				plan.ArchivedLocal = append(plan.ArchivedLocal, dirName)
			}
			continue
		}

		action := ActionClone
		if existsLocally {
			action = ActionPull
		}
		plan.Tasks = append(plan.Tasks, SyncTask{
			Repo:       remote,
			Action:     action,
			TargetPath: filepath.Join(cfg.Local.Root, dirName),
		})
	}
	return plan
}
