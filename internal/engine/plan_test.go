package engine

import (
	"path/filepath"
	"testing"

	"reposync/internal/config"
)

func planConfig(root string) *config.Config {
	cfg := config.New()
	cfg.Local.Root = root
	return cfg
}

func remotes(names ...string) []RemoteRepo {
	out := make([]RemoteRepo, 0, len(names))
	for _, n := range names {
		out = append(out, RemoteRepo{Name: n, CloneURL: "https://github.com/acme/" + n + ".git"})
	}
	return out
}

func locals(names ...string) []LocalRepo {
	out := make([]LocalRepo, 0, len(names))
	for _, n := range names {
		out = append(out, LocalRepo{Name: n, Path: filepath.Join("/src", n)})
	}
	return out
}

func TestPlanSync_ClassifiesByLocalMembership(t *testing.T) {
	cfg := planConfig("/src")

	plan := PlanSync(remotes("a", "b"), locals("a"), cfg)
	if len(plan.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %+v", plan.Tasks)
	}
	if plan.Tasks[0].Repo.Name != "a" || plan.Tasks[0].Action != ActionPull {
		t.Errorf("expected a -> pull, got %+v", plan.Tasks[0])
	}
	if plan.Tasks[1].Repo.Name != "b" || plan.Tasks[1].Action != ActionClone {
		t.Errorf("expected b -> clone, got %+v", plan.Tasks[1])
	}
	want := filepath.Join("/src", "b")
	if plan.Tasks[1].TargetPath != want {
		t.Errorf("expected target %s, got %s", want, plan.Tasks[1].TargetPath)
	}
}

func TestPlanSync_PrefixFilterExcludesEntirely(t *testing.T) {
	cfg := planConfig("/src")
	cfg.Local.Prefix = "team_"

	plan := PlanSync(remotes("team_a", "team_b", "other"), nil, cfg)
	if len(plan.Tasks) != 2 {
		t.Fatalf("expected exactly team_a and team_b, got %+v", plan.Tasks)
	}
	for _, task := range plan.Tasks {
		if task.Repo.Name != "team_a" && task.Repo.Name != "team_b" {
			t.Errorf("unexpected task %+v", task)
		}
	}
}

func TestPlanSync_StripPrefix(t *testing.T) {
	cfg := planConfig("/src")
	cfg.Local.Prefix = "team_"
	cfg.Local.StripPrefix = true

	// "widgets" exists locally under its stripped name.
	plan := PlanSync(remotes("team_widgets", "team_gadgets"), locals("widgets"), cfg)
	if len(plan.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %+v", plan.Tasks)
	}
	if plan.Tasks[0].Action != ActionPull || plan.Tasks[0].TargetPath != filepath.Join("/src", "widgets") {
		t.Errorf("expected pull into /src/widgets, got %+v", plan.Tasks[0])
	}
	if plan.Tasks[1].Action != ActionClone || plan.Tasks[1].TargetPath != filepath.Join("/src", "gadgets") {
		t.Errorf("expected clone into /src/gadgets, got %+v", plan.Tasks[1])
	}
}

func TestPlanSync_DuplicateNamesPlannedOnce(t *testing.T) {
	cfg := planConfig("/src")

	dup := remotes("a", "a", "b")
	dup[1].CloneURL = "https://github.com/acme/a-second.git"
	plan := PlanSync(dup, nil, cfg)
	if len(plan.Tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %+v", plan.Tasks)
	}
	if plan.Tasks[0].Repo.CloneURL != "https://github.com/acme/a.git" {
		t.Errorf("expected first instance to win, got %+v", plan.Tasks[0])
	}
}

func TestPlanSync_ArchivedExcludedAndReported(t *testing.T) {
	cfg := planConfig("/src")

	rs := remotes("live", "dead", "gone")
	rs[1].Archived = true // checked out locally
	rs[2].Archived = true // never cloned
	plan := PlanSync(rs, locals("dead"), cfg)

	if len(plan.Tasks) != 1 || plan.Tasks[0].Repo.Name != "live" {
		t.Fatalf("expected only live to be planned, got %+v", plan.Tasks)
	}
	if len(plan.ArchivedLocal) != 1 || plan.ArchivedLocal[0] != "dead" {
		t.Fatalf("expected dead to be reported as archived-local, got %+v", plan.ArchivedLocal)
	}
}

func TestPlanSync_ArchivedIncludePolicy(t *testing.T) {
	cfg := planConfig("/src")
	cfg.Remote.Archived = "include"

	rs := remotes("dead")
	rs[0].Archived = true
	plan := PlanSync(rs, nil, cfg)
	if len(plan.Tasks) != 1 || plan.Tasks[0].Action != ActionClone {
		t.Fatalf("expected archived repo to be planned under include policy, got %+v", plan.Tasks)
	}
}

func TestPlanSync_EmptyRemote(t *testing.T) {
	plan := PlanSync(nil, locals("a"), planConfig("/src"))
	if len(plan.Tasks) != 0 {
		t.Fatalf("expected no tasks for empty remote set, got %+v", plan.Tasks)
	}
}
