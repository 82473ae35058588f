package engine

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func mkCheckout(t *testing.T, root, name string) {
	t.Helper()
	mkCheckoutPath(t, filepath.Join(root, name))
}

func mkCheckoutPath(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(path, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func TestScanLocalRepos_FindsOnlyGitCheckouts(t *testing.T) {
	root := t.TempDir()
	mkCheckout(t, root, "alpha")
	mkCheckout(t, root, "beta")

	// Not checkouts: a plain directory and a plain file.
	if err := os.Mkdir(filepath.Join(root, "notes"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	repos, err := ScanLocalRepos(root)
	if err != nil {
		t.Fatalf("ScanLocalRepos returned error: %v", err)
	}
	if len(repos) != 2 {
		t.Fatalf("expected 2 checkouts, got %+v", repos)
	}
	for _, r := range repos {
		if r.Name != "alpha" && r.Name != "beta" {
			t.Fatalf("unexpected entry %+v", r)
		}
		if r.Path != filepath.Join(root, r.Name) {
			t.Fatalf("wrong path for %s: %s", r.Name, r.Path)
		}
	}
}

func TestScanLocalRepos_GitFileCountsAsCheckout(t *testing.T) {
	// Worktrees and submodules keep .git as a file pointing at the real dir.
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "wt"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "wt", ".git"), []byte("gitdir: elsewhere"), 0o644); err != nil {
		t.Fatal(err)
	}

	repos, err := ScanLocalRepos(root)
	if err != nil {
		t.Fatalf("ScanLocalRepos returned error: %v", err)
	}
	if len(repos) != 1 || repos[0].Name != "wt" {
		t.Fatalf("expected wt to be recognized, got %+v", repos)
	}
}

func TestScanLocalRepos_EmptyRoot(t *testing.T) {
	repos, err := ScanLocalRepos(t.TempDir())
	if err != nil {
		t.Fatalf("ScanLocalRepos returned error: %v", err)
	}
	if len(repos) != 0 {
		t.Fatalf("expected no repos, got %+v", repos)
	}
}

func TestScanLocalRepos_MissingRootIsFatal(t *testing.T) {
	_, err := ScanLocalRepos(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	var scanErr *LocalScanError
	if !errors.As(err, &scanErr) {
		t.Fatalf("expected *LocalScanError, got %T: %v", err, err)
	}
}
