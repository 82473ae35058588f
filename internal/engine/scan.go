package engine

import (
	"os"
	"path/filepath"
)

// LocalRepo is one git checkout found directly under the sync root.
type LocalRepo struct {
	Name string
	Path string
}

// ScanLocalRepos lists the direct children of root that are git checkouts.
// A child qualifies when it contains a .git entry; a plain directory or file
// counts, since worktrees and submodules keep .git as a file. Children that
// are not checkouts are skipped silently. Only an unreadable root is an
// error (*LocalScanError).
func ScanLocalRepos(root string) ([]LocalRepo, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, &LocalScanError{Root: root, Err: err}
	}

	var repos []LocalRepo
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(path, ".git")); err != nil {
			continue
		}
		repos = append(repos, LocalRepo{
			Name: entry.Name(),
			Path: path,
		})
	}
	return repos, nil
}
