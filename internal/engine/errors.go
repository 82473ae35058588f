package engine

import "fmt"

// RemoteFetchError marks a failure to obtain the complete remote repository
// listing. It is fatal for the run: without a full remote view the planner
// cannot tell "needs clone" from "does not exist".
type RemoteFetchError struct {
	Org string
	Err error
}

func (e *RemoteFetchError) Error() string {
	return fmt.Sprintf("listing repositories for %s: %v", e.Org, e.Err)
}

func (e *RemoteFetchError) Unwrap() error { return e.Err }

// LocalScanError marks an unreadable sync root. Also fatal: without the local
// baseline every repository would be misclassified as a fresh clone.
type LocalScanError struct {
	Root string
	Err  error
}

func (e *LocalScanError) Error() string {
	return fmt.Sprintf("scanning local repositories under %s: %v", e.Root, e.Err)
}

func (e *LocalScanError) Unwrap() error { return e.Err }
