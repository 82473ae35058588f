package output

// Result is the presentation form of one repository's sync outcome.
type Result struct {
	Repo   string `json:"repo"`
	Action string `json:"action,omitempty"`
	Status Status `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type Status string

const (
	StatusCloned   Status = "cloned"
	StatusUpdated  Status = "updated"
	StatusUpToDate Status = "up-to-date"
	StatusArchived Status = "archived"
	StatusFailed   Status = "failed"
)

// Counts mirrors the engine summary for machine-readable lifecycle events.
type Counts struct {
	Pulled int `json:"pulled"`
	Cloned int `json:"cloned"`
	Failed int `json:"failed"`
}

// Event is a lifecycle record for streaming (ndjson) output.
// Types: run.started, repo.synced, run.finished.
type Event struct {
	Type     string  `json:"type"`
	Repos    int     `json:"repos,omitempty"`
	Result   *Result `json:"result,omitempty"`
	Counts   *Counts `json:"counts,omitempty"`
	ExitCode *int    `json:"exit_code,omitempty"`
}

func eventFromResult(r Result) Event {
	return Event{Type: "repo.synced", Result: &r}
}
