package engine

// Summary is the aggregate of a run's outcomes.
// Invariant: Pulled + Cloned + Failed == number of executed tasks, and
// Pulled == Updated + UpToDate.
type Summary struct {
	Pulled   int
	Cloned   int
	Failed   int
	Updated  int
	UpToDate int
}

// Add folds one outcome into the summary. The fold is commutative, so
// completion order never changes the result.
func (s *Summary) Add(o SyncOutcome) {
	if o.Failed() {
		s.Failed++
		return
	}
	switch o.Task.Action {
	case ActionPull:
		s.Pulled++
		if o.Pull.Updated {
			s.Updated++
		} else {
			s.UpToDate++
		}
	case ActionClone:
		s.Cloned++
	}
}

func (s Summary) Total() int { return s.Pulled + s.Cloned + s.Failed }

// Summarize folds a completed outcome sequence. An empty sequence yields the
// zero summary.
func Summarize(outcomes []SyncOutcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.Add(o)
	}
	return s
}

// Failures returns the failed outcomes for diagnostic reporting.
func Failures(outcomes []SyncOutcome) []SyncOutcome {
	var failed []SyncOutcome
	for _, o := range outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}
