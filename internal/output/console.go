package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// ConsoleSink renders results for humans (text) or machines (json, ndjson).
//
// In text mode, up-to-date pulls are not printed per repo; the run.finished
// event carries the aggregate count instead, so a fully synchronized tree
// produces a short report rather than one line per repository.
type ConsoleSink struct {
	writer  io.Writer
	format  string // "text", "json", "ndjson"
	mu      sync.Mutex
	results []Result // For JSON array output
}

func NewConsoleSink(w io.Writer, format string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	return &ConsoleSink{
		writer: w,
		format: format,
	}
}

var (
	nameColor = color.New(color.FgYellow)
	failColor = color.New(color.FgRed)
	okColor   = color.New(color.FgGreen)
)

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	switch s.format {
	case "json":
		r, ok := v.(Result)
		if !ok {
			// Ignore lifecycle events in JSON aggregate mode.
			return nil
		}
		s.results = append(s.results, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Result:
			if err := encoder.Encode(eventFromResult(t)); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		switch t := v.(type) {
		case Result:
			if err := s.writeTextResult(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Event:
			if t.Type == "run.finished" && t.Counts != nil {
				if _, err := fmt.Fprintf(s.writer, "%s: %d pulled (%d up to date), %d cloned, %d failed\n",
					okColor.Sprint("Sync finished"), t.Counts.Pulled, countStatus(s.results, StatusUpToDate), t.Counts.Cloned, t.Counts.Failed); err != nil {
					return err
				}
				return flushIfPossible(s.writer)
			}
			return nil
		default:
			return nil
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) writeTextResult(r Result) error {
	// Track results in text mode too so the final line can report how many
	// pulls were no-ops.
	s.results = append(s.results, r)

	switch r.Status {
	case StatusUpToDate:
		return nil
	case StatusFailed:
		if _, err := fmt.Fprintf(s.writer, "%s: failed to %s:\n", failColor.Sprint(r.Repo), r.Action); err != nil {
			return err
		}
		for _, line := range strings.Split(r.Detail, "\n") {
			if line == "" {
				continue
			}
			if _, err := fmt.Fprintf(s.writer, "  %s\n", line); err != nil {
				return err
			}
		}
		return nil
	case StatusArchived:
		_, err := fmt.Fprintf(s.writer, "%s: archived on remote, consider removing the local checkout\n", nameColor.Sprint(r.Repo))
		return err
	default:
		_, err := fmt.Fprintf(s.writer, "%s: %s\n", nameColor.Sprint(r.Repo), r.Status)
		return err
	}
}

func countStatus(results []Result, status Status) int {
	n := 0
	for _, r := range results {
		if r.Status == status {
			n++
		}
	}
	return n
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.results); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
