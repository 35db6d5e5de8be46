package download

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Status is the outcome of one item.
type Status string

// Item outcomes.
const (
	StatusDownloaded Status = "downloaded"
	StatusSkipped    Status = "skipped"
	StatusFailed     Status = "failed"
)

// Result records what happened to one item.
type Result struct {
	Item   Item
	Status Status
	Bytes  int64
	Err    error
}

// Summary collects the results of a batch in item order.
type Summary struct {
	Results []Result
}

// Total is the number of items attempted or skipped.
func (s *Summary) Total() int {
	if s == nil {
		return 0
	}
	return len(s.Results)
}

// Count returns how many results have status st.
func (s *Summary) Count(st Status) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, r := range s.Results {
		if r.Status == st {
			n++
		}
	}
	return n
}

// Failed returns the failed results in order.
func (s *Summary) Failed() []Result {
	if s == nil {
		return nil
	}
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusFailed {
			out = append(out, r)
		}
	}
	return out
}

// Err aggregates every failure, or returns nil when nothing failed.
func (s *Summary) Err() error {
	var errs *multierror.Error
	for _, r := range s.Failed() {
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.Item.URL, r.Err))
	}
	return errs.ErrorOrNil()
}

// String renders the counters for a final log line.
func (s *Summary) String() string {
	return fmt.Sprintf("%d downloaded, %d skipped, %d failed of %d",
		s.Count(StatusDownloaded), s.Count(StatusSkipped), s.Count(StatusFailed), s.Total())
}
