package runner

import (
	"time"

	"github.com/airbytehq/connectors-qa/internal/checks"
)

// Summary collects every result of a run in evaluation order.
type Summary struct {
	StartedAt  time.Time
	Duration   time.Duration
	Connectors []string
	Results    []*checks.CheckResult

	Passed  int
	Failed  int
	Skipped int
}

func (s *Summary) add(r *checks.CheckResult) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case checks.StatusPassed:
		s.Passed++
	case checks.StatusFailed:
		s.Failed++
	case checks.StatusSkipped:
		s.Skipped++
	}
}

// Succeeded reports whether no result failed.
func (s *Summary) Succeeded() bool { return s.Failed == 0 }

// Total is the number of results.
func (s *Summary) Total() int { return len(s.Results) }

// ResultsFor returns the results produced for one connector.
func (s *Summary) ResultsFor(name string) []*checks.CheckResult {
	var out []*checks.CheckResult
	for _, r := range s.Results {
		if r.Connector == name {
			out = append(out, r)
		}
	}
	return out
}

// FailedResults returns the failed results in evaluation order.
func (s *Summary) FailedResults() []*checks.CheckResult {
	var out []*checks.CheckResult
	for _, r := range s.Results {
		if r.Status == checks.StatusFailed {
			out = append(out, r)
		}
	}
	return out
}
