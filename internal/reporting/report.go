// Package reporting turns a run summary into machine-readable reports.
package reporting

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/airbytehq/connectors-qa/internal/checks"
	"github.com/airbytehq/connectors-qa/internal/runner"
	"github.com/google/uuid"
)

// Report is the serializable form of a run.
type Report struct {
	RunID      string            `json:"run_id"`
	Timestamp  time.Time         `json:"timestamp"`
	DurationMs int64             `json:"duration_ms"`
	Succeeded  bool              `json:"succeeded"`
	Counts     Counts            `json:"counts"`
	Connectors []ConnectorReport `json:"connectors"`
}

type Counts struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ConnectorReport holds the results of one connector in check order.
type ConnectorReport struct {
	Name    string         `json:"name"`
	Counts  Counts         `json:"counts"`
	Results []ResultReport `json:"results"`
}

type ResultReport struct {
	Check    string `json:"check"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Message  string `json:"message"`
}

// NewReport builds a report with a fresh run id.
func NewReport(summary *runner.Summary) *Report {
	report := &Report{
		RunID:      uuid.NewString(),
		Timestamp:  summary.StartedAt.UTC(),
		DurationMs: summary.Duration.Milliseconds(),
		Succeeded:  summary.Succeeded(),
		Counts: Counts{
			Total:   summary.Total(),
			Passed:  summary.Passed,
			Failed:  summary.Failed,
			Skipped: summary.Skipped,
		},
	}

	for _, name := range summary.Connectors {
		cr := ConnectorReport{Name: name, Results: []ResultReport{}}
		for _, r := range summary.ResultsFor(name) {
			cr.Results = append(cr.Results, ResultReport{
				Check:    r.Check.Name(),
				Category: string(r.Check.Category()),
				Status:   string(r.Status),
				Message:  r.Message,
			})
			cr.Counts.Total++
			switch r.Status {
			case checks.StatusPassed:
				cr.Counts.Passed++
			case checks.StatusFailed:
				cr.Counts.Failed++
			case checks.StatusSkipped:
				cr.Counts.Skipped++
			}
		}
		report.Connectors = append(report.Connectors, cr)
	}
	return report
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, report *Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON report: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing JSON report: %w", err)
	}
	return nil
}
