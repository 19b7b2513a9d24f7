package framework

import (
	"encoding/json"
	"io"
	"time"
)

// ReportEntry is the per-test record written to a JSON report.
type ReportEntry struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Outcome string `json:"outcome"`
	Detail  string `json:"detail"`
}

// Report is the machine-readable summary of a whole run.
type Report struct {
	RunID     string        `json:"runId"`
	Target    string        `json:"target"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  string        `json:"duration"`
	Passed    bool          `json:"passed"`
	Tests     []ReportEntry `json:"tests"`
}

// Entries converts the results to report entries in execution order.
func (r Results) Entries() []ReportEntry {
	ret := make([]ReportEntry, 0, len(r.Tests))
	for _, t := range r.Tests {
		ret = append(ret, ReportEntry{
			Name:    t.TestID.String(),
			Passed:  t.Outcome == OutcomePass || t.Outcome == OutcomeSkipped,
			Outcome: t.Outcome.String(),
			Detail:  t.Detail(),
		})
	}
	return ret
}

func (r Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
