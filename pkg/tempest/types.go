// Package tempest parses Tempest/stestr HTML result pages (the
// subunit2html layout) into structured test outcomes.
package tempest

// Outcome classifies a single test entry.
type Outcome string

const (
	OutcomePass  Outcome = "pass"
	OutcomeFail  Outcome = "fail"
	OutcomeError Outcome = "error"
	OutcomeSkip  Outcome = "skip"
)

// ParseOutcome maps a report token ("pass", "fail", ...) to an Outcome.
func ParseOutcome(s string) (Outcome, bool) {
	switch Outcome(s) {
	case OutcomePass, OutcomeFail, OutcomeError, OutcomeSkip:
		return Outcome(s), true
	}
	return "", false
}

// TestResult is one test entry extracted from the report, in document order.
type TestResult struct {
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Detail  string  `json:"detail,omitempty"` // traceback excerpt for fail/error
}

// Report is the parsed result page: ordered entries plus aggregate counts.
type Report struct {
	Results []TestResult `json:"results"`
	Total   int          `json:"total"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Errored int          `json:"errored"`
	Skipped int          `json:"skipped"`
}

// HasFailures reports whether any entry failed or errored.
func (r *Report) HasFailures() bool {
	return r.Failed > 0 || r.Errored > 0
}

// Failures returns the FAIL and ERROR entries in document order.
func (r *Report) Failures() []TestResult {
	var out []TestResult
	for _, tr := range r.Results {
		if tr.Outcome == OutcomeFail || tr.Outcome == OutcomeError {
			out = append(out, tr)
		}
	}
	return out
}

// Status returns "pass", "fail", or "skip" for the report as a whole.
func (r *Report) Status() string {
	if r.HasFailures() {
		return "fail"
	}
	if r.Passed == 0 && r.Skipped > 0 {
		return "skip"
	}
	return "pass"
}
