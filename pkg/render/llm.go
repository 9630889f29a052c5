package render

import (
	"fmt"
	"strings"

	"treport/pkg/tempest"
)

// detailLineBudget caps traceback excerpts in piped output.
const detailLineBudget = 6

// LLM renders a report as terse plain text for pipelines and AI
// consumption: zero ANSI codes, one SUMMARY line, then failures.
type LLM struct{}

// NewLLM creates an LLM renderer.
func NewLLM() *LLM {
	return &LLM{}
}

// Render formats the report as plain text.
func (l *LLM) Render(source string, report *tempest.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("SUMMARY: %s %s: %d tests (%d pass, %d fail, %d error, %d skip)\n",
		strings.ToUpper(report.Status()), source,
		report.Total, report.Passed, report.Failed, report.Errored, report.Skipped))

	for _, tr := range report.Failures() {
		sb.WriteString("\n")
		sb.WriteString(strings.ToUpper(string(tr.Outcome)))
		sb.WriteString(" ")
		sb.WriteString(tr.Name)
		sb.WriteString("\n")
		if tr.Detail == "" {
			sb.WriteString("    (no traceback found)\n")
			continue
		}
		lines := strings.Split(tr.Detail, "\n")
		max := detailLineBudget
		if len(lines) < max {
			max = len(lines)
		}
		for _, line := range lines[:max] {
			sb.WriteString("    " + strings.TrimRight(line, " \t") + "\n")
		}
		if rest := len(lines) - detailLineBudget; rest > 0 {
			noun := "lines"
			if rest == 1 {
				noun = "line"
			}
			sb.WriteString(fmt.Sprintf("    ... (%d more %s)\n", rest, noun))
		}
	}
	return sb.String()
}
