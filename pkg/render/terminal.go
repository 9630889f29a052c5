package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"treport/pkg/tempest"
)

// Terminal renders a report as styled terminal output via lipgloss.
type Terminal struct {
	theme Theme
	width int
}

// NewTerminal creates a terminal renderer for the given theme and width.
func NewTerminal(theme Theme, width int) *Terminal {
	if width <= 0 {
		width = 80
	}
	return &Terminal{theme: theme, width: width}
}

// Render formats the report for terminal display: a count summary, then
// the failed and errored entries with their traceback excerpts.
func (t *Terminal) Render(source string, report *tempest.Report) string {
	var sb strings.Builder

	sb.WriteString(t.theme.Bold.Render("Tempest results: " + source))
	sb.WriteString("\n")
	sb.WriteString(t.summaryLine(report))
	sb.WriteString("\n")

	failures := report.Failures()
	if len(failures) == 0 {
		sb.WriteString("\n")
		sb.WriteString(t.theme.Success.Render(t.theme.Icons.Pass + " no failed tests"))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("\n")
	sb.WriteString(t.theme.Bold.Render(fmt.Sprintf("Failures (%d):", len(failures))))
	sb.WriteString("\n")
	for _, tr := range failures {
		icon, style := t.outcomeIconStyle(tr.Outcome)
		sb.WriteString("  ")
		sb.WriteString(style.Render(icon + " "))
		sb.WriteString(t.truncate(tr.Name))
		sb.WriteString("\n")
		if tr.Detail != "" {
			for _, line := range strings.Split(tr.Detail, "\n") {
				sb.WriteString("      ")
				sb.WriteString(t.theme.Muted.Render(strings.TrimRight(line, " \t")))
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}

func (t *Terminal) summaryLine(report *tempest.Report) string {
	parts := []string{
		t.theme.Success.Render(fmt.Sprintf("%s %d passed", t.theme.Icons.Pass, report.Passed)),
	}
	if report.Failed > 0 {
		parts = append(parts, t.theme.Failure.Render(fmt.Sprintf("%s %d failed", t.theme.Icons.Fail, report.Failed)))
	}
	if report.Errored > 0 {
		parts = append(parts, t.theme.Failure.Render(fmt.Sprintf("%s %d errored", t.theme.Icons.Error, report.Errored)))
	}
	if report.Skipped > 0 {
		parts = append(parts, t.theme.Warning.Render(fmt.Sprintf("%s %d skipped", t.theme.Icons.Skip, report.Skipped)))
	}
	parts = append(parts, t.theme.Muted.Render(fmt.Sprintf("(%d total)", report.Total)))
	return "  " + strings.Join(parts, "   ")
}

func (t *Terminal) outcomeIconStyle(o tempest.Outcome) (string, lipgloss.Style) {
	switch o {
	case tempest.OutcomeFail:
		return t.theme.Icons.Fail, t.theme.Failure
	case tempest.OutcomeError:
		return t.theme.Icons.Error, t.theme.Failure
	case tempest.OutcomeSkip:
		return t.theme.Icons.Skip, t.theme.Warning
	default:
		return t.theme.Icons.Pass, t.theme.Success
	}
}

// truncate keeps test names within the terminal width, ellipsis included.
// Tempest ids routinely exceed 120 columns.
func (t *Terminal) truncate(name string) string {
	max := t.width - 4
	if max < 16 {
		max = 16
	}
	return runewidth.Truncate(name, max, "…")
}
