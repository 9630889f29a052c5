package render

import (
	"encoding/json"
	"strings"
	"testing"

	"treport/pkg/tempest"
)

func sampleReport() *tempest.Report {
	return &tempest.Report{
		Results: []tempest.TestResult{
			{Name: "tempest.api.compute.ServersTest.test_list", Outcome: tempest.OutcomePass},
			{Name: "tempest.api.network.RoutersTest.test_lifecycle", Outcome: tempest.OutcomeFail,
				Detail: "Traceback (most recent call last):\n  File \"routers.py\", line 33\n    raise Exception(\"boom\")"},
			{Name: "tempest.api.volume.VolumesTest.test_migrate", Outcome: tempest.OutcomeSkip},
		},
		Total: 3, Passed: 1, Failed: 1, Skipped: 1,
	}
}

func passingReport() *tempest.Report {
	return &tempest.Report{
		Results: []tempest.TestResult{
			{Name: "tempest.api.compute.ServersTest.test_list", Outcome: tempest.OutcomePass},
		},
		Total: 1, Passed: 1,
	}
}

func TestTerminal_ShowsFailuresWithDetail(t *testing.T) {
	out := NewTerminal(MonoTheme(), 120).Render("testr_results.html", sampleReport())

	if !strings.Contains(out, "Failures (1):") {
		t.Errorf("missing failures header:\n%s", out)
	}
	if !strings.Contains(out, "tempest.api.network.RoutersTest.test_lifecycle") {
		t.Errorf("missing failed test name:\n%s", out)
	}
	if !strings.Contains(out, "Traceback (most recent call last):") {
		t.Errorf("missing traceback:\n%s", out)
	}
	if !strings.Contains(out, "1 passed") || !strings.Contains(out, "1 failed") || !strings.Contains(out, "1 skipped") {
		t.Errorf("missing counts:\n%s", out)
	}
}

func TestTerminal_PassingReport(t *testing.T) {
	out := NewTerminal(MonoTheme(), 80).Render("testr_results.html", passingReport())
	if !strings.Contains(out, "no failed tests") {
		t.Errorf("expected all-clear line:\n%s", out)
	}
}

func TestTerminal_TruncatesLongNames(t *testing.T) {
	report := &tempest.Report{
		Results: []tempest.TestResult{
			{Name: strings.Repeat("tempest.very.long.suite.", 20) + "test_x", Outcome: tempest.OutcomeFail},
		},
		Total: 1, Failed: 1,
	}
	out := NewTerminal(MonoTheme(), 60).Render("r.html", report)
	for _, line := range strings.Split(out, "\n") {
		if len([]rune(line)) > 70 {
			t.Errorf("line exceeds width budget: %q", line)
		}
	}
}

func TestLLM_PlainTextNoANSI(t *testing.T) {
	out := NewLLM().Render("testr_results.html", sampleReport())

	if strings.Contains(out, "\033[") {
		t.Error("LLM output contains ANSI escape codes")
	}
	if !strings.HasPrefix(out, "SUMMARY: FAIL testr_results.html") {
		t.Errorf("unexpected summary line:\n%s", out)
	}
	if !strings.Contains(out, "FAIL tempest.api.network.RoutersTest.test_lifecycle") {
		t.Errorf("missing FAIL entry:\n%s", out)
	}
	if !strings.Contains(out, "(1 pass, 1 fail, 0 error, 1 skip)") {
		t.Errorf("missing counts:\n%s", out)
	}
}

func TestLLM_TruncatesLongTracebacks(t *testing.T) {
	report := &tempest.Report{
		Results: []tempest.TestResult{
			{Name: "suite.test_a", Outcome: tempest.OutcomeError,
				Detail: strings.TrimSuffix(strings.Repeat("line\n", 20), "\n")},
		},
		Total: 1, Errored: 1,
	}
	out := NewLLM().Render("r.html", report)
	if !strings.Contains(out, "... (14 more lines)") {
		t.Errorf("expected truncation marker:\n%s", out)
	}
}

func TestLLM_SingularTruncationMarker(t *testing.T) {
	report := &tempest.Report{
		Results: []tempest.TestResult{
			{Name: "suite.test_a", Outcome: tempest.OutcomeError,
				Detail: strings.TrimSuffix(strings.Repeat("line\n", detailLineBudget+1), "\n")},
		},
		Total: 1, Errored: 1,
	}
	out := NewLLM().Render("r.html", report)
	if !strings.Contains(out, "... (1 more line)") {
		t.Errorf("expected singular truncation marker:\n%s", out)
	}
}

func TestJSON_RoundTrips(t *testing.T) {
	out := NewJSON().Render("testr_results.html", sampleReport())

	var decoded struct {
		Version string          `json:"version"`
		Source  string          `json:"source"`
		Status  string          `json:"status"`
		Report  *tempest.Report `json:"report"`
	}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if decoded.Status != "fail" {
		t.Errorf("expected status fail, got %q", decoded.Status)
	}
	if decoded.Report.Failed != 1 || len(decoded.Report.Results) != 3 {
		t.Errorf("report fields did not survive: %+v", decoded.Report)
	}
}

func TestThemeByName(t *testing.T) {
	if ThemeByName("mono").Name != "mono" {
		t.Error("mono theme not selected")
	}
	if ThemeByName("orca").Name != "orca" {
		t.Error("orca theme not selected")
	}
	if ThemeByName("anything-else").Name != "default" {
		t.Error("unknown names should fall back to default")
	}
}
