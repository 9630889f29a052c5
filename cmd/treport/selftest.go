package main

import (
	"fmt"
	"io"
	"strings"

	"treport/internal/fixtures"
	"treport/pkg/tempest"
)

// runSelfTest parses the bundled fixture pages and verifies the extracted
// results, mirroring the checks a fresh install should pass.
func runSelfTest(stdout, stderr io.Writer) int {
	failed := 0
	check := func(name string, ok bool, detail string) {
		if ok {
			fmt.Fprintf(stdout, "ok   %s\n", name)
			return
		}
		failed++
		fmt.Fprintf(stdout, "FAIL %s: %s\n", name, detail)
	}

	passing, err := tempest.Parse(fixtures.Passing)
	check("passing fixture parses", err == nil, fmt.Sprint(err))
	if err == nil {
		check("passing fixture has no failures", !passing.HasFailures(),
			fmt.Sprintf("failed=%d errored=%d", passing.Failed, passing.Errored))
		check("passing fixture test count", passing.Total == 4 && passing.Passed == 4,
			fmt.Sprintf("total=%d passed=%d", passing.Total, passing.Passed))
	}

	failing, err := tempest.Parse(fixtures.Failing)
	check("failing fixture parses", err == nil, fmt.Sprint(err))
	if err == nil {
		check("failing fixture reports failures", failing.HasFailures(),
			fmt.Sprintf("failed=%d errored=%d", failing.Failed, failing.Errored))
		check("failing fixture outcome counts",
			failing.Passed == 2 && failing.Failed == 1 && failing.Errored == 1 && failing.Skipped == 1,
			fmt.Sprintf("passed=%d failed=%d errored=%d skipped=%d",
				failing.Passed, failing.Failed, failing.Errored, failing.Skipped))

		tracebacks := true
		for _, f := range failing.Failures() {
			if !strings.HasPrefix(f.Detail, "Traceback (most recent call last):") {
				tracebacks = false
			}
		}
		check("failing fixture tracebacks extracted", tracebacks, "missing or untrimmed traceback")
	}

	if failed > 0 {
		fmt.Fprintf(stderr, "treport: self-test failed (%d checks)\n", failed)
		return 1
	}
	fmt.Fprintln(stdout, "self-test passed")
	return 0
}
