//go:build mage

package main

import (
	"fmt"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the treport binary with version metadata.
func Build() error {
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	if commit == "" {
		commit = "unknown"
	}
	ldflags := fmt.Sprintf(
		"-X treport/internal/version.CommitHash=%s -X treport/internal/version.BuildDate=%s",
		commit, time.Now().UTC().Format("2006-01-02T15:04:05Z"))
	return sh.RunV("go", "build", "-ldflags", ldflags, "-o", "bin/treport", "./cmd/treport")
}

// Test runs the test suite.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Lint runs go vet.
func Lint() error {
	return sh.RunV("go", "vet", "./...")
}

// All runs lint, tests, and build in order.
func All() {
	mg.SerialDeps(Lint, Test, Build)
}
