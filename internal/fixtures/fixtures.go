// Package fixtures embeds known-good report pages for the --test
// self-check mode.
package fixtures

import _ "embed"

// Passing is a subunit2html report page where every test passed.
//
//go:embed passing.html
var Passing []byte

// Failing is a subunit2html report page with fail, error, and skip
// entries alongside passes.
//
//go:embed failing.html
var Failing []byte
