// Package render formats parsed Tempest reports for terminals, pipelines,
// and automation.
package render

import "treport/pkg/tempest"

// Renderer converts a parsed report to formatted output. source is the
// file path or URL the report came from, used for labeling only.
type Renderer interface {
	Render(source string, report *tempest.Report) string
}
