package render

import (
	"encoding/json"

	"treport/pkg/tempest"
)

// JSON renders a report as a structured document for automation.
type JSON struct{}

// NewJSON creates a JSON renderer.
func NewJSON() *JSON {
	return &JSON{}
}

type jsonOutput struct {
	Version string          `json:"version"`
	Source  string          `json:"source"`
	Status  string          `json:"status"`
	Report  *tempest.Report `json:"report"`
}

// Render formats the report as indented JSON.
func (j *JSON) Render(source string, report *tempest.Report) string {
	out := jsonOutput{
		Version: "1",
		Source:  source,
		Status:  report.Status(),
		Report:  report,
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		errJSON, _ := json.Marshal(map[string]string{"error": err.Error()})
		return string(errJSON)
	}
	return string(data) + "\n"
}
