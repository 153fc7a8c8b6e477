package render

import (
	"encoding/json"
	"io"

	"github.com/seo-optimizer/seoreport/analyzer"
)

// JSON writes the report as indented JSON, the same shape the API returns.
type JSON struct{}

// Ensure JSON implements Renderer at compile time.
var _ Renderer = JSON{}

// NewJSON returns the JSON renderer.
func NewJSON() JSON {
	return JSON{}
}

func (JSON) Format() string      { return FormatJSON }
func (JSON) ContentType() string { return "application/json" }
func (JSON) Extension() string   { return "json" }

func (JSON) Render(w io.Writer, report *analyzer.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
