// Package render turns a Report into downloadable documents.
package render

import (
	"io"
	"strings"
	"time"

	"github.com/seo-optimizer/seoreport/analyzer"
)

// Supported formats.
const (
	FormatJSON     = "json"
	FormatPDF      = "pdf"
	FormatMarkdown = "markdown"
)

// Renderer writes a Report in one output format.
type Renderer interface {
	Format() string
	ContentType() string
	Extension() string
	Render(w io.Writer, report *analyzer.Report) error
}

// Option configures the renderers returned by Lookup.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock sets the time printed as the report generation date.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Lookup returns the renderer for format. "md" is accepted for markdown and
// the empty format selects PDF.
func Lookup(format string, opts ...Option) (Renderer, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return NewJSON(), nil
	case "", FormatPDF:
		return NewPDF(opts...), nil
	case FormatMarkdown, "md":
		return NewMarkdown(opts...), nil
	default:
		return nil, analyzer.Errorf(analyzer.EINVALID, "Unsupported export format: %s", format)
	}
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatJSON, FormatPDF, FormatMarkdown}
}

// Filename is the download name of a report rendered at t.
func Filename(r Renderer, t time.Time) string {
	return "seo_report_" + t.Format("20060102_150405") + "." + r.Extension()
}
