package render

import (
	"io"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/seo-optimizer/seoreport/analyzer"
)

// Markdown writes the report as GitHub-flavored markdown, one table per
// section.
type Markdown struct {
	opts options
}

// Ensure Markdown implements Renderer at compile time.
var _ Renderer = (*Markdown)(nil)

// NewMarkdown returns the Markdown renderer.
func NewMarkdown(opts ...Option) *Markdown {
	return &Markdown{opts: newOptions(opts)}
}

func (m *Markdown) Format() string      { return FormatMarkdown }
func (m *Markdown) ContentType() string { return "text/markdown; charset=utf-8" }
func (m *Markdown) Extension() string   { return "md" }

func (m *Markdown) Render(w io.Writer, report *analyzer.Report) error {
	md := markdown.NewMarkdown(w)
	md.H1(Title(report))
	md.PlainText("")

	for _, section := range Sections(report, m.opts.now()) {
		md.H2(section.Title)
		md.PlainText("")

		if section.Title == "Recommendations" {
			items := make([]string, 0, len(section.Lines))
			for _, line := range section.Lines {
				items = append(items, line.Value)
			}
			md.BulletList(items...)
			md.PlainText("")
			continue
		}

		if len(section.Lines) == 0 {
			md.PlainText("None found.")
			md.PlainText("")
			continue
		}

		rows := make([][]string, 0, len(section.Lines))
		for _, line := range section.Lines {
			rows = append(rows, []string{escapeCell(line.Label), escapeCell(line.Value)})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Metric", "Value"},
			Rows:   rows,
		})
		md.PlainText("")
	}

	return md.Build()
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
