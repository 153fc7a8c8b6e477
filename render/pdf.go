package render

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/mattn/go-runewidth"

	"github.com/seo-optimizer/seoreport/analyzer"
)

// maxTitleWidth caps the report heading in terminal cells. Section lines are
// never cut; MultiCell wraps them.
const maxTitleWidth = 240

const pdfFont = "Helvetica"

// PDF writes a US Letter report with one heading per section.
type PDF struct {
	opts options
}

// Ensure PDF implements Renderer at compile time.
var _ Renderer = (*PDF)(nil)

// NewPDF returns the PDF renderer.
func NewPDF(opts ...Option) *PDF {
	return &PDF{opts: newOptions(opts)}
}

func (p *PDF) Format() string      { return FormatPDF }
func (p *PDF) ContentType() string { return "application/pdf" }
func (p *PDF) Extension() string   { return "pdf" }

func (p *PDF) Render(w io.Writer, report *analyzer.Report) error {
	generatedAt := p.opts.now()

	pdf := fpdf.New("P", "mm", "Letter", "")
	// Core fonts are cp1252; characters outside it are replaced.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(Title(report), true)
	pdf.SetCreator("seoreport", true)
	pdf.SetCreationDate(generatedAt)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont(pdfFont, "B", 18)
	pdf.MultiCell(0, 9, tr(truncateTitle(Title(report))), "", "C", false)
	pdf.Ln(6)

	for _, section := range Sections(report, generatedAt) {
		pdf.SetFont(pdfFont, "B", 14)
		pdf.MultiCell(0, 8, tr(section.Title), "", "L", false)
		pdf.Ln(1)

		pdf.SetFont(pdfFont, "", 11)
		for _, text := range pdfLines(section) {
			pdf.MultiCell(0, 6, tr(text), "", "L", false)
		}
		pdf.Ln(5)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// pdfLines is the printed text of each line in section; unlabeled lines
// become bullets.
func pdfLines(section Section) []string {
	lines := make([]string, len(section.Lines))
	for i, line := range section.Lines {
		lines[i] = line.String()
		if line.Label == "" {
			lines[i] = "- " + lines[i]
		}
	}
	return lines
}

func truncateTitle(s string) string {
	return runewidth.Truncate(s, maxTitleWidth, "...")
}
