// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/easy-converter/internal/docx"
	"github.com/pdiddy/easy-converter/pkg/types"
)

const (
	textFont       = "Arial"
	textSize       = 11.0
	textLineFactor = 1.4
	tableRowHeight = 7.0
)

// textBackend rebuilds documents from their text alone. Images, fonts, and
// layout are lost.
type textBackend struct{}

func (textBackend) Kind() Kind { return KindText }

func (b textBackend) Convert(ctx context.Context, job Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	switch job.Direction {
	case ToPDF:
		return b.wordToPDF(job)
	case ToWord:
		return b.pdfToWord(job)
	}
	return fmt.Errorf("unsupported direction %q", job.Direction)
}

// wordToPDF renders paragraphs and tables of a .docx on A4 pages.
func (textBackend) wordToPDF(job Job) error {
	doc, err := docx.ReadFile(job.Input)
	if err != nil {
		return err
	}

	p := gofpdf.New("P", "pt", "A4", "")
	p.SetMargins(56, 56, 56)
	p.SetAutoPageBreak(true, 56)
	p.AddPage()
	tr := p.UnicodeTranslatorFromDescriptor("")

	for _, blk := range doc.Blocks {
		switch {
		case blk.Paragraph != nil:
			writeParagraph(p, tr, *blk.Paragraph)
		case blk.Table != nil:
			writeTable(p, tr, *blk.Table)
		}
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := p.OutputFileAndClose(job.Output); err != nil {
		return fmt.Errorf("writing %s: %w", job.Output, err)
	}
	return nil
}

func writeParagraph(p *gofpdf.Fpdf, tr func(string) string, para docx.Paragraph) {
	if para.PageBreakBefore {
		p.AddPage()
	}

	base := textSize
	baseStyle := ""
	if level, ok := headingLevel(para.Style); ok {
		base = textSize + float64(8-2*min(level, 3))
		baseStyle = "B"
	}

	if len(para.Runs) == 0 {
		p.Ln(base * textLineFactor)
		return
	}

	align := alignCode(para.Align)
	if align != "L" {
		// Centered and right-aligned text is laid out as one block in the
		// first run's font.
		size, style := runFont(para.Runs[0], base, baseStyle)
		p.SetFont(textFont, style, size)
		p.MultiCell(0, size*textLineFactor, tr(para.Text()), "", align, false)
		p.Ln(size * 0.4)
		return
	}

	lineHeight := base * textLineFactor
	for _, run := range para.Runs {
		size, style := runFont(run, base, baseStyle)
		p.SetFont(textFont, style, size)
		if h := size * textLineFactor; h > lineHeight {
			lineHeight = h
		}
		p.Write(lineHeight, tr(strings.ReplaceAll(run.Text, "\t", "    ")))
	}
	p.Ln(lineHeight + base*0.4)
}

func writeTable(p *gofpdf.Fpdf, tr func(string) string, table docx.Table) {
	cols := 0
	for _, row := range table.Rows {
		cols = max(cols, len(row))
	}
	if cols == 0 {
		return
	}

	left, _, right, _ := p.GetMargins()
	pageW, _ := p.GetPageSize()
	colW := (pageW - left - right) / float64(cols)

	p.SetFont(textFont, "", textSize-1)
	for _, row := range table.Rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = strings.ReplaceAll(row[i], "\n", " ")
			}
			p.CellFormat(colW, tableRowHeight*2, tr(cell), "1", 0, "L", false, 0, "")
		}
		p.Ln(-1)
	}
	p.Ln(textSize * 0.6)
}

func runFont(run docx.Run, size float64, style string) (float64, string) {
	if run.Size > 0 {
		size = run.Size
	}
	if run.Bold && !strings.Contains(style, "B") {
		style += "B"
	}
	if run.Italic {
		style += "I"
	}
	return size, style
}

func headingLevel(style string) (int, bool) {
	lower := strings.ToLower(style)
	switch {
	case lower == "title":
		return 1, true
	case strings.HasPrefix(lower, "heading"):
		var n int
		if _, err := fmt.Sscanf(lower[len("heading"):], "%d", &n); err == nil && n > 0 {
			return n, true
		}
	}
	return 0, false
}

func alignCode(align string) string {
	switch align {
	case "center":
		return "C"
	case "right", "end":
		return "R"
	case "both", "distribute":
		return "J"
	}
	return "L"
}

// pdfToWord extracts the text layer of the selected pages and writes one
// paragraph per line, with a page break between source pages.
func (textBackend) pdfToWord(job Job) (err error) {
	f, r, err := pdf.Open(job.Input)
	if err != nil {
		return fmt.Errorf("opening pdf %s: %v: %w", job.Input, err, types.ErrInvalidInput)
	}
	defer f.Close()

	// The pdf reader panics on some malformed page trees.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("reading pdf %s: %v: %w", job.Input, rec, types.ErrInvalidInput)
		}
	}()

	total := r.NumPage()
	start, end := job.Pages.Start, job.Pages.End
	if end == 0 || end > total {
		end = total
	}
	if start >= end {
		return fmt.Errorf("page range %s selects no pages of %d: %w", job.Pages, total, types.ErrInvalidInput)
	}

	fonts := make(map[string]*pdf.Font)
	out := docx.NewBuilder()
	for i := start; i < end; i++ {
		page := r.Page(i + 1)
		if page.V.IsNull() {
			continue
		}
		for _, name := range page.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := page.Font(name)
				fonts[name] = &font
			}
		}
		text, err := page.GetPlainText(fonts)
		if err != nil {
			return fmt.Errorf("reading pdf page %d: %w", i+1, err)
		}

		if i > start {
			out.PageBreak()
		}
		out.Paragraph(strings.TrimRight(text, "\n"))
	}

	return out.Save(job.Output)
}
