// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/easy-converter/internal/docx"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// writeTextPDF creates an uncompressed PDF with one line of text per page.
func writeTextPDF(t *testing.T, path string, pages []string) {
	t.Helper()
	p := gofpdf.New("P", "pt", "A4", "")
	p.SetCompression(false)
	p.SetFont("Helvetica", "", 14)
	for _, text := range pages {
		p.AddPage()
		p.Text(72, 100, text)
	}
	require.NoError(t, p.OutputFileAndClose(path))
}

func TestTextBackend_WordToPDF(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "notes.docx")
	b := docx.NewBuilder()
	b.Paragraph("Meeting notes")
	b.Paragraph("Résumé of decisions")
	b.PageBreak()
	b.Paragraph("Second page")
	require.NoError(t, b.Save(input))

	output := filepath.Join(dir, "pdf", "notes.pdf")
	err := textBackend{}.Convert(context.Background(), Job{Input: input, Output: output, Direction: ToPDF})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestTextBackend_WordToPDF_InvalidDocx(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "broken.docx")
	require.NoError(t, os.WriteFile(input, []byte("not a zip"), 0o644))

	err := textBackend{}.Convert(context.Background(), Job{Input: input, Output: filepath.Join(dir, "x.pdf"), Direction: ToPDF})

	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestTextBackend_PDFToWord(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "paper.pdf")
	writeTextPDF(t, input, []string{"first page text", "second page text", "third page text"})

	tests := []struct {
		name      string
		pages     PageRange
		want      []string
		wantBreak int
	}{
		{name: "all pages", want: []string{"first", "second", "third"}, wantBreak: 2},
		{name: "middle page", pages: PageRange{Start: 1, End: 2}, want: []string{"second"}},
		{name: "from second", pages: PageRange{Start: 1}, want: []string{"second", "third"}, wantBreak: 1},
		{name: "end past last page", pages: PageRange{Start: 2, End: 10}, want: []string{"third"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "paper.docx")
			job := Job{Input: input, Output: output, Direction: ToWord, Pages: tt.pages}
			require.NoError(t, textBackend{}.Convert(context.Background(), job))

			doc, err := docx.ReadFile(output)
			require.NoError(t, err)

			var text strings.Builder
			breaks := 0
			for _, blk := range doc.Blocks {
				require.NotNil(t, blk.Paragraph)
				if blk.Paragraph.PageBreakBefore {
					breaks++
				}
				text.WriteString(blk.Paragraph.Text())
				text.WriteString("\n")
			}
			for _, w := range tt.want {
				assert.Contains(t, text.String(), w)
			}
			assert.Equal(t, tt.wantBreak, breaks)
		})
	}
}

func TestTextBackend_PDFToWord_RangeBeyondDocument(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "short.pdf")
	writeTextPDF(t, input, []string{"only page"})

	job := Job{Input: input, Output: filepath.Join(dir, "short.docx"), Direction: ToWord, Pages: PageRange{Start: 4}}
	err := textBackend{}.Convert(context.Background(), job)

	assert.ErrorIs(t, err, types.ErrInvalidInput)
	assert.NoFileExists(t, job.Output)
}

func TestTextBackend_PDFToWord_NotPDF(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "fake.pdf")
	require.NoError(t, os.WriteFile(input, []byte("hello"), 0o644))

	err := textBackend{}.Convert(context.Background(), Job{Input: input, Output: filepath.Join(dir, "fake.docx"), Direction: ToWord})

	assert.ErrorIs(t, err, types.ErrInvalidInput)
}

func TestHeadingLevel(t *testing.T) {
	tests := []struct {
		style  string
		want   int
		wantOK bool
	}{
		{"Heading1", 1, true},
		{"heading3", 3, true},
		{"Title", 1, true},
		{"Normal", 0, false},
		{"HeadingX", 0, false},
	}
	for _, tt := range tests {
		got, ok := headingLevel(tt.style)
		assert.Equal(t, tt.want, got, tt.style)
		assert.Equal(t, tt.wantOK, ok, tt.style)
	}
}
