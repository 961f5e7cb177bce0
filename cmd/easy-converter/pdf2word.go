// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/easy-converter/internal/batch"
	"github.com/pdiddy/easy-converter/internal/docconv"
	"github.com/pdiddy/easy-converter/internal/engine"
	"github.com/pdiddy/easy-converter/pkg/types"
)

var pdf2wordCmd = &cobra.Command{
	Use:   "pdf2word [INPUT]",
	Short: "Convert PDF files to Word (.docx)",
	Long: `pdf2word converts a PDF to a .docx document. LibreOffice is used when it
is available; otherwise the text layer of each page is extracted into
plain paragraphs, one page per section.

--pages selects source pages as start:end (0-based, end exclusive). Only
the text reconstruction honours a partial range, so it is used whenever
--pages is given.`,
	Example: `  easy-converter pdf2word paper.pdf
  easy-converter pdf2word paper.pdf --pages 2:5
  easy-converter pdf2word --batch --input-folder pdfs --output-folder docs`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPDF2Word,
}

func runPDF2Word(cmd *cobra.Command, args []string) error {
	spec, _ := cmd.Flags().GetString("pages")
	pages, err := engine.ParsePageRange(spec)
	if err != nil {
		return err
	}
	return runDocuments(cmd, args, types.ModePDFToWord, func(c *docconv.Converter) batch.ConvertFunc {
		return func(ctx context.Context, input, output string, w io.Writer) types.Result {
			return c.PDFToWord(ctx, input, output, pages, w)
		}
	})
}

func init() {
	addDocumentFlags(pdf2wordCmd)
	pdf2wordCmd.Flags().String("pages", "", "page range start:end, 0-based and end exclusive (default: all pages)")
	rootCmd.AddCommand(pdf2wordCmd)
}
