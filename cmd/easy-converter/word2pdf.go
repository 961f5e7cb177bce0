// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/easy-converter/internal/batch"
	"github.com/pdiddy/easy-converter/internal/docconv"
	"github.com/pdiddy/easy-converter/pkg/types"
)

var word2pdfCmd = &cobra.Command{
	Use:   "word2pdf [INPUT]",
	Short: "Convert Word documents (.docx, .doc) to PDF",
	Long: `word2pdf converts a Word document to PDF. Legacy .doc files need
LibreOffice, installed locally or in a container image; .docx files fall
back to a text-only rendering when neither is available.

With --batch every .docx and .doc file in --input-folder is converted into
--output-folder. Failures are reported and the batch continues.`,
	Example: `  easy-converter word2pdf report.docx
  easy-converter word2pdf report.docx -o out/report.pdf
  easy-converter word2pdf --batch --input-folder docs --output-folder pdfs`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDocuments(cmd, args, types.ModeWordToPDF, func(c *docconv.Converter) batch.ConvertFunc {
			return c.WordToPDF
		})
	},
}

func init() {
	addDocumentFlags(word2pdfCmd)
	rootCmd.AddCommand(word2pdfCmd)
}
