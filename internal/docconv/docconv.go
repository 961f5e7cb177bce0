// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docconv converts between Word documents and PDF files through the
// engine fallback chain. Each conversion validates its input, picks an
// output path, runs the chain, and reports one Result.
package docconv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pdiddy/easy-converter/internal/engine"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// Converter runs document conversions against a fixed set of capabilities.
type Converter struct {
	runner *engine.Runner
	caps   engine.Capabilities
}

// New creates a Converter. caps is normally the result of engine.Detect.
func New(runner *engine.Runner, caps engine.Capabilities) *Converter {
	return &Converter{runner: runner, caps: caps}
}

// Capabilities returns the engines this Converter may use.
func (c *Converter) Capabilities() engine.Capabilities { return c.caps }

// request is the per-direction description shared by both conversions.
type request struct {
	mode      types.Mode
	direction engine.Direction
	accept    []string // lower-case input extensions
	kindLabel string   // used in "Input file must be a ..." messages
	saved     string   // used in "Success! ... saved as" messages
}

var (
	wordToPDF = request{
		mode:      types.ModeWordToPDF,
		direction: engine.ToPDF,
		accept:    []string{".docx", ".doc"},
		kindLabel: ".docx or .doc file",
		saved:     "PDF",
	}
	pdfToWord = request{
		mode:      types.ModePDFToWord,
		direction: engine.ToWord,
		accept:    []string{".pdf"},
		kindLabel: "PDF file",
		saved:     "Word file",
	}
)

// WordToPDF converts a .docx (or, with an office engine, .doc) document to
// PDF. An empty output writes next to the input with a .pdf suffix.
func (c *Converter) WordToPDF(ctx context.Context, input, output string, w io.Writer) types.Result {
	return c.convert(ctx, wordToPDF, engine.Job{Input: input, Output: output}, w)
}

// PDFToWord converts a PDF to .docx. pages selects a page range; the zero
// value converts the whole document.
func (c *Converter) PDFToWord(ctx context.Context, input, output string, pages engine.PageRange, w io.Writer) types.Result {
	return c.convert(ctx, pdfToWord, engine.Job{Input: input, Output: output, Pages: pages}, w)
}

// DefaultOutput replaces the extension of input with that of the target
// direction.
func DefaultOutput(input string, d engine.Direction) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + string(d)
}

// Accepts reports whether path has an extension the mode converts.
func Accepts(mode types.Mode, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch mode {
	case types.ModeWordToPDF:
		return slices.Contains(wordToPDF.accept, ext)
	case types.ModePDFToWord:
		return slices.Contains(pdfToWord.accept, ext)
	}
	return false
}

func (c *Converter) convert(ctx context.Context, req request, job engine.Job, w io.Writer) types.Result {
	job.Direction = req.direction
	if job.Output == "" {
		job.Output = DefaultOutput(job.Input, req.direction)
	}
	inputs := []string{job.Input}

	fail := func(err error, format string, args ...any) types.Result {
		fmt.Fprintf(w, format+"\n", args...)
		return types.Failed(req.mode, inputs, job.Output, err)
	}

	info, err := os.Stat(job.Input)
	if err != nil || info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%s: %w", job.Input, types.ErrNotFound)
		}
		return fail(err, "Error: Input file '%s' not found.", job.Input)
	}
	if !slices.Contains(req.accept, strings.ToLower(filepath.Ext(job.Input))) {
		err := fmt.Errorf("%s is not a %s: %w", job.Input, req.kindLabel, types.ErrInvalidInput)
		return fail(err, "Error: Input file must be a %s.", req.kindLabel)
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), 0o755); err != nil {
		return fail(fmt.Errorf("creating output directory: %w", err), "Error during conversion: %v", err)
	}

	fmt.Fprintf(w, "Converting '%s' to '%s'...\n", job.Input, job.Output)
	kind, err := c.runner.Run(ctx, c.caps, job)
	if err != nil {
		return fail(err, "Error during conversion: %v", err)
	}

	if _, err := os.Stat(job.Output); err != nil {
		err = fmt.Errorf("%s backend did not create %s: %w", kind, job.Output, types.ErrEngineFailed)
		return fail(err, "Error: Conversion failed - output file not created.")
	}

	fmt.Fprintf(w, "Success! %s saved as: %s\n", req.saved, job.Output)
	return types.Succeeded(req.mode, inputs, job.Output, string(kind))
}
