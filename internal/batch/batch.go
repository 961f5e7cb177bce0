// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch converts every matching document in a folder, continuing
// past individual failures.
package batch

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

	"github.com/pdiddy/easy-converter/internal/docconv"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// ConvertFunc converts one file and reports the outcome. WordToPDF and a
// closure over PDFToWord both fit.
type ConvertFunc func(ctx context.Context, input, output string, w io.Writer) types.Result

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int

	// Results has one entry per attempted file, in processing order.
	Results []types.Result
}

// Total returns the total number of files processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Run converts the files in inDir that mode accepts, writing each result to
// outDir under the same base name with the target extension. Files of other
// types are skipped without a message. Run returns an error only when inDir
// is missing or outDir cannot be created; conversion failures are counted.
func Run(ctx context.Context, mode types.Mode, inDir, outDir string, convert ConvertFunc, w io.Writer) (BatchResult, error) {
	var result BatchResult

	ext, err := targetExt(mode)
	if err != nil {
		return result, err
	}

	info, err := os.Stat(inDir)
	if err != nil || !info.IsDir() {
		if err == nil || errors.Is(err, fs.ErrNotExist) {
			err = types.ErrNotFound
		}
		fmt.Fprintf(w, "Error: Input folder '%s' does not exist.\n", inDir)
		return result, fmt.Errorf("input folder %s: %w", inDir, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return result, fmt.Errorf("creating output folder: %w", err)
	}

	names, err := candidates(mode, inDir)
	if err != nil {
		return result, err
	}

	fmt.Fprintf(w, "Processing all files in %s...\n", inDir)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		src := filepath.Join(inDir, name)
		out := filepath.Join(outDir, strings.TrimSuffix(name, filepath.Ext(name))+ext)
		fmt.Fprintf(w, "Converting %s -> %s\n", src, out)

		r := convert(ctx, src, out, w)
		result.Results = append(result.Results, r)
		if r.OK() {
			result.Converted++
		} else {
			result.Failed++
		}
	}

	fmt.Fprintf(w, "Batch processing completed: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result, nil
}

// candidates lists the regular files in dir that mode accepts, sorted by name.
func candidates(mode types.Mode, dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input folder: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() || !docconv.Accepts(mode, e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	slices.Sort(names)
	return names, nil
}

func targetExt(mode types.Mode) (string, error) {
	switch mode {
	case types.ModeWordToPDF:
		return ".pdf", nil
	case types.ModePDFToWord:
		return ".docx", nil
	}
	return "", fmt.Errorf("batch mode %q: %w", mode, types.ErrInvalidInput)
}
