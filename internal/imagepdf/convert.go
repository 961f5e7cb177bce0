// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagepdf

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pdiddy/easy-converter/internal/layout"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// DefaultMultiOutput is the destination used for multi-image conversions
// when none is given.
const DefaultMultiOutput = "output.pdf"

// Converter turns measured images into PDF files on a fixed page geometry.
type Converter struct {
	geometry  layout.Geometry
	newCanvas CanvasFactory
}

// NewConverter creates a Converter drawing on gofpdf canvases.
func NewConverter(g layout.Geometry) *Converter {
	return &Converter{geometry: g, newCanvas: NewCanvas}
}

// NewConverterWithCanvas creates a Converter drawing on canvases from f.
func NewConverterWithCanvas(g layout.Geometry, f CanvasFactory) *Converter {
	return &Converter{geometry: g, newCanvas: f}
}

// Geometry returns the page geometry used for every page.
func (c *Converter) Geometry() layout.Geometry { return c.geometry }

// DefaultOutput is the input path with its extension replaced by ".pdf".
func DefaultOutput(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + ".pdf"
}

// ConvertSingle writes one image to a one-page PDF at output, or next to
// the input when output is empty. It prints a status line to w.
func (c *Converter) ConvertSingle(asset layout.ImageAsset, output string, w io.Writer) types.Result {
	if output == "" {
		output = DefaultOutput(asset.Path)
	}
	inputs := []string{asset.Path}

	placement, err := layout.ComputePlacement(asset.Width, asset.Height, c.geometry)
	if err == nil {
		canvas := c.newCanvas(c.geometry)
		canvas.NewPage()
		if err = canvas.DrawImage(asset, placement); err == nil {
			err = canvas.Save(output)
		}
	}
	if err != nil {
		fmt.Fprintf(w, "✗ Error converting %s: %v\n", asset.Path, err)
		return types.Failed(types.ModeImageToPDF, inputs, output, err)
	}

	fmt.Fprintf(w, "✓ Converted: %s → %s\n", asset.Path, output)
	r := types.Succeeded(types.ModeImageToPDF, inputs, output, "gofpdf")
	r.Pages = 1
	return r
}

// ConvertMultiple writes all assets into one PDF at output, one image per
// page in input order. An image that fails to draw is reported and skipped;
// Result.Pages counts only pages that received an image.
func (c *Converter) ConvertMultiple(assets []layout.ImageAsset, output string, l layout.Layout, w io.Writer) types.Result {
	if output == "" {
		output = DefaultMultiOutput
	}
	inputs := make([]string, 0, len(assets))

	canvas := c.newCanvas(c.geometry)
	for _, page := range layout.ComposePages(assets, c.geometry, l, w) {
		canvas.NewPage()
		if err := canvas.DrawImage(page.Image, page.Placement); err != nil {
			fmt.Fprintf(w, "✗ Error processing %s: %v\n", page.Image.Path, err)
			continue
		}
		inputs = append(inputs, page.Image.Path)
	}

	// Counted before Save: closing an empty gofpdf document adds a blank page.
	drawn := canvas.PageCount()
	if drawn == 0 {
		fmt.Fprintf(w, "✗ No images could be drawn; %s will contain a blank page\n", output)
	}

	if err := canvas.Save(output); err != nil {
		fmt.Fprintf(w, "✗ Error creating multi-image PDF: %v\n", err)
		return types.Failed(types.ModeImageToPDF, inputs, output, err)
	}

	fmt.Fprintf(w, "✓ Created multi-image PDF: %s\n", output)
	r := types.Succeeded(types.ModeImageToPDF, inputs, output, "gofpdf")
	r.Pages = drawn
	return r
}
