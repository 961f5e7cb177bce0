// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package layout

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/pdiddy/easy-converter/pkg/types"
)

// Layout names a strategy for arranging several images across pages.
type Layout string

const (
	Vertical   Layout = "vertical"
	Horizontal Layout = "horizontal"
	Grid       Layout = "grid"
)

// Layouts lists the accepted layout tags in help-text order.
var Layouts = []Layout{Vertical, Horizontal, Grid}

// ParseLayout matches tag against the known layouts, ignoring case and
// surrounding space.
func ParseLayout(tag string) (Layout, bool) {
	l := Layout(strings.ToLower(strings.TrimSpace(tag)))
	for _, known := range Layouts {
		if l == known {
			return l, true
		}
	}
	return Vertical, false
}

// Placement positions one scaled image on a page. X and Y are the offset of
// the image's lower-left corner from the page's lower-left corner; because
// the image is centered the same values hold for a top-left origin.
type Placement struct {
	Scale  float64
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// ComputePlacement scales an image of w x h pixels to fit the usable area of
// g, preserving aspect ratio, and centers it on the page.
func ComputePlacement(w, h int, g Geometry) (Placement, error) {
	if w <= 0 || h <= 0 {
		return Placement{}, fmt.Errorf("image dimensions %dx%d must be positive: %w", w, h, types.ErrInvalidInput)
	}

	scale := math.Min(g.UsableWidth()/float64(w), g.UsableHeight()/float64(h))
	width := float64(w) * scale
	height := float64(h) * scale

	return Placement{
		Scale:  scale,
		X:      (g.Width() - width) / 2,
		Y:      (g.Height() - height) / 2,
		Width:  width,
		Height: height,
	}, nil
}

// ImageAsset is a measured source image. The file is not held open.
type ImageAsset struct {
	Path   string
	Width  int
	Height int

	// Format is the decoder name reported by image.DecodeConfig (e.g. "png").
	Format string
}

// PageDescription pairs one source image with where it is drawn.
type PageDescription struct {
	Image     ImageAsset
	Placement Placement
}

// ComposePages lays images out one per page, in input order.
//
// The horizontal and grid layouts currently produce the same pages as
// vertical. An unknown layout writes a warning to w and falls back to
// vertical. Images whose dimensions cannot be placed are reported to w and
// left out.
func ComposePages(images []ImageAsset, g Geometry, l Layout, w io.Writer) []PageDescription {
	if _, ok := ParseLayout(string(l)); !ok {
		fmt.Fprintf(w, "Unknown layout: %s. Using vertical layout.\n", l)
	}

	pages := make([]PageDescription, 0, len(images))
	for _, img := range images {
		p, err := ComputePlacement(img.Width, img.Height, g)
		if err != nil {
			fmt.Fprintf(w, "✗ Error processing %s: %v\n", img.Path, err)
			continue
		}
		pages = append(pages, PageDescription{Image: img, Placement: p})
	}
	return pages
}
