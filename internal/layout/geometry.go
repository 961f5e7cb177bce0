// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package layout computes where source images land on PDF pages.
// Geometry is expressed in PDF points; 72 points make one inch.
package layout

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pdiddy/easy-converter/pkg/types"
)

// PointsPerInch converts inches to PDF points.
const PointsPerInch = 72.0

const mmPerInch = 25.4

// Standard page sizes in points, portrait orientation.
var (
	A4     = Size{Width: 210 / mmPerInch * PointsPerInch, Height: 297 / mmPerInch * PointsPerInch}
	Letter = Size{Width: 8.5 * PointsPerInch, Height: 11 * PointsPerInch}
)

// Size is a page width and height in points.
type Size struct {
	Width  float64
	Height float64
}

// ParsePageSize resolves a page size preset (A4, LETTER, case-insensitive) or
// an explicit "WxH" pair in inches. ok is false when spec matches neither;
// the returned size is then A4.
func ParsePageSize(spec string) (size Size, ok bool) {
	switch strings.ToUpper(strings.TrimSpace(spec)) {
	case "A4":
		return A4, true
	case "LETTER":
		return Letter, true
	}

	w, h, found := strings.Cut(strings.ToLower(strings.TrimSpace(spec)), "x")
	if !found {
		return A4, false
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(w), 64)
	if err != nil || !positive(width) {
		return A4, false
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(h), 64)
	if err != nil || !positive(height) {
		return A4, false
	}
	return Size{Width: width * PointsPerInch, Height: height * PointsPerInch}, true
}

// finite is false for NaN and both infinities, which compare false against
// every bound.
func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func positive(v float64) bool { return finite(v) && v > 0 }

// Geometry is an immutable page description: size and a uniform margin,
// all in points. Construct it with NewGeometry.
type Geometry struct {
	width  float64
	height float64
	margin float64
}

// NewGeometry validates and builds a Geometry. It rejects non-positive page
// dimensions, negative margins, and margins that leave no usable area.
func NewGeometry(size Size, margin float64) (Geometry, error) {
	if !positive(size.Width) || !positive(size.Height) {
		return Geometry{}, fmt.Errorf("page size %.2fx%.2fpt must be positive: %w",
			size.Width, size.Height, types.ErrInvalidInput)
	}
	if !finite(margin) || margin < 0 {
		return Geometry{}, fmt.Errorf("margin %.2fpt must be finite and not negative: %w", margin, types.ErrInvalidInput)
	}
	if size.Width-2*margin <= 0 || size.Height-2*margin <= 0 {
		return Geometry{}, fmt.Errorf("margin %.2fpt leaves no usable area on a %.2fx%.2fpt page: %w",
			margin, size.Width, size.Height, types.ErrInvalidInput)
	}
	return Geometry{width: size.Width, height: size.Height, margin: margin}, nil
}

// GeometryFromConfig resolves the page size and margin (inches) from cfg.
// An unrecognized page size falls back to A4 with a warning written to w.
func GeometryFromConfig(cfg types.ImageConfig, w io.Writer) (Geometry, error) {
	size, ok := ParsePageSize(cfg.PageSize)
	if !ok {
		fmt.Fprintf(w, "Invalid page size: %s. Using A4.\n", cfg.PageSize)
	}
	return NewGeometry(size, cfg.Margin*PointsPerInch)
}

// Width returns the page width in points.
func (g Geometry) Width() float64 { return g.width }

// Height returns the page height in points.
func (g Geometry) Height() float64 { return g.height }

// Margin returns the margin in points.
func (g Geometry) Margin() float64 { return g.margin }

// Size returns the page dimensions.
func (g Geometry) Size() Size { return Size{Width: g.width, Height: g.height} }

// UsableWidth is the page width minus both side margins.
func (g Geometry) UsableWidth() float64 { return g.width - 2*g.margin }

// UsableHeight is the page height minus top and bottom margins.
func (g Geometry) UsableHeight() float64 { return g.height - 2*g.margin }
