// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package imagepdf

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/easy-converter/internal/layout"
)

// Canvas is a PDF being authored one image page at a time.
type Canvas interface {
	// NewPage starts a new page. The page is only emitted once something is
	// drawn on it, so an image that fails to draw leaves no blank page.
	NewPage()

	// DrawImage draws asset on the current page at placement.
	DrawImage(asset layout.ImageAsset, p layout.Placement) error

	// PageCount returns the number of pages emitted so far.
	PageCount() int

	// Save writes the document to path, creating parent directories.
	Save(path string) error
}

// CanvasFactory creates a Canvas sized to a page geometry.
type CanvasFactory func(g layout.Geometry) Canvas

// PDFCanvas implements Canvas with gofpdf, using points as the unit.
type PDFCanvas struct {
	pdf         *gofpdf.Fpdf
	geometry    layout.Geometry
	pagePending bool
	registered  map[string]string
}

// NewCanvas creates an empty PDF whose pages all have g's size.
func NewCanvas(g layout.Geometry) Canvas {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: g.Width(), Ht: g.Height()},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	return &PDFCanvas{
		pdf:        pdf,
		geometry:   g,
		registered: make(map[string]string),
	}
}

func (c *PDFCanvas) NewPage() { c.pagePending = true }

func (c *PDFCanvas) PageCount() int { return c.pdf.PageCount() }

func (c *PDFCanvas) DrawImage(asset layout.ImageAsset, p layout.Placement) error {
	if c.pdf.Err() {
		return fmt.Errorf("pdf canvas: %w", c.pdf.Error())
	}

	name, err := c.register(asset)
	if err != nil {
		return err
	}

	if c.pagePending || c.pdf.PageCount() == 0 {
		c.pdf.AddPage()
		c.pagePending = false
	}

	// gofpdf measures y from the top edge.
	top := c.geometry.Height() - p.Y - p.Height
	c.pdf.ImageOptions(name, p.X, top, p.Width, p.Height, false, gofpdf.ImageOptions{}, 0, "")
	if c.pdf.Err() {
		return fmt.Errorf("drawing %s: %w", asset.Path, c.pdf.Error())
	}
	return nil
}

func (c *PDFCanvas) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}
	if err := c.pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// register loads the image into the PDF once per path. JPEG data is embedded
// as-is; every other format is decoded, flattened onto white, and embedded as
// an opaque 8-bit PNG so gofpdf never sees alpha, palettes, or 16-bit depth.
func (c *PDFCanvas) register(asset layout.ImageAsset) (string, error) {
	if name, ok := c.registered[asset.Path]; ok {
		return name, nil
	}

	name := fmt.Sprintf("img%d", len(c.registered))
	var opts gofpdf.ImageOptions
	var data []byte
	var err error

	if asset.Format == "jpeg" {
		opts.ImageType = "JPG"
		data, err = os.ReadFile(asset.Path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", asset.Path, err)
		}
	} else {
		opts.ImageType = "PNG"
		data, err = flatten(asset.Path)
		if err != nil {
			return "", err
		}
	}

	c.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if c.pdf.Err() {
		// gofpdf errors are sticky; later pages must not inherit this one.
		err := c.pdf.Error()
		c.pdf.ClearError()
		return "", fmt.Errorf("embedding %s: %w", asset.Path, err)
	}
	c.registered[asset.Path] = name
	return name, nil
}

// flatten decodes the image at path and composites it over a white
// background, returning PNG bytes.
func flatten(path string) ([]byte, error) {
	src, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	size := src.Bounds().Size()
	bg := imaging.New(size.X, size.Y, color.White)
	flat := imaging.Overlay(bg, src, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.PNG); err != nil {
		return nil, fmt.Errorf("re-encoding %s: %w", path, err)
	}
	return buf.Bytes(), nil
}
