// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imagepdf converts image files into PDF documents: it measures the
// sources, lays them out with package layout, and draws them on a gofpdf
// canvas.
package imagepdf

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/pdiddy/easy-converter/internal/layout"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// OpenImage opens path, reads the image header to learn its pixel size and
// format, and closes the file again.
func OpenImage(path string) (layout.ImageAsset, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return layout.ImageAsset{}, fmt.Errorf("%s: %w", path, types.ErrNotFound)
		}
		return layout.ImageAsset{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return layout.ImageAsset{}, fmt.Errorf("%s is not a regular file: %w", path, types.ErrNotFound)
	}

	f, err := os.Open(path)
	if err != nil {
		return layout.ImageAsset{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return layout.ImageAsset{}, fmt.Errorf("decoding %s: %v: %w", path, err, types.ErrInvalidInput)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return layout.ImageAsset{}, fmt.Errorf("%s has empty dimensions %dx%d: %w",
			path, cfg.Width, cfg.Height, types.ErrInvalidInput)
	}

	return layout.ImageAsset{
		Path:   path,
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}, nil
}

// ValidateImages opens every path and returns the assets that are readable
// images, in input order. Each rejected path gets a status line on w.
func ValidateImages(paths []string, w io.Writer) []layout.ImageAsset {
	assets := make([]layout.ImageAsset, 0, len(paths))
	for _, p := range paths {
		asset, err := OpenImage(p)
		switch {
		case errors.Is(err, types.ErrNotFound):
			fmt.Fprintf(w, "✗ Skipping %s: File not found\n", p)
		case err != nil:
			fmt.Fprintf(w, "✗ Skipping %s: Not a valid image file\n", p)
		default:
			assets = append(assets, asset)
		}
	}
	return assets
}
