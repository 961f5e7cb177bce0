// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/easy-converter/internal/imagepdf"
	"github.com/pdiddy/easy-converter/internal/layout"
	"github.com/pdiddy/easy-converter/pkg/types"
)

var errNoValidImages = errors.New("no valid image files found")

var img2pdfCmd = &cobra.Command{
	Use:   "img2pdf IMAGE...",
	Short: "Convert images to PDF",
	Long: `img2pdf converts one or more images to PDF. Each image is scaled to fit
the page inside the margins, preserving its aspect ratio, and centered.

A single image becomes a one-page PDF next to the input (or at --output).
Several images, or any use of --multiple, produce one PDF with one image
per page in argument order. Missing or unreadable images are skipped.`,
	Example: `  easy-converter img2pdf image.jpg
  easy-converter img2pdf image.jpg -o output.pdf
  easy-converter img2pdf *.jpg -m album.pdf
  easy-converter img2pdf *.jpg -m album.pdf -l grid
  easy-converter img2pdf *.jpg -m album.pdf -s letter --margin 0.25`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImg2PDF,
}

func runImg2PDF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, viper.GetViper())
	if err != nil {
		return err
	}
	applyImageFlags(cmd, &cfg.Image)

	out := cmd.OutOrStdout()
	assets := imagepdf.ValidateImages(args, out)
	if len(assets) == 0 {
		fmt.Fprintln(out, "No valid image files found!")
		return errNoValidImages
	}

	g, err := layout.GeometryFromConfig(cfg.Image, out)
	if err != nil {
		return err
	}
	conv := imagepdf.NewConverter(g)

	output, _ := cmd.Flags().GetString("output")
	multiple, _ := cmd.Flags().GetString("multiple")

	var r types.Result
	if len(assets) == 1 && multiple == "" {
		r = conv.ConvertSingle(assets[0], output, out)
	} else {
		r = conv.ConvertMultiple(assets, multiple, layout.Layout(cfg.Image.Layout), out)
	}
	recordResults(commandContext(cmd), cfg, r)
	return nil
}

// applyImageFlags overrides configured image settings with flags the user
// set explicitly.
func applyImageFlags(cmd *cobra.Command, img *types.ImageConfig) {
	flags := cmd.Flags()
	if flags.Changed("size") {
		img.PageSize, _ = flags.GetString("size")
	}
	if flags.Changed("margin") {
		img.Margin, _ = flags.GetFloat64("margin")
	}
	if flags.Changed("layout") {
		img.Layout, _ = flags.GetString("layout")
	}
}

func init() {
	d := types.DefaultConfig().Image
	img2pdfCmd.Flags().StringP("output", "o", "", "output PDF for a single image (default: input name with .pdf)")
	img2pdfCmd.Flags().StringP("multiple", "m", "", "output PDF for multiple images (default: "+imagepdf.DefaultMultiOutput+")")
	img2pdfCmd.Flags().StringP("size", "s", d.PageSize, "page size: A4, LETTER, or WxH in inches")
	img2pdfCmd.Flags().StringP("layout", "l", d.Layout, "layout for multiple images: vertical, horizontal, or grid")
	img2pdfCmd.Flags().Float64("margin", d.Margin, "page margin in inches")

	rootCmd.AddCommand(img2pdfCmd)
}
