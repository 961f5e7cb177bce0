// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/easy-converter/internal/batch"
	"github.com/pdiddy/easy-converter/internal/docconv"
	"github.com/pdiddy/easy-converter/internal/engine"
	"github.com/pdiddy/easy-converter/internal/proc"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// docConvertFunc binds a Converter to one conversion direction.
type docConvertFunc func(c *docconv.Converter) batch.ConvertFunc

// addDocumentFlags registers the flags shared by word2pdf and pdf2word.
func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "input file (alternative to the positional argument)")
	cmd.Flags().StringP("output", "o", "", "output file (default: input name with the target extension)")
	cmd.Flags().Bool("batch", false, "convert every matching file in --input-folder")
	cmd.Flags().String("input-folder", "", "folder of files to convert in batch mode")
	cmd.Flags().String("output-folder", "", "folder for converted files in batch mode")
}

// runDocuments converts a single file or, with --batch, a folder.
func runDocuments(cmd *cobra.Command, args []string, mode types.Mode, bind docConvertFunc) error {
	cfg, err := loadConfig(cmd, viper.GetViper())
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)

	caps := engine.Detect(ctx, cfg.Engine)
	logger.Debug("detected engines", "office", caps.OfficePath, "container", caps.ContainerRuntime,
		"image", caps.ContainerImage, "text", caps.TextFallback)
	conv := docconv.New(engine.NewRunner(proc.OSExecutor{}, logger), caps)
	convert := bind(conv)
	out := cmd.OutOrStdout()

	if isBatch, _ := cmd.Flags().GetBool("batch"); isBatch {
		return runBatch(ctx, cmd, cfg, mode, convert, out)
	}

	input, _ := cmd.Flags().GetString("input")
	if input == "" && len(args) > 0 {
		input = args[0]
	}
	if input == "" {
		return errors.New("an input file is required in single file mode")
	}
	output, _ := cmd.Flags().GetString("output")

	r := convert(ctx, input, output, out)
	recordResults(ctx, cfg, r)
	if !r.OK() {
		// The status line already described the failure.
		cmd.SilenceErrors = true
	}
	return r.Err()
}

func runBatch(ctx context.Context, cmd *cobra.Command, cfg types.Config, mode types.Mode, convert batch.ConvertFunc, out io.Writer) error {
	inDir, _ := cmd.Flags().GetString("input-folder")
	outDir, _ := cmd.Flags().GetString("output-folder")
	if inDir == "" || outDir == "" {
		return errors.New("--input-folder and --output-folder are required in batch mode")
	}

	result, err := batch.Run(ctx, mode, inDir, outDir, convert, out)
	recordResults(ctx, cfg, result.Results...)
	return err
}
