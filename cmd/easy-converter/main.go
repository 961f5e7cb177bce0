// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the easy-converter CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/easy-converter/internal/journal"
	"github.com/pdiddy/easy-converter/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// logger receives engine diagnostics. PersistentPreRunE replaces it once
// --verbose is known.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// rootCmd is the base command for the easy-converter CLI.
var rootCmd = &cobra.Command{
	Use:   "easy-converter",
	Short: "Convert images to PDF and Word documents to and from PDF",
	Long: `easy-converter converts images into PDF pages and converts documents
between Word and PDF formats.

Image conversion lays out each image centered and scaled on its own page.
Document conversion uses a headless LibreOffice when one is installed, then
LibreOffice inside a docker or podman container, then a text-only
reconstruction that keeps paragraphs but not layout. Run "easy-converter
engines" to see which of these are available.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./easy-converter.yaml or ~/.config/easy-converter/easy-converter.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log engine diagnostics to stderr")
	rootCmd.PersistentFlags().String("journal", "", "record conversions in this SQLite database (overrides journal.path)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("easy-converter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "easy-converter"))
		}
	}

	setDefaults(viper.GetViper())
	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// setDefaults registers every config key so that environment variables
// reach Unmarshal even when no config file mentions the key.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("image.page_size", d.Image.PageSize)
	v.SetDefault("image.margin", d.Image.Margin)
	v.SetDefault("image.layout", d.Image.Layout)
	v.SetDefault("engine.office_path", d.Engine.OfficePath)
	v.SetDefault("engine.container_image", d.Engine.ContainerImage)
	v.SetDefault("engine.disable_container", d.Engine.DisableContainer)
	v.SetDefault("engine.disable_text_fallback", d.Engine.DisableTextFallback)
	v.SetDefault("journal.path", d.Journal.Path)
}

// bindEnv maps EASY_CONVERTER_IMAGE_PAGE_SIZE and friends onto config keys.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("EASY_CONVERTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig decodes v into a Config and applies the persistent flags that
// override it.
func loadConfig(cmd *cobra.Command, v *viper.Viper) (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if f := cmd.Flags().Lookup("journal"); f != nil && f.Changed {
		cfg.Journal.Path = f.Value.String()
	}
	return cfg, nil
}

// commandContext returns the context the command was executed with.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// recordResults appends results to the journal when one is configured.
// Journal problems are logged and never fail the command.
func recordResults(ctx context.Context, cfg types.Config, results ...types.Result) {
	if cfg.Journal.Path == "" || len(results) == 0 {
		return
	}
	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		logger.Warn("journal unavailable", "path", cfg.Journal.Path, "error", err)
		return
	}
	defer store.Close()

	for _, r := range results {
		if _, err := store.Record(ctx, r); err != nil {
			logger.Warn("recording conversion failed", "output", r.Output, "error", err)
		}
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
