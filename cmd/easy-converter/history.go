// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/easy-converter/internal/journal"
	"github.com/pdiddy/easy-converter/pkg/types"
)

var errJournalDisabled = errors.New("no journal configured: set journal.path or pass --journal")

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export recorded conversions",
	Long: `History reads the conversion journal, a SQLite database enabled with
journal.path in the config file or the --journal flag. Entries are listed
newest first; --export writes them to history.yaml or history.json in a
directory instead.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, viper.GetViper())
	if err != nil {
		return err
	}
	if cfg.Journal.Path == "" {
		return errJournalDisabled
	}

	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	mode, _ := cmd.Flags().GetString("mode")
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	filter := journal.Filter{
		Mode:   types.Mode(mode),
		Status: types.ConversionStatus(status),
		Limit:  limit,
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	ctx := commandContext(cmd)
	out := cmd.OutOrStdout()

	if dir, _ := cmd.Flags().GetString("export"); dir != "" {
		if !cmd.Flags().Changed("limit") {
			filter.Limit = 0
		}
		var path string
		if jsonOutput {
			path, err = store.ExportJSON(ctx, dir, filter)
		} else {
			path, err = store.ExportYAML(ctx, dir, filter)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported history to %s\n", path)
		return nil
	}

	entries, err := store.List(ctx, filter)
	if err != nil {
		return err
	}
	return formatHistory(out, entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []journal.Entry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []journal.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-5s  %-20s  %-8s  %-9s  %-9s  %-30s  %s\n",
		"ID", "Finished", "Mode", "Status", "Backend", "Input", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, e := range entries {
		input := truncate(strings.Join(baseNames(e.Inputs), ","), 30)
		backend := e.Backend
		if backend == "" {
			backend = "-"
		}
		fmt.Fprintf(w, "%-5d  %-20s  %-8s  %-9s  %-9s  %-30s  %s\n",
			e.ID, e.FinishedAt.Local().Format("2006-01-02 15:04:05"), e.Mode, e.Status, backend, input, e.Output)
		if e.Message != "" {
			fmt.Fprintf(w, "       %s: %s\n", e.Kind, e.Message)
		}
	}

	fmt.Fprintf(w, "\n%d entries\n", len(entries))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

func init() {
	historyCmd.Flags().String("mode", "", "filter by mode: img2pdf, word2pdf, or pdf2word")
	historyCmd.Flags().String("status", "", "filter by status: converted or failed")
	historyCmd.Flags().Int("limit", journal.DefaultLimit, "maximum entries to list (negative for all)")
	historyCmd.Flags().Bool("json", false, "output as JSON (with --export, write history.json)")
	historyCmd.Flags().String("export", "", "write entries to history.yaml (or .json) in this directory")

	rootCmd.AddCommand(historyCmd)
}
