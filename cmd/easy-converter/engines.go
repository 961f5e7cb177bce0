// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/easy-converter/internal/engine"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "Show the document conversion engines available on this host",
	Long: `Engines probes for a local LibreOffice, a docker or podman runtime with
the configured office image, and the text fallback, then prints the order
in which each kind of conversion would try them.`,
	Args: cobra.NoArgs,
	RunE: runEngines,
}

// chainCase is one representative job shown by the engines command.
type chainCase struct {
	Label string
	Job   engine.Job
}

var chainCases = []chainCase{
	{Label: "docx -> pdf", Job: engine.Job{Input: "in.docx", Direction: engine.ToPDF}},
	{Label: "doc -> pdf", Job: engine.Job{Input: "in.doc", Direction: engine.ToPDF}},
	{Label: "pdf -> docx", Job: engine.Job{Input: "in.pdf", Direction: engine.ToWord}},
	{Label: "pdf -> docx (pages)", Job: engine.Job{Input: "in.pdf", Direction: engine.ToWord, Pages: engine.PageRange{Start: 0, End: 1}}},
}

func runEngines(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, viper.GetViper())
	if err != nil {
		return err
	}
	caps := engine.Detect(commandContext(cmd), cfg.Engine)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatEngines(cmd.OutOrStdout(), caps, jsonOutput)
}

func formatEngines(w io.Writer, caps engine.Capabilities, jsonOutput bool) error {
	chains := make(map[string][]engine.Kind, len(chainCases))
	for _, c := range chainCases {
		chains[c.Label] = engine.Plan(caps, c.Job)
	}

	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Capabilities engine.Capabilities      `json:"capabilities"`
			Chains       map[string][]engine.Kind `json:"chains"`
		}{caps, chains})
	}

	fmt.Fprint(w, caps.String())
	fmt.Fprintln(w)
	for _, c := range chainCases {
		fmt.Fprintf(w, "%-20s %s\n", c.Label+":", chainString(chains[c.Label]))
	}
	return nil
}

func chainString(kinds []engine.Kind) string {
	if len(kinds) == 0 {
		return "unavailable"
	}
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, " -> ")
}

func init() {
	enginesCmd.Flags().Bool("json", false, "output capabilities and chains as JSON")
	rootCmd.AddCommand(enginesCmd)
}
