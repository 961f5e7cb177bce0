// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// Export file names written under the export directory.
const (
	YAMLExportFile = "history.yaml"
	JSONExportFile = "history.json"
)

// ExportYAML writes every entry matching f to dir/history.yaml and returns
// the file path. f.Limit of zero exports all entries.
func (s *Store) ExportYAML(ctx context.Context, dir string, f Filter) (string, error) {
	entries, err := s.exportEntries(ctx, f)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeExport(dir, YAMLExportFile, data)
}

// ExportJSON writes every entry matching f to dir/history.json and returns
// the file path. f.Limit of zero exports all entries.
func (s *Store) ExportJSON(ctx context.Context, dir string, f Filter) (string, error) {
	entries, err := s.exportEntries(ctx, f)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeExport(dir, JSONExportFile, data)
}

func (s *Store) exportEntries(ctx context.Context, f Filter) ([]Entry, error) {
	if f.Limit == 0 {
		f.Limit = -1
	}
	entries, err := s.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

func writeExport(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return path, nil
}
