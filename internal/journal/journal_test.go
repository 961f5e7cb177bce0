// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/easy-converter/pkg/types"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "state", "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	results := []types.Result{
		types.Succeeded(types.ModeImageToPDF, []string{"a.png", "b.jpg"}, "output.pdf", "gofpdf"),
		types.Succeeded(types.ModeWordToPDF, []string{"report.docx"}, "report.pdf", "office"),
		types.Failed(types.ModePDFToWord, []string{"scan.pdf"}, "scan.docx", types.ErrEngineMissing),
		types.Failed(types.ModeWordToPDF, []string{"old.doc"}, "old.pdf", errors.New("boom")),
	}
	for i, r := range results {
		r.FinishedAt = base.Add(time.Duration(i) * time.Minute)
		_, err := s.Record(context.Background(), r)
		require.NoError(t, err)
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "dir", "journal.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.FileExists(t, path)
	assert.Equal(t, path, s.Path())

	var n int
	require.NoError(t, s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='conversions'`,
	).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestOpenTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s1, err := Open(path)
	require.NoError(t, err)
	_, err = s1.Record(context.Background(), types.Succeeded(types.ModeWordToPDF, []string{"x.docx"}, "x.pdf", "text"))
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	entries, err := s2.List(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestRecordAndList(t *testing.T) {
	s := openTest(t)
	seed(t, s)

	entries, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Newest first.
	assert.Equal(t, []string{"old.doc"}, entries[0].Inputs)
	assert.Equal(t, types.KindOther, entries[0].Kind)

	missing := entries[1]
	assert.Equal(t, types.ModePDFToWord, missing.Mode)
	assert.Equal(t, types.ConversionFailed, missing.Status)
	assert.Equal(t, types.KindEngineMissing, missing.Kind)
	assert.Equal(t, types.ErrEngineMissing.Error(), missing.Message)

	first := entries[3]
	assert.Equal(t, []string{"a.png", "b.jpg"}, first.Inputs)
	assert.Equal(t, "gofpdf", first.Backend)
	assert.True(t, first.FinishedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.Less(t, first.ID, entries[0].ID)
}

func TestRecordFillsTime(t *testing.T) {
	s := openTest(t)
	before := time.Now().UTC().Add(-time.Second)
	_, err := s.Record(context.Background(), types.Result{Mode: types.ModeWordToPDF, Status: types.ConversionDone})
	require.NoError(t, err)

	entries, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].FinishedAt.After(before))
	assert.Empty(t, entries[0].Inputs)
}

func TestListFilters(t *testing.T) {
	s := openTest(t)
	seed(t, s)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"by mode", Filter{Mode: types.ModeWordToPDF}, 2},
		{"by status", Filter{Status: types.ConversionFailed}, 2},
		{"mode and status", Filter{Mode: types.ModeWordToPDF, Status: types.ConversionDone}, 1},
		{"limit", Filter{Limit: 3}, 3},
		{"no limit", Filter{Limit: -1}, 4},
		{"no match", Filter{Mode: types.ModeImageToPDF, Status: types.ConversionFailed}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := s.List(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Len(t, entries, tt.want)
			for _, e := range entries {
				if tt.filter.Mode != "" {
					assert.Equal(t, tt.filter.Mode, e.Mode)
				}
				if tt.filter.Status != "" {
					assert.Equal(t, tt.filter.Status, e.Status)
				}
			}
		})
	}
}

func TestExportYAML(t *testing.T) {
	s := openTest(t)
	seed(t, s)
	dir := filepath.Join(t.TempDir(), "export")

	path, err := s.ExportYAML(context.Background(), dir, Filter{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, YAMLExportFile), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mode: img2pdf")

	var entries []Entry
	require.NoError(t, yaml.Unmarshal(data, &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, "old.pdf", entries[0].Output)
	assert.Equal(t, []string{"a.png", "b.jpg"}, entries[3].Inputs)
}

func TestExportJSON(t *testing.T) {
	s := openTest(t)
	seed(t, s)
	dir := t.TempDir()

	path, err := s.ExportJSON(context.Background(), dir, Filter{Status: types.ConversionDone})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	// Result fields are flattened next to the id.
	assert.Contains(t, raw[0], "id")
	assert.Equal(t, "converted", raw[0]["status"])
}

func TestExportEmpty(t *testing.T) {
	s := openTest(t)
	path, err := s.ExportJSON(context.Background(), t.TempDir(), Filter{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
