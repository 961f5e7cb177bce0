// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a history of conversions in a SQLite database.
package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/easy-converter/pkg/types"
)

// DefaultLimit caps List when Filter.Limit is zero.
const DefaultLimit = 50

// Store is an open conversion journal.
type Store struct {
	db   *sql.DB
	path string
}

// Entry is one recorded conversion.
type Entry struct {
	ID           int64 `json:"id" yaml:"id"`
	types.Result `json:",inline" yaml:",inline"`
}

// Filter narrows List results. Zero fields match everything.
type Filter struct {
	Mode   types.Mode
	Status types.ConversionStatus

	// Limit caps the number of entries. Zero uses DefaultLimit; negative
	// means no limit.
	Limit int
}

// Open opens or creates the journal database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			inputs TEXT NOT NULL,
			output TEXT,
			backend TEXT,
			status TEXT NOT NULL,
			kind TEXT,
			message TEXT,
			pages INTEGER,
			finished_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_mode ON conversions(mode)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_status ON conversions(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends r to the journal and returns its id. A zero FinishedAt is
// replaced with the current time.
func (s *Store) Record(ctx context.Context, r types.Result) (int64, error) {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now().UTC()
	}
	inputs := r.Inputs
	if inputs == nil {
		inputs = []string{}
	}
	inputsJSON, err := json.Marshal(inputs)
	if err != nil {
		return 0, fmt.Errorf("encoding inputs: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (mode, inputs, output, backend, status, kind, message, pages, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(r.Mode), string(inputsJSON), r.Output, r.Backend, string(r.Status),
		string(r.Kind), r.Message, r.Pages, r.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("recording conversion: %w", err)
	}
	return res.LastInsertId()
}

// List returns journal entries matching f, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]Entry, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT id, mode, inputs, output, backend, status, kind, message, pages, finished_at
		FROM conversions
		WHERE 1=1`)

	if f.Mode != "" {
		qb.WriteString(` AND mode = ?`)
		args = append(args, string(f.Mode))
	}
	if f.Status != "" {
		qb.WriteString(` AND status = ?`)
		args = append(args, string(f.Status))
	}

	qb.WriteString(` ORDER BY id DESC`)

	limit := f.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > 0 {
		qb.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			mode       string
			inputsJSON string
			output     sql.NullString
			backend    sql.NullString
			status     string
			kind       sql.NullString
			message    sql.NullString
			pages      sql.NullInt64
			finishedAt string
		)
		if err := rows.Scan(&e.ID, &mode, &inputsJSON, &output, &backend, &status,
			&kind, &message, &pages, &finishedAt); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}

		e.Mode = types.Mode(mode)
		e.Output = output.String
		e.Backend = backend.String
		e.Status = types.ConversionStatus(status)
		e.Kind = types.ErrorKind(kind.String)
		e.Message = message.String
		e.Pages = int(pages.Int64)
		if err := json.Unmarshal([]byte(inputsJSON), &e.Inputs); err != nil {
			return nil, fmt.Errorf("decoding inputs of entry %d: %w", e.ID, err)
		}
		if e.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, fmt.Errorf("decoding time of entry %d: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows: %w", err)
	}
	return entries, nil
}
