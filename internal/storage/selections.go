// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/rigrun-overlay/internal/util"
)

// =============================================================================
// SELECTION RECORD
// =============================================================================

// SelectionRecord is the committed value of one dropdown.
type SelectionRecord struct {
	Key       string    `json:"key"`
	Values    []string  `json:"values"`
	Multiple  bool      `json:"multiple"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// =============================================================================
// SELECTION STORE
// =============================================================================

// SelectionStore persists dropdown values in SQLite. It is safe for
// concurrent use.
type SelectionStore struct {
	mu   sync.Mutex
	db   *sql.DB
	path string

	// MaxRecords limits stored selections (0 = unlimited). The least recently
	// updated records are dropped first.
	MaxRecords int
}

// OpenSelectionStore opens or creates the database at path.
func OpenSelectionStore(path string) (*SelectionStore, error) {
	if path == "" {
		return nil, errors.New("database path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	s := &SelectionStore{db: db, path: path, MaxRecords: 500}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *SelectionStore) initSchema() error {
	if _, err := s.db.Exec(Schema); err != nil {
		return err
	}
	_, err := s.db.Exec(InitMetadata)
	return err
}

// Path returns the database file.
func (s *SelectionStore) Path() string { return s.path }

// Close closes the database.
func (s *SelectionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// =============================================================================
// SAVE OPERATIONS
// =============================================================================

// Save replaces the stored value for key. An empty values slice is stored
// as an empty selection, not deleted.
func (s *SelectionStore) Save(ctx context.Context, key string, values []string, multiple bool) error {
	if strings.TrimSpace(key) == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UnixNano()
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO selections (widget_key, multiple, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(widget_key) DO UPDATE SET multiple = excluded.multiple, updated_at = excluded.updated_at`,
		key, boolToInt(multiple), now, now); err != nil {
		return fmt.Errorf("failed to save selection %s: %w", key, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM selection_values WHERE widget_key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear values for %s: %w", key, err)
	}
	for i, v := range values {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO selection_values (widget_key, position, value) VALUES (?, ?, ?)`,
			key, i, v); err != nil {
			return fmt.Errorf("failed to save value for %s: %w", key, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit selection %s: %w", key, err)
	}

	if s.MaxRecords > 0 {
		s.enforceLimit(ctx)
	}
	return nil
}

// enforceLimit removes the oldest records when over the limit.
func (s *SelectionStore) enforceLimit(ctx context.Context) {
	_, _ = s.db.ExecContext(ctx, `
		DELETE FROM selections WHERE widget_key IN (
			SELECT widget_key FROM selections
			ORDER BY updated_at DESC
			LIMIT -1 OFFSET ?
		)`, s.MaxRecords)
}

// =============================================================================
// LOAD OPERATIONS
// =============================================================================

// Load returns the stored value for key, or ErrNotFound.
func (s *SelectionStore) Load(ctx context.Context, key string) (*SelectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	rec := &SelectionRecord{Key: key}
	var multiple int
	var created, updated int64
	err := s.db.QueryRowContext(ctx,
		`SELECT multiple, created_at, updated_at FROM selections WHERE widget_key = ?`, key).
		Scan(&multiple, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load selection %s: %w", key, err)
	}
	rec.Multiple = multiple != 0
	rec.CreatedAt = time.Unix(0, created)
	rec.UpdatedAt = time.Unix(0, updated)

	if rec.Values, err = s.values(ctx, key); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *SelectionStore) values(ctx context.Context, key string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT value FROM selection_values WHERE widget_key = ? ORDER BY position`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load values for %s: %w", key, err)
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// List returns every record, most recently updated first.
func (s *SelectionStore) List(ctx context.Context) ([]SelectionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT widget_key, multiple, created_at, updated_at FROM selections ORDER BY updated_at DESC, widget_key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list selections: %w", err)
	}

	var records []SelectionRecord
	for rows.Next() {
		var rec SelectionRecord
		var multiple int
		var created, updated int64
		if err := rows.Scan(&rec.Key, &multiple, &created, &updated); err != nil {
			rows.Close()
			return nil, err
		}
		rec.Multiple = multiple != 0
		rec.CreatedAt = time.Unix(0, created)
		rec.UpdatedAt = time.Unix(0, updated)
		records = append(records, rec)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, err
	}

	// Values are read after the cursor is closed; the pool holds one connection.
	for i := range records {
		if records[i].Values, err = s.values(ctx, records[i].Key); err != nil {
			return nil, err
		}
	}
	return records, nil
}

// =============================================================================
// DELETE OPERATIONS
// =============================================================================

// Delete removes the record for key, or returns ErrNotFound.
func (s *SelectionStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM selections WHERE widget_key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete selection %s: %w", key, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return nil
}

// Clear removes every record.
func (s *SelectionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return ErrClosed
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM selections`); err != nil {
		return fmt.Errorf("failed to clear selections: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrNotFound is returned when no selection is stored for a key.
	// Use errors.Is(err, ErrNotFound) to check for this error.
	ErrNotFound = &StoreError{Message: "selection not found"}

	// ErrEmptyKey is returned when saving without a widget key.
	ErrEmptyKey = &StoreError{Message: "widget key cannot be empty"}

	// ErrClosed is returned after Close.
	ErrClosed = &StoreError{Message: "selection store closed"}
)

// StoreError represents a storage error. It can be compared using
// errors.Is.
type StoreError struct {
	Message string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	return e.Message
}

// Is implements errors.Is support for comparing store errors.
func (e *StoreError) Is(target error) bool {
	t, ok := target.(*StoreError)
	if !ok {
		return false
	}
	return e.Message == t.Message
}

// =============================================================================
// LIST FORMATTING
// =============================================================================

// FormatSelectionList formats records as a table for the CLI.
func FormatSelectionList(records []SelectionRecord) string {
	if len(records) == 0 {
		return "No saved selections."
	}

	var sb strings.Builder
	sb.WriteString("Selections:\n")
	sb.WriteString("-----------------------------------------------------\n")
	sb.WriteString(util.PadRight("Key", 20) + " " + util.PadRight("Updated", 20) + " " + util.PadRight("Mode", 6) + " Values\n")
	sb.WriteString("-----------------------------------------------------\n")

	for _, r := range records {
		mode := "single"
		if r.Multiple {
			mode = "multi"
		}
		values := "(none)"
		if len(r.Values) > 0 {
			values = util.TruncateWidth(strings.Join(r.Values, ", "), 40)
		}
		sb.WriteString(util.PadRight(util.TruncateWidth(r.Key, 20), 20) + " ")
		sb.WriteString(util.PadRight(r.UpdatedAt.Format("2006-01-02 15:04:05"), 20) + " ")
		sb.WriteString(util.PadRight(mode, 6) + " ")
		sb.WriteString(values + "\n")
	}

	return sb.String()
}
