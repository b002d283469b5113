// Package history keeps an opt-in SQLite log of filter invocations.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Tracker records invocations in SQLite.
type Tracker struct {
	db *sql.DB
}

// Open opens or creates the history database at dbPath.
func Open(dbPath string) (*Tracker, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &Tracker{db: db}, nil
}

// Record stores r, assigning an id when it has none, and prunes records
// older than 90 days. It returns the stored id.
func (t *Tracker) Record(r Record) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if _, err := t.db.Exec(insertSQL, r.ID, r.Target, r.Range, r.Filetype, r.Instruction, r.Preset,
		r.ExitCode, r.LinesIn, r.LinesOut, r.DurationMs); err != nil {
		return "", fmt.Errorf("record: %w", err)
	}

	t.db.Exec(cleanupSQL)

	return r.ID, nil
}

// Recent returns the last n invocations, newest first.
func (t *Tracker) Recent(n int) ([]Record, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := t.db.Query(recentSQL, n)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.Target, &r.Range, &r.Filetype, &r.Instruction, &r.Preset,
			&r.ExitCode, &r.LinesIn, &r.LinesOut, &r.DurationMs); err != nil {
			return nil, fmt.Errorf("recent scan: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Summary returns aggregate stats over all stored invocations.
func (t *Tracker) Summary() (*Summary, error) {
	var s Summary
	if err := t.db.QueryRow(summarySQL).Scan(&s.Total, &s.Failed, &s.TotalMs); err != nil {
		return nil, fmt.Errorf("summary: %w", err)
	}
	return &s, nil
}

// Close closes the database connection.
func (t *Tracker) Close() error {
	return t.db.Close()
}

// Timed measures one invocation and records it when finished.
type Timed struct {
	tracker *Tracker
	start   time.Time
}

// Start begins timing an invocation. A nil tracker makes Done a no-op,
// so callers need not check whether history is enabled.
func Start(tracker *Tracker) *Timed {
	return &Timed{tracker: tracker, start: time.Now()}
}

// Done records r with the elapsed duration.
func (te *Timed) Done(r Record) error {
	if te.tracker == nil {
		return nil
	}
	r.DurationMs = time.Since(te.start).Milliseconds()
	_, err := te.tracker.Record(r)
	return err
}
