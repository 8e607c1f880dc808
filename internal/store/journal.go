// Package store provides the SQLite-backed audit journal of dispatched actions.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bliss/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Memory is the DSN of a journal that lives only as long as the process.
const Memory = ":memory:"

// timeLayout is fixed-width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Journal records every dispatched action.
type Journal struct {
	db   *sql.DB
	path string
}

// Open opens or creates the journal at path. An empty path or Memory opens
// an in-memory journal.
func Open(path string) (*Journal, error) {
	dsn := Memory
	if path != "" && path != Memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating journal dir: %w", err)
		}
		dsn = path + "?_pragma=journal_mode(wal)&_pragma=synchronous(normal)"
	} else {
		path = Memory
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening journal db: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Journal{db: db, path: path}, nil
}

// Path returns the file backing the journal, or Memory.
func (j *Journal) Path() string {
	return j.path
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Append stores e, assigning an ID and timestamp when they are unset.
// It returns the entry as stored.
func (j *Journal) Append(ctx context.Context, e model.JournalEntry) (model.JournalEntry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	if err := insert(ctx, j.db, e, false); err != nil {
		return e, fmt.Errorf("appending journal entry: %w", err)
	}
	return e, nil
}

// Entries returns journal entries oldest first. A non-empty sessionID
// restricts the result to that session.
func (j *Journal) Entries(ctx context.Context, sessionID string) ([]model.JournalEntry, error) {
	query := `SELECT id, session_id, seq, at, action, category, amount, accepted, error, balance
		FROM journal`
	var args []any
	if sessionID != "" {
		query += " WHERE session_id = ?"
		args = append(args, sessionID)
	}
	query += " ORDER BY at, seq"

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.JournalEntry
	for rows.Next() {
		var e model.JournalEntry
		var at, balance string
		var category, amount, errText sql.NullString
		var accepted int

		if err := rows.Scan(&e.ID, &e.SessionID, &e.Seq, &at, &e.Action,
			&category, &amount, &accepted, &errText, &balance); err != nil {
			return nil, err
		}

		e.Accepted = accepted != 0
		e.Category = category.String
		e.Amount = amount.String
		e.Error = errText.String
		e.At, _ = time.Parse(timeLayout, at)
		e.Balance, _ = decimal.NewFromString(balance)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of journal entries.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var count int
	err := j.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM journal").Scan(&count)
	return count, err
}

// Sessions returns the distinct session IDs in the journal, oldest first.
func (j *Journal) Sessions(ctx context.Context) ([]string, error) {
	rows, err := j.db.QueryContext(ctx,
		"SELECT session_id FROM journal GROUP BY session_id ORDER BY MIN(at)")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Export copies every entry into the journal file at path, keeping entries
// already there. Returns the number of entries copied.
func (j *Journal) Export(ctx context.Context, path string) (int, error) {
	entries, err := j.Entries(ctx, "")
	if err != nil {
		return 0, err
	}

	dst, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer func() { _ = dst.Close() }()

	tx, err := dst.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		if err := insert(ctx, tx, e, true); err != nil {
			return 0, fmt.Errorf("exporting journal entry %s: %w", e.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return len(entries), nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, e model.JournalEntry, ignoreExisting bool) error {
	verb := "INSERT"
	if ignoreExisting {
		verb = "INSERT OR IGNORE"
	}

	accepted := 0
	if e.Accepted {
		accepted = 1
	}

	_, err := db.ExecContext(ctx, verb+` INTO journal
		(id, session_id, seq, at, action, category, amount, accepted, error, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SessionID, e.Seq, e.At.UTC().Format(timeLayout), e.Action,
		e.Category, e.Amount, accepted, e.Error, e.Balance.String(),
	)
	return err
}
