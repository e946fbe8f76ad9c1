package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/JK0987/mousehunt-improved/internal/errors"
	"github.com/JK0987/mousehunt-improved/internal/journal"
)

// Get retrieves an entry by id within a namespace.
func Get(ctx context.Context, db *sql.DB, namespace string, id int64) (*journal.Entry, error) {
	query := `
		SELECT id, date, location, text, types_json, mouse, image
		FROM entries
		WHERE namespace = ? AND id = ?
	`

	row := db.QueryRowContext(ctx, query, namespace, id)
	e, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(namespace, id)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return e, nil
}

// GetAll retrieves every entry in a namespace. Order is unspecified;
// callers sort.
func GetAll(ctx context.Context, db *sql.DB, namespace string) ([]journal.Entry, error) {
	query := `
		SELECT id, date, location, text, types_json, mouse, image
		FROM entries
		WHERE namespace = ?
	`

	rows, err := db.QueryContext(ctx, query, namespace)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}

	return entries, nil
}

// Upsert writes an entry under (namespace, id), but never downgrades: when
// the stored row already has non-empty text, the write is a no-op. Returns
// true when the row was inserted or updated.
func Upsert(ctx context.Context, db *sql.DB, namespace string, e journal.Entry) (bool, error) {
	typesJSON, err := json.Marshal(e.Types)
	if err != nil {
		return false, errors.NewInternal(err)
	}

	mouse := toNullString(e.Mouse)
	image := toNullString(e.Image)
	now := time.Now().Unix()

	query := `
		INSERT INTO entries (
			namespace, id, date, location, text, types_json,
			mouse, image, first_seen, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(namespace, id) DO UPDATE SET
			date       = excluded.date,
			location   = excluded.location,
			text       = excluded.text,
			types_json = excluded.types_json,
			mouse      = excluded.mouse,
			image      = excluded.image,
			updated_at = excluded.updated_at
		WHERE entries.text = ''
	`

	result, err := db.ExecContext(ctx, query,
		namespace, e.ID, e.Date, e.Location, e.Text, string(typesJSON),
		mouse, image, now, now,
	)
	if err != nil {
		return false, errors.NewInternal(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, errors.NewInternal(err)
	}

	return affected > 0, nil
}

// Count returns the number of entries in a namespace.
func Count(ctx context.Context, db *sql.DB, namespace string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM entries WHERE namespace = ?", namespace,
	).Scan(&count)
	if err != nil {
		return 0, errors.NewInternal(err)
	}
	return count, nil
}

// StatsRow summarizes a namespace for the stats operation.
type StatsRow struct {
	Count    int
	Detailed int
	MinID    int64
	MaxID    int64
}

// NamespaceStats returns entry counts and the observed id range.
func NamespaceStats(ctx context.Context, db *sql.DB, namespace string) (*StatsRow, error) {
	query := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE text != ''),
			COALESCE(MIN(id), 0),
			COALESCE(MAX(id), 0)
		FROM entries
		WHERE namespace = ?
	`

	var s StatsRow
	err := db.QueryRowContext(ctx, query, namespace).Scan(&s.Count, &s.Detailed, &s.MinID, &s.MaxID)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &s, nil
}

// DeleteAll removes every entry in a namespace and returns the number of
// rows deleted. Administrative use only; the capture path never deletes.
func DeleteAll(ctx context.Context, db *sql.DB, namespace string) (int64, error) {
	result, err := db.ExecContext(ctx, "DELETE FROM entries WHERE namespace = ?", namespace)
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, errors.NewInternal(err)
	}

	return deleted, nil
}

// rowScanner abstracts sql.Row and sql.Rows for scanEntry.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*journal.Entry, error) {
	var e journal.Entry
	var typesJSON string
	var mouse, image sql.NullString

	err := row.Scan(&e.ID, &e.Date, &e.Location, &e.Text, &typesJSON, &mouse, &image)
	if err != nil {
		return nil, err
	}

	if typesJSON != "" {
		if err := json.Unmarshal([]byte(typesJSON), &e.Types); err != nil {
			return nil, err
		}
	}
	if e.Types == nil {
		e.Types = []string{}
	}
	e.Mouse = mouse.String
	e.Image = image.String

	return &e, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
