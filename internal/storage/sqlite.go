package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteKV stores records in a single SQLite table keyed by
// (namespace, id).
type SQLiteKV struct {
	db *sql.DB
}

func NewSQLiteKV(dbPath string) (*SQLiteKV, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := MigrateSQLite(dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY
	// when batch deletes run in parallel.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &SQLiteKV{db: db}, nil
}

func (s *SQLiteKV) Get(ctx context.Context, ns Namespace, id string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM records WHERE namespace = ? AND id = ?`, string(ns), id).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound(ns, id)
	}
	if err != nil {
		return nil, storageErr("get", ns, id, err)
	}
	return value, nil
}

func (s *SQLiteKV) Put(ctx context.Context, ns Namespace, id string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (namespace, id, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(namespace, id) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`,
		string(ns), id, value)
	if err != nil {
		return storageErr("put", ns, id, err)
	}
	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, ns Namespace, id string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM records WHERE namespace = ? AND id = ?`, string(ns), id); err != nil {
		return storageErr("delete", ns, id, err)
	}
	return nil
}

// Iterate reads the whole namespace before calling fn so the single
// connection is free for fn to use.
func (s *SQLiteKV) Iterate(ctx context.Context, ns Namespace, fn func(id string, value []byte) error) error {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, value FROM records WHERE namespace = ? ORDER BY id`, string(ns))
	if err != nil {
		return storageErr("iterate", ns, "", err)
	}

	type entry struct {
		id    string
		value []byte
	}
	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.id, &e.value); err != nil {
			rows.Close()
			return storageErr("iterate", ns, "", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return storageErr("iterate", ns, "", err)
	}
	rows.Close()

	for _, e := range entries {
		if err := fn(e.id, e.value); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteKV) Clear(ctx context.Context, ns Namespace) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE namespace = ?`, string(ns)); err != nil {
		return storageErr("clear", ns, "", err)
	}
	return nil
}

func (s *SQLiteKV) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
