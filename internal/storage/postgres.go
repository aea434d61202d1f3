package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresKV stores records as JSONB rows.
type PostgresKV struct {
	pool *pgxpool.Pool
}

// NewPostgresKV migrates the database at url and connects to it.
func NewPostgresKV(ctx context.Context, url string) (*PostgresKV, error) {
	if err := MigratePostgres(url); err != nil {
		return nil, err
	}
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &PostgresKV{pool: pool}, nil
}

func (p *PostgresKV) Get(ctx context.Context, ns Namespace, id string) ([]byte, error) {
	var value []byte
	err := p.pool.QueryRow(ctx,
		`SELECT value FROM records WHERE namespace = $1 AND id = $2`, string(ns), id).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound(ns, id)
	}
	if err != nil {
		return nil, storageErr("get", ns, id, err)
	}
	return value, nil
}

func (p *PostgresKV) Put(ctx context.Context, ns Namespace, id string, value []byte) error {
	_, err := p.pool.Exec(ctx, `
		INSERT INTO records (namespace, id, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, id) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = now()`,
		string(ns), id, value)
	if err != nil {
		return storageErr("put", ns, id, err)
	}
	return nil
}

func (p *PostgresKV) Delete(ctx context.Context, ns Namespace, id string) error {
	if _, err := p.pool.Exec(ctx,
		`DELETE FROM records WHERE namespace = $1 AND id = $2`, string(ns), id); err != nil {
		return storageErr("delete", ns, id, err)
	}
	return nil
}

func (p *PostgresKV) Iterate(ctx context.Context, ns Namespace, fn func(id string, value []byte) error) error {
	rows, err := p.pool.Query(ctx,
		`SELECT id, value FROM records WHERE namespace = $1 ORDER BY id`, string(ns))
	if err != nil {
		return storageErr("iterate", ns, "", err)
	}
	type entry struct {
		id    string
		value []byte
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entry, error) {
		var e entry
		err := row.Scan(&e.id, &e.value)
		return e, err
	})
	if err != nil {
		return storageErr("iterate", ns, "", err)
	}
	for _, e := range entries {
		if err := fn(e.id, e.value); err != nil {
			return err
		}
	}
	return nil
}

func (p *PostgresKV) Clear(ctx context.Context, ns Namespace) error {
	if _, err := p.pool.Exec(ctx, `DELETE FROM records WHERE namespace = $1`, string(ns)); err != nil {
		return storageErr("clear", ns, "", err)
	}
	return nil
}

func (p *PostgresKV) Close() error {
	p.pool.Close()
	return nil
}
