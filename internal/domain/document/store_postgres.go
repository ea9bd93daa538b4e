package document

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresBackend keeps the document as one JSONB row keyed by name.
type PostgresBackend struct {
	DB   *pgxpool.Pool
	name string
}

func NewPostgresBackend(db *pgxpool.Pool, name string) *PostgresBackend {
	return &PostgresBackend{DB: db, name: name}
}

func (b *PostgresBackend) Location() string {
	return "postgres:documents/" + b.name
}

func (b *PostgresBackend) Read(ctx context.Context, limit int64) ([]byte, error) {
	var size int64
	var body string
	err := b.DB.QueryRow(ctx, `
    SELECT octet_length(body::text), body::text
    FROM documents
    WHERE name = $1
  `, b.name).Scan(&size, &body)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if limit > 0 && size > limit {
		return nil, ErrTooLarge
	}
	return []byte(body), nil
}

// Write upserts the row in one statement, so a reader sees either the old
// or the new document.
func (b *PostgresBackend) Write(ctx context.Context, data []byte) error {
	_, err := b.DB.Exec(ctx, `
    INSERT INTO documents (name, body, updated_at)
    VALUES ($1, $2::jsonb, now())
    ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
  `, b.name, string(data))
	return err
}
