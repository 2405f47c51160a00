package tokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/minhvng/recruitcli/internal/dbx"
)

// tokenKey is the fixed name the access token is stored under.
const tokenKey = "access_token"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, tokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get token: %w", err)
	}
	return value, nil
}

// Set replaces the stored token. The delete and insert run in one
// transaction so a crash in between cannot leave a half-written row.
func (r *SQLiteRepository) Set(ctx context.Context, token string) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, tokenKey); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO credentials (key, value) VALUES (?, ?)`, tokenKey, token)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, tokenKey)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
