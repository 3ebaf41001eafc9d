package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cmlabs-hris/hris-console-go/internal/pkg/database"
)

const sessionTable = "console_sessions"

// PostgresStorage keeps blobs in a single key/value table.
type PostgresStorage struct {
	db database.Querier
}

func NewPostgresStorage(db database.Querier) *PostgresStorage {
	return &PostgresStorage{db: db}
}

// EnsureSchema creates the blob table when it does not exist yet.
func (s *PostgresStorage) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS `+sessionTable+` (
			key        TEXT PRIMARY KEY,
			blob       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("failed to create %s table: %w", sessionTable, err)
	}
	return nil
}

func (s *PostgresStorage) Load(ctx context.Context, key string) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRow(ctx, `SELECT blob FROM `+sessionTable+` WHERE key = $1`, key).Scan(&blob)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load blob %s: %w", key, err)
	}
	return blob, nil
}

func (s *PostgresStorage) Save(ctx context.Context, key string, blob []byte) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO `+sessionTable+` (key, blob, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET blob = EXCLUDED.blob, updated_at = NOW()`,
		key, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save blob %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStorage) Delete(ctx context.Context, key string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM `+sessionTable+` WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}
