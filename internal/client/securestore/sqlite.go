package securestore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mmadmin/internal/client/securestore/migrations"
	"github.com/dmitrijs2005/mmadmin/internal/cryptox"
	"github.com/dmitrijs2005/mmadmin/internal/dbx"
	"github.com/pressly/goose/v3"
)

// SQLiteStore keeps secrets in a local SQLite table, encrypting every value
// with AES-GCM before it is written.
type SQLiteStore struct {
	db     dbx.DBTX
	sqlDB  *sql.DB // owned handle when constructed via Open, nil otherwise
	sealed []byte  // derived AES key
}

// NewSQLiteStore wraps an existing DB handle. The caller is responsible for
// the schema (see migrations) and for closing the handle.
func NewSQLiteStore(db dbx.DBTX, key []byte) *SQLiteStore {
	return &SQLiteStore{db: db, sealed: key}
}

// Open opens (creating if needed) the secure store database at dsn, runs
// migrations, and loads the encryption key from keyPath (generating a fresh
// one on first use). Close releases the handle.
func Open(ctx context.Context, dsn string, keyPath string) (*SQLiteStore, error) {
	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load store key: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := NewSQLiteStore(db, key)
	s.sqlDB = db
	return s, nil
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}

	return goose.UpContext(ctx, db, ".")
}

func (s *SQLiteStore) Close() error {
	if s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, error) {
	var sealed []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM secrets WHERE key = ?`, key).Scan(&sealed)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get secret[%s]: %w", key, err)
	}

	plain, err := cryptox.Decrypt(sealed, s.sealed)
	if err != nil {
		return "", fmt.Errorf("failed to unseal secret[%s]: %w", key, err)
	}
	return string(plain), nil
}

func (s *SQLiteStore) Set(ctx context.Context, key string, value string) error {
	sealed, err := cryptox.Encrypt([]byte(value), s.sealed)
	if err != nil {
		return fmt.Errorf("failed to seal secret[%s]: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO secrets (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, sealed)
	if err != nil {
		return fmt.Errorf("failed to set secret[%s]: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM secrets WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete secret[%s]: %w", key, err)
	}
	return nil
}
