package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"pricescan/pkg/config"
	"pricescan/pkg/errors"
	"strings"

	"github.com/nullism/bqb"
	_ "modernc.org/sqlite" // DB driver
)

type (
	SQLite struct {
		db *sql.DB
	}
)

func NewSQLite(config config.Storage) (*SQLite, error) {
	if strings.TrimSpace(config.DSN) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	db, err := sql.Open("sqlite", filepath.Clean(config.DSN))
	if err != nil {
		return nil, fmt.Errorf("can't open sqlite storage: %w", err)
	}
	// sqlite serializes writers, one connection avoids SQLITE_BUSY between them
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("can't ping sqlite storage: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (r *SQLite) GetItem(ctx context.Context, key string) (string, bool, error) {
	q := bqb.New(
		`
			SELECT item_value FROM local_storage
			WHERE item_key = ?
		`,
		key,
	)
	query, args, err := q.ToSql()
	if err != nil {
		return "", false, fmt.Errorf("can't build get item query: %w", err)
	}

	var value string

	row := r.db.QueryRowContext(ctx, query, args...)
	err = row.Scan(&value)
	if err != nil {
		if errors.ErrorIs(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("can't execute get item query: %w", err)
	}

	return value, true, nil
}

func (r *SQLite) SetItem(ctx context.Context, key string, value string) error {
	q := bqb.New(
		`
			INSERT INTO local_storage (item_key, item_value) VALUES (?,?)
			ON CONFLICT (item_key) DO UPDATE SET
				item_value = excluded.item_value
		`,
		key, value,
	)
	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("can't build set item query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("can't execute set item query: %w", err)
	}

	return nil
}

func (r *SQLite) Close() error {
	return r.db.Close()
}
