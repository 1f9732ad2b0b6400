package storage

import (
	"context"
	"database/sql"
	"fmt"
	"pricescan/pkg/config"
	"pricescan/pkg/errors"
	"time"

	_ "github.com/go-sql-driver/mysql" // DB driver
	"github.com/nullism/bqb"
)

type (
	MySQL struct {
		db     *sql.DB
		config config.Storage
	}
)

func NewMySQL(config config.Storage) (*MySQL, error) {
	db, err := sql.Open(config.Type, config.DSN)
	if err != nil {
		return nil, fmt.Errorf("can't establish connection to the data storage: %w", err)
	}
	db.SetMaxOpenConns(config.MaxConnections)
	db.SetMaxIdleConns(config.MaxConnections)

	return newMySQL(db, config)
}

// newMySQL - checks the connection, db is closed when it can't be reached.
func newMySQL(db *sql.DB, config config.Storage) (*MySQL, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := db.PingContext(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("can't ping data storage: %w", err)
	}

	return &MySQL{
		db:     db,
		config: config,
	}, nil
}

func (r *MySQL) GetItem(ctx context.Context, key string) (string, bool, error) {
	q := bqb.New(
		`
			SELECT item_value FROM local_storage
			WHERE item_key = ?
		`,
		key,
	)
	query, args, err := q.ToMysql()
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

func (r *MySQL) SetItem(ctx context.Context, key string, value string) error {
	q := bqb.New(
		`
			INSERT INTO local_storage (item_key, item_value) VALUES (?,?)
			ON DUPLICATE KEY UPDATE
				item_value = VALUES(item_value)
		`,
		key, value,
	)
	query, args, err := q.ToMysql()
	if err != nil {
		return fmt.Errorf("can't build set item query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("can't execute set item query: %w", err)
	}

	return nil
}

func (r *MySQL) Close() error {
	return r.db.Close()
}
