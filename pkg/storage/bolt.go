package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

const (
	boltBucket = "local_storage"
)

type (
	// Bolt - BoltDB implementation of the Storage, every item lives in one bucket.
	Bolt struct {
		db *bbolt.DB
	}
)

func NewBolt(path string) (*Bolt, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("can't create storage directory for bolt storage=%s: %w", cleanPath, err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("can't open bolt storage=%s: %w", path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(boltBucket))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("can't create bolt bucket=%s: %w", boltBucket, err)
	}
	return &Bolt{db: db}, nil
}

func (b *Bolt) GetItem(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	var (
		value string
		found bool
	)
	err := b.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		if bucket == nil {
			return fmt.Errorf("bucket=%s is missing", boltBucket)
		}
		data := bucket.Get([]byte(key))
		if data == nil {
			return nil
		}
		value, found = string(data), true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("can't get item=%s: %w", key, err)
	}
	return value, found, nil
}

func (b *Bolt) SetItem(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(boltBucket))
		if bucket == nil {
			return fmt.Errorf("bucket=%s is missing", boltBucket)
		}
		return bucket.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("can't set item=%s: %w", key, err)
	}
	return nil
}

func (b *Bolt) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
