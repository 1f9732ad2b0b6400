package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"pricescan/pkg/errors"
	"strings"
	"time"

	"go.etcd.io/bbolt"
)

type (
	// BoltStorage - BoltDB implementation of the Storage, one bucket per cache.
	// Caches are matched in bucket name order.
	BoltStorage struct {
		db *bbolt.DB
	}

	boltCache struct {
		db   *bbolt.DB
		name string
	}
)

func errCacheDeleted(name string) error {
	return fmt.Errorf("cache=%s was deleted", name)
}

func NewBoltStorage(path string) (*BoltStorage, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("cache storage path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("can't create directory for cache storage=%s: %w", cleanPath, err)
	}
	db, err := bbolt.Open(cleanPath, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("can't open cache storage=%s: %w", path, err)
	}
	return &BoltStorage{db: db}, nil
}

func (s *BoltStorage) Open(ctx context.Context, name string) (Cache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, fmt.Errorf("cache name is required")
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(name))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("can't open cache=%s: %w", name, err)
	}
	return &boltCache{db: s.db, name: name}, nil
}

func (s *BoltStorage) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var keys []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, _ *bbolt.Bucket) error {
			keys = append(keys, string(name))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("can't list caches: %w", err)
	}
	return keys, nil
}

func (s *BoltStorage) Delete(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	deleted := false
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket([]byte(name)) == nil {
			return nil
		}
		deleted = true
		return tx.DeleteBucket([]byte(name))
	})
	if err != nil {
		return false, fmt.Errorf("can't delete cache=%s: %w", name, err)
	}
	return deleted, nil
}

func (s *BoltStorage) Match(ctx context.Context, req *http.Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !cacheable(req) {
		return nil, errors.ErrCacheMiss
	}
	var found *Response
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.ForEach(func(name []byte, bucket *bbolt.Bucket) error {
			if found != nil {
				return nil
			}
			resp, err := matchBucket(bucket, req)
			if err != nil {
				return fmt.Errorf("cache=%s: %w", name, err)
			}
			found = resp
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("can't match request=%s: %w", requestKey(req), err)
	}
	if found == nil {
		return nil, errors.ErrCacheMiss
	}
	return found, nil
}

func (s *BoltStorage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (c *boltCache) Name() string {
	return c.name
}

func (c *boltCache) Match(ctx context.Context, req *http.Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !cacheable(req) {
		return nil, errors.ErrCacheMiss
	}
	var found *Response
	err := c.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(c.name))
		if bucket == nil {
			return nil
		}
		resp, err := matchBucket(bucket, req)
		found = resp
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("can't match request=%s in cache=%s: %w", requestKey(req), c.name, err)
	}
	if found == nil {
		return nil, errors.ErrCacheMiss
	}
	return found, nil
}

func (c *boltCache) PutAll(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkEntries(entries); err != nil {
		return err
	}
	payloads := make([][]byte, len(entries))
	for i, e := range entries {
		payload, err := json.Marshal(newRecord(e.Request, e.Response))
		if err != nil {
			return fmt.Errorf("can't encode response for url=%s: %w", requestKey(e.Request), err)
		}
		payloads[i] = payload
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(c.name))
		if bucket == nil {
			return errCacheDeleted(c.name)
		}
		for i, e := range entries {
			if err := bucket.Put([]byte(requestKey(e.Request)), payloads[i]); err != nil {
				return fmt.Errorf("can't store response for url=%s: %w", requestKey(e.Request), err)
			}
		}
		return nil
	})
}

// matchBucket - returns nil without error on a miss.
func matchBucket(bucket *bbolt.Bucket, req *http.Request) (*Response, error) {
	data := bucket.Get([]byte(requestKey(req)))
	if data == nil {
		return nil, nil
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("can't decode response for url=%s: %w", requestKey(req), err)
	}
	if rec.Response == nil || !rec.matches(req) {
		return nil, nil
	}
	return rec.Response, nil
}
