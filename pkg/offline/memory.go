package offline

import (
	"context"
	"net/http"
	"pricescan/pkg/errors"
	"sync"
)

type (
	// MemoryStorage - in memory implementation of the Storage.
	// Caches are matched in the order they were opened.
	MemoryStorage struct {
		mu     sync.RWMutex
		names  []string
		caches map[string]*memoryCache
	}

	memoryCache struct {
		mu      sync.RWMutex
		name    string
		deleted bool
		// request key -> record
		records map[string]record
	}
)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		caches: make(map[string]*memoryCache),
	}
}

func (s *MemoryStorage) Open(ctx context.Context, name string) (Cache, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.caches[name]; ok {
		return c, nil
	}
	c := &memoryCache{
		name:    name,
		records: make(map[string]record),
	}
	s.caches[name] = c
	s.names = append(s.names, name)
	return c, nil
}

func (s *MemoryStorage) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, len(s.names))
	copy(keys, s.names)
	return keys, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[name]
	if !ok {
		return false, nil
	}
	c.mu.Lock()
	c.deleted = true
	c.mu.Unlock()
	delete(s.caches, name)
	for i, n := range s.names {
		if n == name {
			s.names = append(s.names[:i], s.names[i+1:]...)
			break
		}
	}
	return true, nil
}

func (s *MemoryStorage) Match(ctx context.Context, req *http.Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	caches := make([]*memoryCache, 0, len(s.names))
	for _, name := range s.names {
		caches = append(caches, s.caches[name])
	}
	s.mu.RUnlock()
	for _, c := range caches {
		resp, err := c.Match(ctx, req)
		if err == nil {
			return resp, nil
		}
		if !errors.ErrorIs(err, errors.ErrCacheMiss) {
			return nil, err
		}
	}
	return nil, errors.ErrCacheMiss
}

func (s *MemoryStorage) Close() error {
	return nil
}

func (c *memoryCache) Name() string {
	return c.name
}

func (c *memoryCache) Match(ctx context.Context, req *http.Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !cacheable(req) {
		return nil, errors.ErrCacheMiss
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.records[requestKey(req)]
	if !ok || !rec.matches(req) {
		return nil, errors.ErrCacheMiss
	}
	return rec.Response, nil
}

func (c *memoryCache) PutAll(ctx context.Context, entries []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkEntries(entries); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.deleted {
		return errCacheDeleted(c.name)
	}
	for _, e := range entries {
		c.records[requestKey(e.Request)] = newRecord(e.Request, e.Response)
	}
	return nil
}
