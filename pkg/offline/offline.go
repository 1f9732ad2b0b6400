package offline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"pricescan/pkg/config"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	StorageMemory = "memory"
	StorageBolt   = "bolt"
)

type (
	// Response - stored copy of an asset response.
	Response struct {
		Status int         `json:"status"`
		Header http.Header `json:"header"`
		Body   []byte      `json:"body"`
	}

	// Entry - request/response pair put into a Cache.
	Entry struct {
		Request  *http.Request
		Response *Response
	}

	// Fetcher - the network, every request a cache can't answer goes here.
	Fetcher interface {
		Fetch(ctx context.Context, req *http.Request) (*http.Response, error)
	}

	// FetcherFunc - adapter to use an ordinary function as a Fetcher.
	FetcherFunc func(ctx context.Context, req *http.Request) (*http.Response, error)

	// Cache - one named generation of cached assets.
	Cache interface {
		Name() string
		// Match - returns the response stored for req or errors.ErrCacheMiss
		Match(ctx context.Context, req *http.Request) (*Response, error)
		// PutAll - stores every entry or none of them
		PutAll(ctx context.Context, entries []Entry) error
	}

	// Storage - set of named caches.
	Storage interface {
		// Open - returns the cache named name, creating it if absent
		Open(ctx context.Context, name string) (Cache, error)
		Keys(ctx context.Context) ([]string, error)
		// Delete - removes the cache named name, deleted is false when there was no such cache
		Delete(ctx context.Context, name string) (deleted bool, err error)
		// Match - looks req up in every cache, errors.ErrCacheMiss when none has it
		Match(ctx context.Context, req *http.Request) (*Response, error)
		Close() error
	}

	// record - what a cache keeps per request key.
	record struct {
		// Vary - request header values named by the response Vary header, taken at put time
		Vary     map[string]string `json:"vary"`
		Response *Response         `json:"response"`
	}
)

func (f FetcherFunc) Fetch(ctx context.Context, req *http.Request) (*http.Response, error) {
	return f(ctx, req)
}

func NewStorage(config config.Storage) (Storage, error) {
	switch config.Type {
	case StorageMemory:
		return NewMemoryStorage(), nil
	case StorageBolt:
		return NewBoltStorage(config.DSN)
	default:
		return nil, fmt.Errorf("can't create cache storage, unknown type=%s", config.Type)
	}
}

// NewResponse - reads resp fully into a Response and closes its body.
func NewResponse(resp *http.Response) (*Response, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("can't read response body: %w", err)
	}
	return &Response{
		Status: resp.StatusCode,
		Header: resp.Header.Clone(),
		Body:   body,
	}, nil
}

// HTTPResponse - builds a fresh *http.Response for req out of the stored copy.
func (r *Response) HTTPResponse(req *http.Request) *http.Response {
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", r.Status, http.StatusText(r.Status)),
		StatusCode:    r.Status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        r.Header.Clone(),
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}

func (r *Response) ok() bool {
	return r.Status >= 200 && r.Status < 300
}

// requestKey - identity of a request inside a cache: origin-relative path and query.
// Fragments never reach the key since RequestURI drops them.
func requestKey(req *http.Request) string {
	return req.URL.RequestURI()
}

// cacheable - only GET requests take part in matching.
func cacheable(req *http.Request) bool {
	return req.Method == http.MethodGet || req.Method == ""
}

func varyFields(header http.Header) []string {
	var fields []string
	for _, value := range header.Values("Vary") {
		for _, field := range strings.Split(value, ",") {
			field = strings.TrimSpace(field)
			if field != "" {
				fields = append(fields, field)
			}
		}
	}
	return fields
}

func newRecord(req *http.Request, resp *Response) record {
	rec := record{Response: resp}
	for _, field := range varyFields(resp.Header) {
		if field == "*" {
			continue
		}
		if rec.Vary == nil {
			rec.Vary = make(map[string]string)
		}
		rec.Vary[textproto.CanonicalMIMEHeaderKey(field)] = req.Header.Get(field)
	}
	return rec
}

func (rec record) matches(req *http.Request) bool {
	for _, field := range varyFields(rec.Response.Header) {
		if field == "*" {
			return false
		}
		if req.Header.Get(field) != rec.Vary[textproto.CanonicalMIMEHeaderKey(field)] {
			return false
		}
	}
	return true
}

// AddAll - fetches every path through fetcher and stores the responses in cache.
// Any transport error or non-2xx status fails the whole batch and nothing is stored.
func AddAll(ctx context.Context, cache Cache, fetcher Fetcher, paths []string) error {
	entries := make([]Entry, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			req, err := http.NewRequestWithContext(gctx, http.MethodGet, path, nil)
			if err != nil {
				return fmt.Errorf("can't build request for path=%s: %w", path, err)
			}
			resp, err := fetcher.Fetch(gctx, req)
			if err != nil {
				return fmt.Errorf("can't fetch path=%s: %w", path, err)
			}
			stored, err := NewResponse(resp)
			if err != nil {
				return fmt.Errorf("can't fetch path=%s: %w", path, err)
			}
			if !stored.ok() {
				return fmt.Errorf("can't fetch path=%s: bad status=%d", path, stored.Status)
			}
			entries[i] = Entry{Request: req, Response: stored}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return cache.PutAll(ctx, entries)
}

func checkEntries(entries []Entry) error {
	for _, e := range entries {
		if e.Request == nil || e.Response == nil {
			return fmt.Errorf("cache entry without request or response")
		}
		if !cacheable(e.Request) {
			return fmt.Errorf("can't cache method=%s for url=%s", e.Request.Method, e.Request.URL)
		}
	}
	return nil
}
