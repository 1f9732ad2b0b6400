package offline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
)

type (
	// OriginFetcher - fetches requests from a remote origin over HTTP.
	OriginFetcher struct {
		client *http.Client
		origin *url.URL
	}

	// HandlerFetcher - fetches requests from an in-process http.Handler.
	HandlerFetcher struct {
		handler http.Handler
	}
)

func NewOriginFetcher(client *http.Client, origin string) (*OriginFetcher, error) {
	u, err := url.Parse(strings.TrimSuffix(origin, "/"))
	if err != nil {
		return nil, fmt.Errorf("can't parse origin=%s: %w", origin, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin=%s must be an absolute URL", origin)
	}
	return &OriginFetcher{client: client, origin: u}, nil
}

func (f *OriginFetcher) Fetch(ctx context.Context, req *http.Request) (*http.Response, error) {
	target := f.origin.JoinPath(req.URL.Path)
	target.RawQuery = req.URL.RawQuery
	out, err := http.NewRequestWithContext(ctx, req.Method, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("can't build request for url=%s: %w", target, err)
	}
	out.Header = req.Header.Clone()
	if req.Body != nil && req.Body != http.NoBody {
		out.Body = req.Body
		out.ContentLength = req.ContentLength
	}
	return f.client.Do(out)
}

func NewHandlerFetcher(handler http.Handler) *HandlerFetcher {
	return &HandlerFetcher{handler: handler}
}

func (f *HandlerFetcher) Fetch(ctx context.Context, req *http.Request) (*http.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	in := req.Clone(ctx)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, in)
	return rec.Result(), nil
}
