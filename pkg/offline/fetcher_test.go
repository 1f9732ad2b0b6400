package offline

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginFetcher_Fetch(t *testing.T) {
	requests := make(chan *http.Request, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- r
		_, _ = io.WriteString(w, "ok")
	}))
	defer server.Close()

	f, err := NewOriginFetcher(server.Client(), server.URL+"/assets/")
	assert.NoError(t, err)

	req := getRequest(t, "/app.js?v=3")
	req.Header.Set("Accept", "text/javascript")
	resp, err := f.Fetch(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, "ok", readBody(t, resp))
	got := <-requests
	assert.Equal(t, "/assets/app.js", got.URL.Path)
	assert.Equal(t, "v=3", got.URL.RawQuery)
	assert.Equal(t, "text/javascript", got.Header.Get("Accept"))
}

func TestNewOriginFetcher_Relative(t *testing.T) {
	_, err := NewOriginFetcher(http.DefaultClient, "/assets")
	assert.Error(t, err)
}

func TestHandlerFetcher_Fetch(t *testing.T) {
	f := NewHandlerFetcher(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = io.WriteString(w, r.URL.Path)
	}))
	resp, err := f.Fetch(context.Background(), getRequest(t, "/manifest.json"))
	assert.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "/manifest.json", readBody(t, resp))
}
