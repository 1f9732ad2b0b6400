package app

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"pricescan/pkg/config"
	"pricescan/pkg/offline"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testTerminalConfig(t *testing.T) *config.Terminal {
	return &config.Terminal{
		Ledger: config.Ledger{
			StorageKey: "prices",
			Storage: config.Storage{
				Type: "file",
				DSN:  filepath.Join(t.TempDir(), "local_storage.json"),
			},
		},
		Scanner: config.Scanner{
			Target:     "camera",
			FacingMode: "environment",
			Workers:    2,
			Readers:    config.DefaultReaders,
		},
		Importer: config.Importer{Workers: 2},
	}
}

func TestRunImport_RunList(t *testing.T) {
	cfg := testTerminalConfig(t)
	csv := filepath.Join(t.TempDir(), "prices.csv")
	assert.NoError(t, os.WriteFile(csv, []byte("012345678905,3.99\nbad line\n96385074,10\n"), 0o644))

	err := RunImport(context.Background(), cfg, []string{csv})
	assert.NoError(t, err)

	out := &bytes.Buffer{}
	err = RunList(context.Background(), cfg, out)
	assert.NoError(t, err)
	assert.Equal(t, "012345678905 — $3.99\n96385074 — $10.00\n", out.String())
}

func TestRunTerminal(t *testing.T) {
	cfg := testTerminalConfig(t)
	out := &bytes.Buffer{}

	err := RunTerminal(context.Background(), cfg, strings.NewReader("012345678905\n3.99\n"), out)
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "012345678905 — $3.99")

	listed := &bytes.Buffer{}
	assert.NoError(t, RunList(context.Background(), cfg, listed))
	assert.Equal(t, "012345678905 — $3.99\n", listed.String())
}

func TestNewWorker_EmbeddedAssets(t *testing.T) {
	worker, closer, err := newWorker(zap.NewNop(), config.Assets{
		Generation:   "pricescan-test",
		Manifest:     config.DefaultManifest,
		FetchTimeout: time.Second,
		Storage:      config.Storage{Type: "memory"},
	})
	assert.NoError(t, err)
	defer closer()

	assert.NoError(t, worker.Run(context.Background()))
	assert.Equal(t, offline.StateActivated, worker.State())

	w := httptest.NewRecorder()
	worker.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v0/prices")
}

func TestNewWorker_BadStorage(t *testing.T) {
	_, _, err := newWorker(zap.NewNop(), config.Assets{
		Generation: "pricescan-test",
		Manifest:   config.DefaultManifest,
		Storage:    config.Storage{Type: "redis"},
	})
	assert.Error(t, err)
}

func testServerConfig(manifest []string) *config.Server {
	return &config.Server{
		Port: 8080,
		Ledger: config.Ledger{
			StorageKey: "prices",
			Storage:    config.Storage{Type: "memory"},
		},
		Assets: config.Assets{
			Generation:   "pricescan-test",
			Manifest:     manifest,
			FetchTimeout: time.Second,
			Storage:      config.Storage{Type: "memory"},
		},
	}
}

func serveRouter(r http.Handler, method string, target string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestNewRouter_AssetsAndAPI(t *testing.T) {
	r, closer, err := newRouter(context.Background(), zap.NewNop(), testServerConfig(config.DefaultManifest))
	assert.NoError(t, err)
	defer closer()

	w := serveRouter(r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = serveRouter(r, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v0/prices")

	w = serveRouter(r, http.MethodGet, "/api/v0/prices", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	w = serveRouter(r, http.MethodPost, "/api/v0/prices", `{"code":"012345678905"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serveRouter(r, http.MethodPost, "/api/v0/prices", `{"code":"012345678905","price":"3.99"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serveRouter(r, http.MethodGet, "/api/v0/prices", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"012345678905"`)
}

func TestNewRouter_InstallFailureServesFromNetwork(t *testing.T) {
	manifest := append([]string{}, config.DefaultManifest...)
	manifest = append(manifest, "/missing.js")

	r, closer, err := newRouter(context.Background(), zap.NewNop(), testServerConfig(manifest))
	assert.NoError(t, err)
	defer closer()

	w := serveRouter(r, http.MethodGet, "/app.js", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v0/prices")

	w = serveRouter(r, http.MethodGet, "/missing.js", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serveRouter(r, http.MethodGet, "/api/v0/prices", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewRouter_BadLedgerStorage(t *testing.T) {
	cfg := testServerConfig(config.DefaultManifest)
	cfg.Ledger.Storage.Type = "redis"
	_, _, err := newRouter(context.Background(), zap.NewNop(), cfg)
	assert.Error(t, err)
}
