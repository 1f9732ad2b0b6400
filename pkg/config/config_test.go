package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func writeConfig(t *testing.T, name string, content string) string {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(content), 0o644)
	assert.NoError(t, err)
	return dir
}

func TestServer_LoadConfig(t *testing.T) {
	dir := writeConfig(t, "server_app", `
PORT: 9090
LEDGER:
  STORAGE_KEY: ledger
  STORAGE:
    TYPE: bolt
    DSN: /tmp/ledger.db
ASSETS:
  GENERATION: pricescan-v7
  FETCH_TIMEOUT: 3s
  MANIFEST:
    - /
    - /app.js
`)

	cfg := &Server{}
	cfg, err := cfg.LoadConfig(dir, "server_app")
	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "ledger", cfg.Ledger.StorageKey)
	assert.Equal(t, "bolt", cfg.Ledger.Storage.Type)
	assert.Equal(t, "/tmp/ledger.db", cfg.Ledger.Storage.DSN)
	assert.Equal(t, "pricescan-v7", cfg.Assets.Generation)
	assert.Equal(t, 3*time.Second, cfg.Assets.FetchTimeout)
	assert.Equal(t, []string{"/", "/app.js"}, cfg.Assets.Manifest)
	assert.Equal(t, "memory", cfg.Assets.Storage.Type)
}

func TestServer_LoadConfig_Defaults(t *testing.T) {
	dir := writeConfig(t, "server_app", "PORT: 8081\n")

	cfg := &Server{}
	cfg, err := cfg.LoadConfig(dir, "server_app")
	assert.NoError(t, err)
	assert.Equal(t, "prices", cfg.Ledger.StorageKey)
	assert.Equal(t, "pricescan-v1", cfg.Assets.Generation)
	assert.Equal(t, DefaultManifest, cfg.Assets.Manifest)
	assert.Len(t, cfg.Assets.Manifest, 7)
}

func TestServer_LoadConfig_EnvOverride(t *testing.T) {
	dir := writeConfig(t, "server_app", "PORT: 8081\n")
	t.Setenv("LEDGER_STORAGE_KEY", "from_env")
	t.Setenv("ASSETS_GENERATION", "pricescan-env")

	cfg := &Server{}
	cfg, err := cfg.LoadConfig(dir, "server_app")
	assert.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Ledger.StorageKey)
	assert.Equal(t, "pricescan-env", cfg.Assets.Generation)
}

func TestServer_LoadConfig_Missing(t *testing.T) {
	cfg := &Server{}
	_, err := cfg.LoadConfig(t.TempDir(), "server_app")
	assert.Error(t, err)
}

func TestServer_LoadConfig_Invalid(t *testing.T) {
	dir := writeConfig(t, "server_app", `
PORT: 8081
ASSETS:
  MANIFEST:
    - app.js
`)

	cfg := &Server{}
	_, err := cfg.LoadConfig(dir, "server_app")
	assert.Error(t, err)
}

func TestTerminal_LoadConfig(t *testing.T) {
	dir := writeConfig(t, "terminal_app", `
SCANNER:
  FACING_MODE: user
  WORKERS: 4
  READERS:
    - ean_13
`)

	cfg := &Terminal{}
	cfg, err := cfg.LoadConfig(dir, "terminal_app")
	assert.NoError(t, err)
	assert.Equal(t, "user", cfg.Scanner.FacingMode)
	assert.Equal(t, 4, cfg.Scanner.Workers)
	assert.Equal(t, []string{"ean_13"}, cfg.Scanner.Readers)
	assert.Equal(t, "camera", cfg.Scanner.Target)
	assert.Equal(t, "prices", cfg.Ledger.StorageKey)
	assert.Equal(t, 2, cfg.Importer.Workers)
}

func TestTerminal_LoadConfig_InvalidImporter(t *testing.T) {
	dir := writeConfig(t, "terminal_app", `
IMPORTER:
  WORKERS: 0
`)

	cfg := &Terminal{}
	_, err := cfg.LoadConfig(dir, "terminal_app")
	assert.Error(t, err)
}

func TestLedger_Validate(t *testing.T) {
	assert.Error(t, Ledger{StorageKey: " ", Storage: Storage{Type: "memory"}}.Validate())
	assert.Error(t, Ledger{StorageKey: "prices"}.Validate())
	assert.NoError(t, Ledger{StorageKey: "prices", Storage: Storage{Type: "memory"}}.Validate())
}
