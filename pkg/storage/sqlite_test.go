package storage

import (
	"path/filepath"
	"pricescan/pkg/config"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSQLite_RoundTrip(t *testing.T) {
	s, err := NewSQLite(config.Storage{Type: TypeSQLite, DSN: filepath.Join(t.TempDir(), "ledger.sqlite")})
	assert.NoError(t, err)
	defer s.Close()

	_, err = s.db.Exec(`CREATE TABLE local_storage (item_key TEXT PRIMARY KEY, item_value TEXT NOT NULL)`)
	assert.NoError(t, err)

	testStorageRoundTrip(t, s)
}

func TestSQLite_EmptyPath(t *testing.T) {
	_, err := NewSQLite(config.Storage{Type: TypeSQLite})
	assert.Error(t, err)
}
