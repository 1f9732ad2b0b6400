package migrations

import (
	"context"
	"path/filepath"
	"pricescan/pkg/config"
	"pricescan/pkg/storage"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateDB_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.sqlite")

	err := MigrateDB(storage.TypeSQLite, path)
	assert.NoError(t, err)

	// second run has nothing to apply
	err = MigrateDB(storage.TypeSQLite, path)
	assert.NoError(t, err)

	s, err := storage.NewSQLite(config.Storage{Type: storage.TypeSQLite, DSN: path})
	assert.NoError(t, err)
	defer s.Close()

	assert.NoError(t, s.SetItem(context.Background(), "prices", `{"1":1}`))
	value, found, err := s.GetItem(context.Background(), "prices")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"1":1}`, value)
}

func TestMigrateDB_UnknownType(t *testing.T) {
	err := MigrateDB("bolt", "ledger.db")
	assert.Error(t, err)
}
