//go:generate mockgen -source storage.go -destination storage_mock.go -package storage Storage

package storage

import (
	"context"
	"fmt"
	"pricescan/pkg/config"
)

const (
	TypeMemory = "memory"
	TypeFile   = "file"
	TypeBolt   = "bolt"
	TypeMySQL  = "mysql"
	TypeSQLite = "sqlite"
)

type (
	// Storage - origin-scoped key-value storage. Every value is an opaque string,
	// callers own serialization of whatever they keep under a key.
	Storage interface {
		// GetItem - returns the value stored under key, found is false when the key was never set
		GetItem(ctx context.Context, key string) (value string, found bool, err error)
		// SetItem - stores value under key replacing any previous value
		SetItem(ctx context.Context, key string, value string) error
		Close() error
	}
)

func NewStorage(config config.Storage) (Storage, error) {
	switch config.Type {
	case TypeMemory:
		return NewMemory(), nil
	case TypeFile:
		return NewFile(config.DSN)
	case TypeBolt:
		return NewBolt(config.DSN)
	case TypeMySQL:
		return NewMySQL(config)
	case TypeSQLite:
		return NewSQLite(config)
	default:
		return nil, fmt.Errorf("can't create storage, unknown type=%s", config.Type)
	}
}

// IsSQL - reports whether the storage type needs schema migrations.
func IsSQL(storageType string) bool {
	return storageType == TypeMySQL || storageType == TypeSQLite
}
