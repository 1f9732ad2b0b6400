package migrations

import (
	"embed"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // DB driver
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"  // migrate option
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // migrate option
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql
var migrationsFS embed.FS

var (
	dbURLPrefixes = map[string]string{
		"mysql":  "mysql://",
		"sqlite": "sqlite://",
	}
)

func newMigration(storageType string, dsn string) (*migrate.Migrate, func(), error) {
	prefix, ok := dbURLPrefixes[storageType]
	if !ok {
		return nil, nil, fmt.Errorf("no migrations for storage type=%s", storageType)
	}

	migrationSource, err := iofs.New(migrationsFS, "sql/"+storageType)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	migration, err := migrate.NewWithSourceInstance("iofs", migrationSource, prefix+dsn)
	if err != nil {
		_ = migrationSource.Close()
		return nil, nil, err
	}

	closer := func() {
		_, _ = migration.Close()
	}
	return migration, closer, nil
}

// MigrateDB applies every pending migration for the storage type.
func MigrateDB(storageType string, dsn string) error {
	migration, closer, err := newMigration(storageType, dsn)
	if err != nil {
		return err
	}
	defer closer()

	err = migration.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}

// Migrate looks at the currently active migration version,
// then migrates either up or down to the specified version.
// Useful for testing migrations
func Migrate(storageType string, dsn string, version uint) error {
	migration, closer, err := newMigration(storageType, dsn)
	if err != nil {
		return err
	}
	defer closer()

	err = migration.Migrate(version)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
