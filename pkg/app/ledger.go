package app

import (
	"pricescan/pkg/config"
	"pricescan/pkg/ledger"
	"pricescan/pkg/migrations"
	"pricescan/pkg/storage"

	"go.uber.org/zap"
)

// openLedger - prepares the ledger storage, running migrations first for SQL backends.
// The returned closer releases the storage.
func openLedger(logger *zap.Logger, config config.Ledger) (ledger.Ledger, func(), error) {
	if storage.IsSQL(config.Storage.Type) {
		logger.Sugar().Info("run migrations")
		err := migrations.MigrateDB(config.Storage.Type, config.Storage.DSN)
		if err != nil {
			logger.Sugar().Errorf("unable to run migrations: (%s)", err.Error())
			return nil, nil, err
		}
	}

	logger.Sugar().Infof("init ledger storage=%s", config.Storage.Type)
	store, err := storage.NewStorage(config.Storage)
	if err != nil {
		logger.Sugar().Errorf("unable to init ledger storage=%s: (%s)", config.Storage.Type, err.Error())
		return nil, nil, err
	}

	closer := func() {
		if err := store.Close(); err != nil {
			logger.Sugar().Errorf("can't close ledger storage=%s: (%s)", config.Storage.Type, err.Error())
		}
	}
	return ledger.NewLedger(logger, store, config), closer, nil
}
