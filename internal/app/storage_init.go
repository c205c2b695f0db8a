package app

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/avoronkov/hotel-booking/internal/storage/postgres"
)

// openStore открывает PostgreSQL и применяет миграции.
// Пустой DSN означает in-memory хранилище: возвращается nil без ошибки.
func openStore(ctx context.Context, dsn string, logger *log.Entry) (*postgres.Store, error) {
	if dsn == "" {
		logger.Info("postgres DSN не задан, используем in-memory хранилище")
		return nil, nil
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	logger.Info("postgres хранилище инициализировано, миграции применены")
	return store, nil
}

// closeStore закрывает подключение, если хранилище было открыто.
func closeStore(store *postgres.Store, logger *log.Entry) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.WithError(err).Warn("failed to close postgres store")
	}
}
