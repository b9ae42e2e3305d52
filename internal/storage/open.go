package storage

import (
	"context"
	"fmt"
	"log"

	"bouncecure/internal/config"
	"bouncecure/internal/domain"
	"bouncecure/internal/secret"
)

// Store is a TemplateStore that owns a connection.
type Store interface {
	domain.TemplateStore
	Close() error
}

// Open builds the Template Store selected by cfg. A dsn_secret is looked
// up in the macOS Keychain.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	return OpenWith(ctx, cfg, secret.NewKeychainStore())
}

// OpenWith is Open with an explicit secret store.
func OpenWith(ctx context.Context, cfg *config.Config, secrets secret.Store) (Store, error) {
	driver := cfg.Storage.Driver
	log.Printf("[STORE] Opening %s store", driver)
	switch driver {
	case config.DriverSQLite, "":
		return NewSQLite(cfg.StoragePath())
	case config.DriverPostgres, config.DriverMySQL, config.DriverMongoDB:
		dsn, err := resolveDSN(cfg.Storage, secrets)
		if err != nil {
			return nil, err
		}
		switch driver {
		case config.DriverPostgres:
			return NewPostgres(dsn)
		case config.DriverMySQL:
			return NewMySQL(dsn)
		}
		return NewMongo(ctx, dsn, cfg.Storage.Database, cfg.Storage.Collection)
	case config.DriverFile:
		return NewFileStore(cfg.StoragePath())
	case config.DriverMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unsupported storage driver: %s", driver)
}

// resolveDSN returns the configured DSN, falling back to the secret named
// by DSNSecret.
func resolveDSN(sc config.StorageConfig, secrets secret.Store) (string, error) {
	if sc.DSN != "" {
		return sc.DSN, nil
	}
	if sc.DSNSecret == "" || secrets == nil {
		return "", fmt.Errorf("storage driver %s requires a dsn", sc.Driver)
	}
	v, err := secrets.Get(sc.DSNSecret)
	if err != nil {
		return "", fmt.Errorf("resolve dsn secret: %w", err)
	}
	if len(v) == 0 {
		return "", fmt.Errorf("dsn secret %q not found", sc.DSNSecret)
	}
	return string(v), nil
}
