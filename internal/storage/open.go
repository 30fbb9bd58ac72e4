package storage

import (
	"context"
	"fmt"

	"github.com/zaqqye/evaluasi_backend/internal/config"
	"github.com/zaqqye/evaluasi_backend/internal/database"
)

// Open builds the blob store selected by cfg.StoreDriver. The returned
// closer releases any connection the driver holds.
func Open(ctx context.Context, cfg *config.Config) (BlobStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case "memory":
		return NewMemoryStore(), noop, nil
	case "", "file":
		s, err := NewFSStore(cfg.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("open file store: %w", err)
		}
		return s, noop, nil
	case "postgres":
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return nil, nil, fmt.Errorf("database migration failed: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return NewDBStore(db), sqlDB.Close, nil
	case "redis":
		s, err := NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDBIndex())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "s3":
		s, err := NewS3Store(S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			UseSSL:    cfg.S3SSL(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open s3 store: %w", err)
		}
		return s, noop, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver: %s", cfg.StoreDriver)
	}
}
