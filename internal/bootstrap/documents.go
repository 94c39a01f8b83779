// Package bootstrap assembles the document service from configuration. It is
// shared by the HTTP server and the docadmin CLI.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"

	"campusapi/internal/config"
	"campusapi/internal/service"
	"campusapi/internal/storage"
	"campusapi/internal/vectorstore"
	"campusapi/internal/vectorstore/chromem"
	"campusapi/internal/vectorstore/pgvector"
)

// ChunkStore opens the configured vector store backend. The pgvector backend
// reuses db and creates its table when missing.
func ChunkStore(ctx context.Context, cfg *config.AppConfig, db *sql.DB) (vectorstore.ChunkStore, error) {
	switch cfg.Vector.Backend {
	case config.VectorBackendChromem:
		return chromem.NewPersistentStore(cfg.Vector)
	case config.VectorBackendPGVector:
		if db == nil {
			return nil, fmt.Errorf("pgvector backend requires a database connection")
		}
		store := pgvector.NewStore(db, cfg.Vector.Dimensions, cfg.LogLevel == "debug")
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported vector backend: %q", cfg.Vector.Backend)
	}
}

// DocumentService wires the chunk store, optional snapshot storage and the
// logging decorator.
func DocumentService(ctx context.Context, cfg *config.AppConfig, db *sql.DB, log *zap.Logger) (service.DocumentService, error) {
	store, err := ChunkStore(ctx, cfg, db)
	if err != nil {
		return nil, fmt.Errorf("open vector store: %w", err)
	}

	var objects storage.Storage
	if cfg.MinIO.Enabled() {
		objects, err = storage.NewMinIO(ctx, cfg.MinIO)
		if err != nil {
			return nil, fmt.Errorf("initialize object storage: %w", err)
		}
	} else {
		log.Info("snapshot storage disabled", zap.String("component", "storage"))
	}

	svc := service.NewDocumentService(store, objects, service.DocumentServiceConfig{
		Collection:     cfg.Vector.Collection,
		EmbeddingModel: cfg.Vector.EmbeddingModel,
		URLExpiry:      time.Duration(cfg.MinIO.URLExpirySec) * time.Second,
	})
	return service.DocumentLoggingMiddleware(log)(svc), nil
}
