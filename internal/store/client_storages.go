package store

import (
	"context"
	"fmt"

	"github.com/fanyer/presto-sub061/internal/config"
	"github.com/fanyer/presto-sub061/internal/logger"
)

// ClientStorages groups the client-side storage used by the sync engine.
type ClientStorages struct {
	// SyncState is the SQLite-backed cursor and preference store.
	SyncState SyncStateRepository

	// Queue is nil when the queue is kept in memory only.
	Queue *FileQueueStore

	db *DB
}

// NewClientStorages opens the sync state database, runs pending migrations
// and prepares the queue files location.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages := &ClientStorages{
		SyncState: NewSyncStateRepository(db, logger),
		db:        db,
	}

	if cfg.QueueDir != "" {
		storages.Queue, err = NewFileQueueStore(cfg.QueueDir, logger)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	return storages, nil
}

// Close releases the database connection.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
