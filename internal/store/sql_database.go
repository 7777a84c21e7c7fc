package store

import (
	"database/sql"

	"github.com/fanyer/presto-sub061/internal/logger"
	"github.com/fanyer/presto-sub061/migrations"
)

type DB struct {
	*sql.DB
	logger *logger.Logger
}

func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}
