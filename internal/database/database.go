package database

import (
	"context"
	"fmt"

	"github.com/bloops-games/fishbowl/internal/logging"
	bolt "go.etcd.io/bbolt"
)

type DB struct {
	DB *bolt.DB
}

func NewFromEnv(ctx context.Context, config *Config) (*DB, error) {
	logger := logging.FromContext(ctx).Named("database.NewFromEnv")
	logger.Infof("opening results archive %s", config.FilePath)

	db, err := bolt.Open(config.FilePath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", config.FilePath, err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx).Named("database.Close")
	logger.Infof("closing results archive")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}
