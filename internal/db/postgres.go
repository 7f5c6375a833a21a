package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	DSN      string `yaml:"dsn"`
	MaxConns int32  `yaml:"max_conns"`
	MinConns int32  `yaml:"min_conns"`
}

var ErrMissingDSN = errors.New("postgres dsn not set")

// ConnectPostgres opens the pool, pings it and makes sure the schema exists.
func ConnectPostgres(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	if cfg.DSN == "" {
		return nil, ErrMissingDSN
	}

	config, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	if cfg.MaxConns > 0 {
		config.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		config.MinConns = cfg.MinConns
	}
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Info("connected to postgres")

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	// -------------------------------
	// SESSION SNAPSHOTS + ORDERS
	// -------------------------------
	snapshotsSQL := `
		CREATE TABLE IF NOT EXISTS storefront_snapshots (
			key TEXT PRIMARY KEY,
			value JSONB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`
	if _, err := db.Exec(ctx, snapshotsSQL); err != nil {
		return err
	}

	updatedIndexSQL := `
		CREATE INDEX IF NOT EXISTS storefront_snapshots_updated_at_idx
		ON storefront_snapshots (updated_at)
	`
	if _, err := db.Exec(ctx, updatedIndexSQL); err != nil {
		return err
	}

	log.Info("schema initialized")
	return nil
}
