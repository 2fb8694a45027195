package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/haf-search-api/internal/config"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
)

// DB wraps the pooled connection to the HAF SQL node
type DB struct {
	*sql.DB
	log zerolog.Logger
}

// New creates the connection pool to the HAF SQL node. The pool is the only
// shared mutable resource in the server; it is owned by the composition root
// and injected into the executor.
func New(cfg *config.DatabaseConfig, log zerolog.Logger) (*DB, error) {
	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	wrapper := &DB{
		DB:  db,
		log: log.With().Str("component", "database").Logger(),
	}

	// Probe connectivity on startup. The public node can be flaky, so a
	// failed probe is a warning, not a fatal error: the pool reconnects on
	// the first real query.
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	if err := wrapper.Probe(ctx); err != nil {
		wrapper.log.Warn().
			Err(err).
			Str("host", cfg.Host).
			Msg("HAF SQL node unreachable at startup, will retry on first query")
	} else {
		wrapper.log.Info().
			Str("host", cfg.Host).
			Str("database", cfg.Name).
			Int("max_open_conns", cfg.MaxOpenConns).
			Msg("Connected to HAF SQL node")
	}

	return wrapper, nil
}

// Probe runs a trivial statement to verify the node answers queries, not
// just TCP pings.
func (db *DB) Probe(ctx context.Context) error {
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("probe query failed: %w", err)
	}
	return nil
}

// RunMigrations applies the local mirror schema using golang-migrate.
// Only used against a private Postgres standing in for the HAF node
// (development, integration tests); the public node rejects DDL.
func (db *DB) RunMigrations(migrationsPath string) error {
	db.log.Info().Str("path", migrationsPath).Msg("Running local mirror migrations")

	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	db.log.Info().
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Migrations completed")

	return nil
}

// HealthCheck verifies the database connection is healthy
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

// Stats returns connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}
