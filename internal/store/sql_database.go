// Package store implements the persistence layer of the immunization
// registry: a thin database wrapper plus typed repositories for accounts,
// users, immunization records, and the audit trail.
//
// Two backends are supported, selected by the DSN scheme: PostgreSQL via
// the pgx stdlib driver for server deployments, and SQLite for local and
// demo deployments.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avelichko/immun-registry/internal/config"
	"github.com/avelichko/immun-registry/internal/logger"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	sqlite3 "github.com/mattn/go-sqlite3"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx database/sql driver
)

// DB wraps *sql.DB together with the driver identity needed for dialect
// dependent behavior (migrations, error classification).
type DB struct {
	*sql.DB
	dialect string
	logger  *logger.Logger
}

// NewConnect opens a database connection for the configured DSN and verifies
// it with a ping. A "postgres://" or "postgresql://" DSN selects the pgx
// driver; any other value is treated as a SQLite file path.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	driverName, dialect := driverForDSN(cfg.DSN)

	conn, err := sql.Open(driverName, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	// setup connections
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnect").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnect").Str("dialect", dialect).Msg("connected to database successfully")

	db := &DB{
		DB:      conn,
		dialect: dialect,
		logger:  log,
	}

	return db, nil
}

// Dialect returns the goose dialect name matching the active driver
// ("pgx" or "sqlite3").
func (db *DB) Dialect() string {
	return db.dialect
}

func driverForDSN(dsn string) (driverName, dialect string) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return "pgx", "pgx"
	}
	return "sqlite3", "sqlite3"
}

// uniqueViolation reports whether err is a unique-constraint violation in
// either supported backend.
func uniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	return false
}
