// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/migrations"
)

// Dialect names the SQL backend behind a [DB].
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// DialectFromDSN picks PostgreSQL for postgres:// URLs and key/value DSNs
// naming a host, SQLite for everything else.
func DialectFromDSN(dsn string) Dialect {
	switch {
	case strings.HasPrefix(dsn, "postgres://"),
		strings.HasPrefix(dsn, "postgresql://"),
		strings.Contains(dsn, "host="):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

// DB is a database handle that knows its dialect and how to classify the
// driver's errors.
type DB struct {
	*sql.DB
	dialect            Dialect
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewDB connects to the database named by cfg.DSN.
func NewDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch DialectFromDSN(cfg.DSN) {
	case DialectPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	default:
		return NewConnectSQLite(ctx, cfg, log)
	}
}

// Dialect returns the backend of db.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Migrate applies all pending migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, string(db.dialect))
}

// Reset rolls every migration back and applies them again, dropping all data.
func (db *DB) Reset() error {
	return migrations.Reset(db.DB, string(db.dialect))
}

// Ping checks that the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.PingContext(ctx); err != nil {
		return db.classify(err)
	}
	return nil
}

// sq returns a statement builder using the dialect's placeholder format.
func (db *DB) sq() squirrel.StatementBuilderType {
	if db.dialect == DialectPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

// classify maps driver errors onto the package's sentinel errors.
func (db *DB) classify(err error) error {
	if err == nil || db.errorClassificator == nil {
		return err
	}
	if db.errorClassificator.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %w", ErrAlreadyExists, err)
	}
	if db.errorClassificator.Classify(err) == Retryable {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return err
}
