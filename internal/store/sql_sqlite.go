// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
)

// NewConnectSQLite opens a SQLite database, creating the parent directory of
// file databases when needed.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	path, inMemory := sqliteFilePath(cfg.DSN)
	if !inMemory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database directory")
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite3", sqliteDSN(cfg.DSN, inMemory))
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	// SQLite admits one writer at a time, and every connection to an
	// in-memory database sees its own empty database
	conn.SetMaxOpenConns(1)
	if cfg.ConnMaxLifetime > 0 && !inMemory {
		conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	db := &DB{
		DB:                 conn,
		dialect:            DialectSQLite,
		logger:             log,
		errorClassificator: NewSQLiteErrorClassifier(),
	}

	// ping database
	if err = db.Ping(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to database successfully")

	return db, nil
}

// sqliteFilePath extracts the file path from a SQLite DSN such as
// "file:data/bioauth.db?_foreign_keys=on" and reports in-memory databases.
func sqliteFilePath(dsn string) (string, bool) {
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == ":memory:" || path == "" || strings.Contains(query, "mode=memory") {
		return path, true
	}
	return path, false
}

// sqliteFileParams are added to file DSNs that do not set them already.
// Writers from other processes wait for the lock instead of failing with
// SQLITE_BUSY, and transactions take the write lock on BEGIN.
var sqliteFileParams = []struct{ key, value string }{
	{"_busy_timeout", "5000"},
	{"_journal_mode", "WAL"},
	{"_synchronous", "NORMAL"},
	{"_txlock", "immediate"},
}

// sqliteDSN completes a file DSN with sqliteFileParams. In-memory DSNs are
// returned unchanged.
func sqliteDSN(dsn string, inMemory bool) string {
	if inMemory {
		return dsn
	}
	_, query, _ := strings.Cut(dsn, "?")
	for _, p := range sqliteFileParams {
		if strings.Contains(query, p.key+"=") {
			continue
		}
		if query == "" && !strings.Contains(dsn, "?") {
			dsn += "?"
		} else {
			dsn += "&"
		}
		dsn += p.key + "=" + p.value
		_, query, _ = strings.Cut(dsn, "?")
	}
	return dsn
}
