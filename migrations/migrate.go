// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the goose migrations of every supported dialect.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite3/*.sql
var embedMigrations embed.FS

// goose keeps its dialect and base FS in package globals.
var gooseMu sync.Mutex

var errNilDB = errors.New("db is nil")

// Migrate applies every pending migration of dialect ("postgres" or
// "sqlite3").
func Migrate(db *sql.DB, dialect string) error {
	return run(db, dialect, goose.Up)
}

// Reset rolls back every applied migration and applies them again.
func Reset(db *sql.DB, dialect string) error {
	return run(db, dialect, func(db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if err := goose.Reset(db, dir, opts...); err != nil {
			return err
		}
		return goose.Up(db, dir, opts...)
	})
}

func run(db *sql.DB, dialect string, fn func(*sql.DB, string, ...goose.OptionsFunc) error) error {
	if db == nil {
		return fmt.Errorf("migration error: %w", errNilDB)
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(gooseDialect(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := fn(db, dialect); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

func gooseDialect(dialect string) string {
	if dialect == "postgres" {
		return "pgx"
	}
	return dialect
}
