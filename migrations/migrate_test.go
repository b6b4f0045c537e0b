// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the DB itself; no expectations means every call fails

	err = Migrate(db, "postgres")
	if err == nil {
		t.Fatal("expected error from Migrate, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	err := Migrate(db, "sqlite3")
	if err == nil {
		t.Fatal("expected error when db is nil, got nil")
	}

	if !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error, got: %v", err)
	}
}

func TestMigrate_UnknownDialect(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = Migrate(db, "oracle")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setting dialect")
}

func TestEmbeddedMigrations_SameVersionsPerDialect(t *testing.T) {
	pg, err := fs.Glob(embedMigrations, "postgres/*.sql")
	require.NoError(t, err)
	lite, err := fs.Glob(embedMigrations, "sqlite3/*.sql")
	require.NoError(t, err)

	require.NotEmpty(t, pg)
	require.Len(t, lite, len(pg))
	for i := range pg {
		assert.Equal(t, strings.TrimPrefix(pg[i], "postgres/"), strings.TrimPrefix(lite[i], "sqlite3/"))
	}
}

func TestMigrate_SQLiteUpAndReset(t *testing.T) {
	db, err := sql.Open("sqlite3", "file:migrate_test?mode=memory&cache=shared&_foreign_keys=on")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	require.NoError(t, Migrate(db, "sqlite3"))
	// applying twice is a no-op
	require.NoError(t, Migrate(db, "sqlite3"))

	_, err = db.Exec(`INSERT INTO users (username, email, password_hash) VALUES ('demo_user', 'demo@example.com', 'x')`)
	require.NoError(t, err)

	require.NoError(t, Reset(db, "sqlite3"))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	assert.Zero(t, n)
}
