// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/models"
)

const (
	usersTable      = "users"
	codesTable      = "biometric_codes"
	authLogTable    = "authentication_log"
	recentLogsLimit = 10
)

var userColumns = []string{"user_id", "username", "email", "password_hash", "created_at", "last_login", "is_active"}

var logColumns = []string{"id", "user_id", "created_at", "method", "distance", "threshold", "verified", "trial_label"}

// ── users ────────────────────────────────────────────────────────────────────

func buildCreateUserQuery(sq squirrel.StatementBuilderType, user models.User) (string, []any, error) {
	return sq.Insert(usersTable).
		Columns("username", "email", "password_hash", "created_at", "is_active").
		Values(user.Username, user.Email, user.PasswordHash, user.CreatedAt, user.IsActive).
		Suffix("RETURNING user_id").
		ToSql()
}

func buildFindUserQuery(sq squirrel.StatementBuilderType, where squirrel.Eq) (string, []any, error) {
	return sq.Select(userColumns...).
		From(usersTable).
		Where(where).
		ToSql()
}

func buildUpdateLastLoginQuery(sq squirrel.StatementBuilderType, userID int64, at time.Time) (string, []any, error) {
	return sq.Update(usersTable).
		Set("last_login", at).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
}

func buildSetActiveQuery(sq squirrel.StatementBuilderType, userID int64, active bool) (string, []any, error) {
	return sq.Update(usersTable).
		Set("is_active", active).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
}

func buildCountUsersQuery(sq squirrel.StatementBuilderType) (string, []any, error) {
	return sq.Select("COUNT(*)", "COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0)").
		From(usersTable).
		ToSql()
}

// ── biometric codes ──────────────────────────────────────────────────────────

func buildInsertCodeQuery(sq squirrel.StatementBuilderType, code biometric.Code, blob []byte, at time.Time) (string, []any, error) {
	return sq.Insert(codesTable).
		Columns("user_id", "modality", "bit_length", "code", "created_at").
		Values(code.UserID(), code.Modality().String(), code.Len(), blob, at).
		ToSql()
}

func buildDeleteCodesQuery(sq squirrel.StatementBuilderType, userID int64) (string, []any, error) {
	return sq.Delete(codesTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
}

func buildSelectCodesQuery(sq squirrel.StatementBuilderType, userID int64) (string, []any, error) {
	return sq.Select("code").
		From(codesTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("modality").
		ToSql()
}

func buildSelectActiveEnrollmentsQuery(sq squirrel.StatementBuilderType) (string, []any, error) {
	return sq.Select("u.user_id", "u.username", "u.email", "u.created_at", "u.last_login", "u.is_active", "c.code").
		From(usersTable+" u").
		Join(codesTable+" c ON c.user_id = u.user_id").
		Where(squirrel.Eq{"u.is_active": true}).
		OrderBy("u.user_id", "c.modality").
		ToSql()
}

// ── authentication log ───────────────────────────────────────────────────────

func buildInsertLogQuery(sq squirrel.StatementBuilderType, entry models.LedgerEntry) (string, []any, error) {
	return sq.Insert(authLogTable).
		Columns("user_id", "created_at", "method", "distance", "threshold", "verified", "trial_label").
		Values(
			entry.UserID,
			entry.Timestamp,
			string(entry.Method),
			nullFloat(entry.Distance),
			nullFloat(entry.Threshold),
			entry.Verified,
			nullString(string(entry.TrialLabel)),
		).
		ToSql()
}

// buildSummaryQuery aggregates the whole log in one statement. The sum of
// squared distances lets the caller derive the sample standard deviation.
func buildSummaryQuery(sq squirrel.StatementBuilderType) (string, []any, error) {
	return sq.Select(
		"COUNT(*)",
		"COALESCE(SUM(CASE WHEN verified THEN 1 ELSE 0 END), 0)",
		"COUNT(distance)",
		"COALESCE(AVG(distance), 0)",
		"COALESCE(MIN(distance), 0)",
		"COALESCE(MAX(distance), 0)",
		"COALESCE(SUM(distance * distance), 0)",
	).
		From(authLogTable).
		ToSql()
}

func buildLabeledTrialsQuery(sq squirrel.StatementBuilderType) (string, []any, error) {
	return sq.Select("distance", "verified", "trial_label").
		From(authLogTable).
		Where(squirrel.And{
			squirrel.NotEq{"trial_label": nil},
			squirrel.NotEq{"distance": nil},
		}).
		ToSql()
}

func buildUserAttemptsQuery(sq squirrel.StatementBuilderType, userID int64) (string, []any, error) {
	return sq.Select("verified", "distance").
		From(authLogTable).
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
}

func buildRecentLogsQuery(sq squirrel.StatementBuilderType, userID int64, limit uint64) (string, []any, error) {
	return sq.Select(logColumns...).
		From(authLogTable).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
