// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/ledger"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/models"
)

// authLogRepository is the "authentication_log" backed [ledger.Ledger].
// Entries are only ever inserted.
type authLogRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewAuthLogRepository(db *DB, logger *logger.Logger) AuthLogRepository {
	logger.Debug().Msg("creating authentication log repository")
	return &authLogRepository{
		db:     db,
		logger: logger,
	}
}

// Record appends entry. A zero Timestamp is replaced with the current time.
func (r *authLogRepository) Record(ctx context.Context, entry models.LedgerEntry) error {
	log := logger.FromContext(ctx)

	if err := ledger.Validate(entry); err != nil {
		return err
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	entry.Timestamp = entry.Timestamp.UTC()

	query, args, err := buildInsertLogQuery(r.db.sq(), entry)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*authLogRepository.Record").
			Int64("user_id", entry.UserID).
			Str("method", string(entry.Method)).
			Msg("error recording attempt")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	return nil
}

// Summary aggregates the log and derives measured error rates from labeled
// trials. Both statements run in one snapshot so the measured rates cover
// exactly the counted entries. User counts are left at zero.
func (r *authLogRepository) Summary(ctx context.Context) (models.SystemStatistics, error) {
	var stats models.SystemStatistics
	err := r.db.WithSnapshot(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		if stats, err = r.aggregate(ctx, tx); err != nil {
			return err
		}
		stats.Measured, err = r.measure(ctx, tx)
		return err
	})
	if err != nil {
		return models.SystemStatistics{}, err
	}
	return stats, nil
}

func (r *authLogRepository) aggregate(ctx context.Context, q DBTX) (models.SystemStatistics, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSummaryQuery(r.db.sq())
	if err != nil {
		return models.SystemStatistics{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		stats models.SystemStatistics
		d     models.DistanceSummary
		sumSq float64
	)
	err = q.QueryRowContext(ctx, query, args...).Scan(
		&stats.TotalAuthentications,
		&stats.SuccessfulAuthentications,
		&d.Count, &d.Mean, &d.Min, &d.Max, &sumSq,
	)
	if err != nil {
		log.Err(err).Str("func", "*authLogRepository.aggregate").Msg("error aggregating log")
		return models.SystemStatistics{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}
	if d.Count > 1 {
		variance := (sumSq - float64(d.Count)*d.Mean*d.Mean) / float64(d.Count-1)
		d.StdDev = math.Sqrt(math.Max(variance, 0))
	}

	stats.FailedAuthentications = stats.TotalAuthentications - stats.SuccessfulAuthentications
	stats.SuccessRate = ledger.SuccessRate(stats.SuccessfulAuthentications, stats.TotalAuthentications)
	stats.Distance = d
	stats.Estimated = ledger.EstimateErrorRates(stats.SuccessfulAuthentications, stats.TotalAuthentications)

	return stats, nil
}

func (r *authLogRepository) measure(ctx context.Context, q DBTX) (*models.MeasuredRates, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildLabeledTrialsQuery(r.db.sq())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*authLogRepository.measure").Msg("error selecting labeled trials")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	var trials []models.LedgerEntry
	for rows.Next() {
		var (
			distance float64
			verified bool
			label    string
		)
		if err = rows.Scan(&distance, &verified, &label); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		trials = append(trials, models.LedgerEntry{
			Distance:   models.Float64(distance),
			Verified:   verified,
			TrialLabel: models.TrialLabel(label),
		})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	return ledger.Measure(trials), nil
}

// UserSummary returns the attempt statistics of one user. Username is left
// empty.
func (r *authLogRepository) UserSummary(ctx context.Context, userID int64) (models.UserStatistics, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUserAttemptsQuery(r.db.sq(), userID)
	if err != nil {
		return models.UserStatistics{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*authLogRepository.UserSummary").Msg("error selecting attempts")
		return models.UserStatistics{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	stats := models.UserStatistics{UserID: userID}
	var distances []float64
	for rows.Next() {
		var (
			verified bool
			distance sql.NullFloat64
		)
		if err = rows.Scan(&verified, &distance); err != nil {
			return models.UserStatistics{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		stats.TotalAttempts++
		if verified {
			stats.SuccessfulAttempts++
		}
		if distance.Valid {
			distances = append(distances, distance.Float64)
		}
	}
	if err = rows.Err(); err != nil {
		return models.UserStatistics{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	stats.SuccessRate = ledger.SuccessRate(stats.SuccessfulAttempts, stats.TotalAttempts)
	if len(distances) > 0 {
		d := ledger.SummarizeDistances(distances)
		stats.AverageDistance = models.Float64(d.Mean)
		stats.BestDistance = models.Float64(d.Min)
		stats.WorstDistance = models.Float64(d.Max)
	}

	return stats, nil
}

// Recent returns up to limit entries of the user, newest first. A
// non-positive limit selects the default of 10.
func (r *authLogRepository) Recent(ctx context.Context, userID int64, limit int) ([]models.LedgerEntry, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = recentLogsLimit
	}

	query, args, err := buildRecentLogsQuery(r.db.sq(), userID, uint64(limit))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*authLogRepository.Recent").Msg("error selecting recent attempts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	entries := make([]models.LedgerEntry, 0, limit)
	for rows.Next() {
		var (
			e         models.LedgerEntry
			method    string
			distance  sql.NullFloat64
			threshold sql.NullFloat64
			label     sql.NullString
		)
		if err = rows.Scan(&e.ID, &e.UserID, &e.Timestamp, &method, &distance, &threshold, &e.Verified, &label); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		e.Method = models.AuthMethod(method)
		e.TrialLabel = models.TrialLabel(label.String)
		if distance.Valid {
			e.Distance = models.Float64(distance.Float64)
		}
		if threshold.Valid {
			e.Threshold = models.Float64(threshold.Float64)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	return entries, nil
}
