// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/biometric"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/models"
)

// enrollmentRepository stores enrolled codes in the "biometric_codes" table
// as CBOR envelopes, one row per user and modality.
type enrollmentRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewEnrollmentRepository(db *DB, logger *logger.Logger) EnrollmentRepository {
	logger.Debug().Msg("creating enrollment repository")
	return &enrollmentRepository{
		db:     db,
		logger: logger,
	}
}

func (r *enrollmentRepository) CreateUserWithEnrollment(ctx context.Context, user models.User, codes []biometric.Code) (models.User, biometric.Enrollment, error) {
	log := logger.FromContext(ctx)

	var (
		created    models.User
		enrollment biometric.Enrollment
	)
	err := r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		var err error
		if created, err = createUser(ctx, r.db, tx, user); err != nil {
			return err
		}
		if enrollment, err = biometric.NewEnrollment(created.UserID, codes...); err != nil {
			return err
		}
		return r.insertCodes(ctx, tx, enrollment, created.CreatedAt)
	})
	if err != nil {
		log.Err(err).Str("func", "*enrollmentRepository.CreateUserWithEnrollment").Msg("error creating enrolled user")
		return models.User{}, biometric.Enrollment{}, err
	}

	return created, enrollment, nil
}

func (r *enrollmentRepository) GetEnrollment(ctx context.Context, userID int64) (biometric.Enrollment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectCodesQuery(r.db.sq(), userID)
	if err != nil {
		return biometric.Enrollment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*enrollmentRepository.GetEnrollment").Msg("error selecting codes")
		return biometric.Enrollment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	var codes []biometric.Code
	for rows.Next() {
		var blob []byte
		if err = rows.Scan(&blob); err != nil {
			log.Err(err).Str("func", "*enrollmentRepository.GetEnrollment").Msg("error scanning code")
			return biometric.Enrollment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		code, err := biometric.UnmarshalCode(userID, blob)
		if err != nil {
			log.Err(err).Str("func", "*enrollmentRepository.GetEnrollment").Int64("user_id", userID).Msg("corrupt code")
			return biometric.Enrollment{}, fmt.Errorf("%w: %w", ErrCorruptCode, err)
		}
		codes = append(codes, code)
	}
	if err = rows.Err(); err != nil {
		return biometric.Enrollment{}, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	enrollment, err := biometric.NewEnrollment(userID, codes...)
	if err != nil {
		return biometric.Enrollment{}, fmt.Errorf("%w: %w", ErrCorruptCode, err)
	}
	return enrollment, nil
}

func (r *enrollmentRepository) ReplaceEnrollment(ctx context.Context, enrollment biometric.Enrollment) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCodesQuery(r.db.sq(), enrollment.UserID())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	err = r.db.WithTx(ctx, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
		}
		return r.insertCodes(ctx, tx, enrollment, time.Now().UTC())
	})
	if err != nil {
		log.Err(err).Str("func", "*enrollmentRepository.ReplaceEnrollment").Int64("user_id", enrollment.UserID()).Msg("error replacing enrollment")
		return err
	}

	return nil
}

func (r *enrollmentRepository) insertCodes(ctx context.Context, tx DBTX, enrollment biometric.Enrollment, at time.Time) error {
	for _, code := range enrollment.Codes() {
		blob, err := biometric.MarshalCode(code)
		if err != nil {
			return err
		}
		query, args, err := buildInsertCodeQuery(r.db.sq(), code, blob, at)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
		}
	}
	return nil
}

// ListActiveEnrollments returns every active user with at least one stored
// code, ordered by user id.
func (r *enrollmentRepository) ListActiveEnrollments(ctx context.Context) ([]EnrolledUser, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildSelectActiveEnrollmentsQuery(r.db.sq())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*enrollmentRepository.ListActiveEnrollments").Msg("error selecting enrollments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}
	defer rows.Close()

	var (
		users []models.User
		codes = make(map[int64][]biometric.Code)
	)
	for rows.Next() {
		var (
			user      models.User
			lastLogin sql.NullTime
			blob      []byte
		)
		if err = rows.Scan(&user.UserID, &user.Username, &user.Email, &user.CreatedAt, &lastLogin, &user.IsActive, &blob); err != nil {
			log.Err(err).Str("func", "*enrollmentRepository.ListActiveEnrollments").Msg("error scanning row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			user.LastLogin = &t
		}

		code, err := biometric.UnmarshalCode(user.UserID, blob)
		if err != nil {
			return nil, fmt.Errorf("%w: user %d: %w", ErrCorruptCode, user.UserID, err)
		}
		if _, seen := codes[user.UserID]; !seen {
			users = append(users, user)
		}
		codes[user.UserID] = append(codes[user.UserID], code)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	out := make([]EnrolledUser, 0, len(users))
	for _, user := range users {
		enrollment, err := biometric.NewEnrollment(user.UserID, codes[user.UserID]...)
		if err != nil {
			return nil, fmt.Errorf("%w: user %d: %w", ErrCorruptCode, user.UserID, err)
		}
		out = append(out, EnrolledUser{User: user, Enrollment: enrollment})
	}

	return out, nil
}
