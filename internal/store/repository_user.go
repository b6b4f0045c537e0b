// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/models"
)

// userRepository is the SQL implementation of [UserRepository].
// It handles account creation, lookup and activation against the "users"
// table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns it with the
// database-assigned UserID.
//
// Error handling:
//   - unique violation on username or email → [ErrUsernameAlreadyExists].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return createUser(ctx, r.db, r.db, user)
}

// createUser inserts user through q, which is either the pool or an open
// transaction.
func createUser(ctx context.Context, db *DB, q DBTX, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	user.IsActive = true

	query, args, err := buildCreateUserQuery(db.sq(), user)
	if err != nil {
		log.Err(err).Str("func", "createUser").Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	// create user in db
	row := q.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&user.UserID); err != nil {
		log.Err(err).Str("func", "createUser").Msg("error creating user")

		err = db.classify(err)
		switch {
		case errors.Is(err, ErrAlreadyExists):
			return models.User{}, ErrUsernameAlreadyExists
		case errors.Is(err, ErrStorageUnavailable):
			return models.User{}, err
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	user.Password = ""
	return user, nil
}

// FindUserByUsername retrieves the user with the given username.
//
// Error handling:
//   - empty result set → [ErrNoUserWasFound].
//   - any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "FindUserByUsername", squirrel.Eq{"username": username})
}

// FindUserByID retrieves the user with the given id.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	return r.findUser(ctx, "FindUserByID", squirrel.Eq{"user_id": userID})
}

func (r *userRepository) findUser(ctx context.Context, fn string, where squirrel.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserQuery(r.db.sq(), where)
	if err != nil {
		log.Err(err).Str("func", "*userRepository."+fn).Msg("error building query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}
		log.Err(err).Str("func", "*userRepository."+fn).Msg("error finding user")
		return models.User{}, fmt.Errorf("unexpected DB error: %w", r.db.classify(err))
	}

	return user, nil
}

// UpdateLastLogin stamps the last successful login of the user.
func (r *userRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	query, args, err := buildUpdateLastLoginQuery(r.db.sq(), userID, at.UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execOne(ctx, "UpdateLastLogin", query, args)
}

// SetActive activates or deactivates the user.
func (r *userRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	query, args, err := buildSetActiveQuery(r.db.sq(), userID, active)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return r.execOne(ctx, "SetActive", query, args)
}

// execOne runs an UPDATE expected to touch exactly one user.
func (r *userRepository) execOne(ctx context.Context, fn, query string, args []any) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository."+fn).Msg("error executing query")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, r.db.classify(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*userRepository."+fn).Msg("error reading affected rows")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// CountUsers returns the number of registered and of active users.
func (r *userRepository) CountUsers(ctx context.Context) (int64, int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCountUsersQuery(r.db.sq())
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total, active int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&total, &active); err != nil {
		log.Err(err).Str("func", "*userRepository.CountUsers").Msg("error counting users")
		return 0, 0, fmt.Errorf("%w: %w", ErrScanningRow, r.db.classify(err))
	}

	return total, active, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (models.User, error) {
	var (
		user      models.User
		lastLogin sql.NullTime
	)
	if err := row.Scan(&user.UserID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt, &lastLogin, &user.IsActive); err != nil {
		return models.User{}, err
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		user.LastLogin = &t
	}
	return user, nil
}
