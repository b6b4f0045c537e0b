// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-bio-auth/internal/logger"
	"github.com/MKhiriev/go-bio-auth/internal/store"
	"github.com/MKhiriev/go-bio-auth/models"
)

// ProfileAttempts is the number of recent attempts returned with a profile.
const ProfileAttempts = 10

type statsService struct {
	userRepository    store.UserRepository
	authLogRepository store.AuthLogRepository
	logger            *logger.Logger
}

func NewStatsService(users store.UserRepository, authLog store.AuthLogRepository, logger *logger.Logger) StatsService {
	return &statsService{
		userRepository:    users,
		authLogRepository: authLog,
		logger:            logger,
	}
}

// SystemStats returns the ledger summary completed with user counts.
func (s *statsService) SystemStats(ctx context.Context) (models.SystemStatistics, error) {
	log := logger.FromContext(ctx)

	summary, err := s.authLogRepository.Summary(ctx)
	if err != nil {
		log.Err(err).Msg("ledger summary failed")
		return models.SystemStatistics{}, fmt.Errorf("ledger summary failed: %w", err)
	}

	summary.TotalUsers, summary.ActiveUsers, err = s.userRepository.CountUsers(ctx)
	if err != nil {
		log.Err(err).Msg("counting users failed")
		return models.SystemStatistics{}, fmt.Errorf("counting users failed: %w", err)
	}

	return summary, nil
}

func (s *statsService) UserStats(ctx context.Context, userID int64) (models.UserStatistics, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return models.UserStatistics{}, err
	}

	stats, err := s.authLogRepository.UserSummary(ctx, userID)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("user summary failed")
		return models.UserStatistics{}, fmt.Errorf("user summary failed: %w", err)
	}
	stats.UserID = user.UserID
	stats.Username = user.Username

	return stats, nil
}

// Profile returns the user with their most recent attempts, newest first.
func (s *statsService) Profile(ctx context.Context, userID int64) (models.Profile, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return models.Profile{}, err
	}

	recent, err := s.authLogRepository.Recent(ctx, userID, ProfileAttempts)
	if err != nil {
		logger.FromContext(ctx).Err(err).Int64("user_id", userID).Msg("loading recent attempts failed")
		return models.Profile{}, fmt.Errorf("loading recent attempts failed: %w", err)
	}
	if recent == nil {
		recent = []models.LedgerEntry{}
	}

	return models.Profile{User: user.Public(), RecentAttempts: recent}, nil
}

func (s *statsService) findUser(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user, nil
}
