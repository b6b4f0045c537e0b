// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/logger"
)

// StatsReporter logs a system statistics snapshot at a fixed interval.
type StatsReporter struct {
	source   StatsSource
	interval time.Duration
	logger   *logger.Logger
}

func NewStatsReporter(source StatsSource, interval time.Duration, logger *logger.Logger) *StatsReporter {
	return &StatsReporter{source: source, interval: interval, logger: logger}
}

func (s *StatsReporter) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.report(ctx)
		}
	}
}

func (s *StatsReporter) report(ctx context.Context) {
	stats, err := s.source.SystemStats(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Err(err).Str("func", "*StatsReporter.report").Msg("collecting statistics failed")
		}
		return
	}

	event := s.logger.Info().
		Int64("total_users", stats.TotalUsers).
		Int64("active_users", stats.ActiveUsers).
		Int64("total_authentications", stats.TotalAuthentications).
		Int64("successful_authentications", stats.SuccessfulAuthentications).
		Float64("success_rate", stats.SuccessRate).
		Float64("mean_distance", stats.Distance.Mean).
		Float64("estimated_eer", stats.Estimated.EER)
	if stats.Measured != nil {
		event = event.
			Float64("measured_far", stats.Measured.FAR).
			Float64("measured_frr", stats.Measured.FRR).
			Float64("measured_eer", stats.Measured.EER)
	}
	event.Msg("authentication statistics")
}
