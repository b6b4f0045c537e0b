// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-bio-auth/internal/logger"
)

// HealthMonitor checks storage health at a fixed interval and publishes the
// result. The first check runs immediately.
type HealthMonitor struct {
	checker  HealthChecker
	status   StatusSetter
	interval time.Duration
	logger   *logger.Logger
}

func NewHealthMonitor(checker HealthChecker, status StatusSetter, interval time.Duration, logger *logger.Logger) *HealthMonitor {
	return &HealthMonitor{checker: checker, status: status, interval: interval, logger: logger}
}

func (p *HealthMonitor) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	serving := p.check(ctx, false)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			serving = p.check(ctx, serving)
		}
	}
}

// check publishes the current health and logs transitions.
func (p *HealthMonitor) check(ctx context.Context, wasServing bool) bool {
	err := p.checker.Check(ctx)
	serving := err == nil
	if ctx.Err() != nil {
		return wasServing
	}

	p.status.SetServing(serving)

	switch {
	case serving && !wasServing:
		p.logger.Info().Msg("storage is healthy")
	case !serving && wasServing:
		p.logger.Err(err).Msg("storage became unhealthy")
	case !serving:
		p.logger.Debug().Err(err).Msg("storage is still unhealthy")
	}
	return serving
}
