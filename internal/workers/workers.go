// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-bio-auth/internal/config"
	"github.com/MKhiriev/go-bio-auth/internal/logger"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the periodic stats reporter and, when status is not nil,
// the health monitor feeding it. Workers with a non-positive interval are
// skipped.
func NewWorkers(stats StatsSource, health HealthChecker, status StatusSetter, cfg config.Workers, logger *logger.Logger) *Workers {
	w := &Workers{}
	if stats != nil && cfg.StatsInterval > 0 {
		w.workers = append(w.workers, NewStatsReporter(stats, cfg.StatsInterval, logger))
	}
	if health != nil && status != nil && cfg.HealthInterval > 0 {
		w.workers = append(w.workers, NewHealthMonitor(health, status, cfg.HealthInterval, logger))
	}
	return w
}

// Run starts every worker in its own goroutine and returns once all of them
// have returned after ctx is cancelled.
func (w *Workers) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, worker := range w.workers {
		wg.Go(func() {
			worker.Run(ctx)
		})
	}
	wg.Wait()
}
