// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that allows
// running multiple workers in a unified way.
package workers

import (
	"context"

	"github.com/MKhiriev/go-bio-auth/models"
)

// Worker is the interface that must be implemented by any background worker.
//
// Run blocks until ctx is cancelled.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    <-ctx.Done()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// StatsSource is satisfied by service.StatsService.
type StatsSource interface {
	SystemStats(ctx context.Context) (models.SystemStatistics, error)
}

// HealthChecker is satisfied by service.HealthService.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// StatusSetter receives the outcome of every health check.
type StatusSetter interface {
	SetServing(serving bool)
}
