// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// pinger is satisfied by *store.DB.
type pinger interface {
	Ping(ctx context.Context) error
}

type healthService struct {
	db pinger
}

func NewHealthService(db pinger) HealthService {
	return &healthService{db: db}
}

// Check pings the database with a short deadline.
func (h *healthService) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	return h.db.Ping(ctx)
}
