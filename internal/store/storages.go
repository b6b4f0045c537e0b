// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/go-bio-auth/internal/logger"

// Storages groups the repositories built on one database handle.
type Storages struct {
	DB                   *DB
	UserRepository       UserRepository
	EnrollmentRepository EnrollmentRepository
	AuthLogRepository    AuthLogRepository
}

func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		DB:                   db,
		UserRepository:       NewUserRepository(db, log),
		EnrollmentRepository: NewEnrollmentRepository(db, log),
		AuthLogRepository:    NewAuthLogRepository(db, log),
	}
}
