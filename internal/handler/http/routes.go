// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/health", h.health)
		r.Get("/api/version", h.getServerVersion)
		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/verify", h.verify)
		r.Put("/api/user/enrollment", h.reEnroll)
		r.Get("/api/user/profile", h.profile)
		r.Get("/api/stats", h.stats)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router
}
