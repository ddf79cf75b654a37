// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/sblog-agent/internal/middleware"
	"github.com/tomtom215/sblog-agent/internal/websocket"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	wsOrigins     []string
}

// NewRouter creates a Router. wsOrigins restricts websocket upgrades.
func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware, wsOrigins []string) *Router {
	return &Router{handler: handler, chiMiddleware: chiMiddleware, wsOrigins: wsOrigins}
}

// Setup builds the chi route tree.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.SecurityHeaders)
		r.Use(middleware.PrometheusMetrics)

		r.Get("/health", router.handler.Health)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("navigation"))
			r.Post("/navigation", router.handler.Navigate)
		})

		r.Route("/session", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit("session"))

			r.Get("/", router.handler.SessionStatus)
			r.With(router.chiMiddleware.RateLimitCustom("login", RateLimitLogin)).Post("/login", router.handler.Login)
			r.Post("/logout", router.handler.Logout)
			r.Post("/register", router.handler.Register)
			r.Get("/user", router.handler.CurrentUser)
			r.Get("/check-username", router.handler.CheckUsername)
		})
	})

	if router.handler.hub != nil {
		r.With(middleware.PrometheusMetrics).Get("/ws", websocket.Handler(router.handler.hub, router.wsOrigins))
	}
	r.Handle("/metrics", promhttp.Handler())

	return r
}
