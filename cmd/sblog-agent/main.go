// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/tomtom215/sblog-agent/internal/account"
	"github.com/tomtom215/sblog-agent/internal/api"
	"github.com/tomtom215/sblog-agent/internal/client"
	"github.com/tomtom215/sblog-agent/internal/config"
	"github.com/tomtom215/sblog-agent/internal/logging"
	"github.com/tomtom215/sblog-agent/internal/navigation"
	"github.com/tomtom215/sblog-agent/internal/session"
	"github.com/tomtom215/sblog-agent/internal/supervisor"
	"github.com/tomtom215/sblog-agent/internal/supervisor/services"
	"github.com/tomtom215/sblog-agent/internal/visit"
	"github.com/tomtom215/sblog-agent/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
	})

	logging.Info().
		Str("api_base_url", cfg.API.BaseURL).
		Str("origin", cfg.Navigation.Origin).
		Str("session_store", cfg.Session.Store).
		Bool("visit_enabled", cfg.Visit.Enabled).
		Msg("Starting sblog-agent")

	factory, err := session.NewStoreFactory(session.StoreType(cfg.Session.Store), cfg.Session.Path)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize credential store")
	}
	defer func() {
		if err := factory.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing credential store")
		}
	}()
	store := factory.CreateStore()

	if cfg.Session.Store == string(session.StoreMemory) {
		logging.Warn().Msg("Credential store is in memory; the session ends when the agent restarts (SESSION_STORE=badger persists it)")
	}

	location, err := navigation.NewLocation(cfg.Navigation.Origin)
	if err != nil {
		logging.Fatal().Err(err).Msg("Invalid navigation origin")
	}

	hub := websocket.NewHub()
	location.OnRedirect(hub.BroadcastRedirect)

	apiClient, err := client.New(client.Options{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		UserAgent:     cfg.API.UserAgent,
		LoginRoute:    cfg.Navigation.LoginRoute,
		RegisterRoute: cfg.Navigation.RegisterRoute,
	}, store, location, client.MultiNotifier{client.LogNotifier{}, hub})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create API client")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	var (
		recorder *visit.Recorder
		breaker  *visit.BreakerReporter
	)
	if cfg.Visit.Enabled {
		cache := visit.NewThrottleCache(cfg.Visit.ThrottleWindow)
		breaker = visit.NewBreakerReporter(
			visit.NewAPIReporter(apiClient, cfg.Visit.Endpoint, cfg.Visit.ReportsPerSecond, cfg.Visit.ReportBurst),
			cfg.Visit.BreakerFailures,
			cfg.Visit.BreakerTimeout,
		)
		recorder = visit.NewRecorder(cache, visit.NewFilter(cfg.Visit.AdminPrefix, cfg.Visit.DenyPrefixes), breaker)

		tree.AddTelemetryService(services.NewRecorderService(recorder))
		tree.AddTelemetryService(visit.NewSweeper(cache))
	} else {
		logging.Info().Msg("Visit reporting disabled (VISIT_ENABLED=false)")
	}

	handler := api.NewHandler(api.HandlerDeps{
		Accounts: account.NewService(apiClient),
		Store:    store,
		Location: location,
		Guard:    visit.NewGuard(recorder, location),
		Recorder: recorder,
		Hub:      hub,
		Breaker:  breaker,
	})
	router := api.NewRouter(handler, api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	}), cfg.Server.CORSOrigins)

	server := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	tree.AddMessagingService(services.NewWebSocketHubService(hub))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Agent API listening")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree stopped with error")
	}

	if report, err := tree.UnstoppedServiceReport(); err == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within the shutdown timeout")
		}
	}

	logging.Info().Msg("sblog-agent stopped")
}
