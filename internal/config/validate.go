// SBlog Agent - Authenticated API Pipeline and Visit Telemetry
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sblog-agent

package config

import (
	"fmt"
	"net/url"
	"strings"
)

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var validSessionStores = map[string]bool{
	"memory": true,
	"badger": true,
}

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateSession(); err != nil {
		return err
	}
	if err := c.validateNavigation(); err != nil {
		return err
	}
	if err := c.validateVisit(); err != nil {
		return err
	}
	if err := c.validateServer(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateAPI() error {
	if err := validateHTTPURL(c.API.BaseURL, "API_BASE_URL"); err != nil {
		return err
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive, got %v", c.API.Timeout)
	}
	return nil
}

func (c *Config) validateSession() error {
	if !validSessionStores[c.Session.Store] {
		return fmt.Errorf("SESSION_STORE must be one of: memory, badger")
	}
	if c.Session.Store == "badger" && c.Session.Path == "" {
		return fmt.Errorf("SESSION_STORE_PATH is required when SESSION_STORE=badger")
	}
	return nil
}

func (c *Config) validateNavigation() error {
	if err := validateHTTPURL(c.Navigation.Origin, "APP_ORIGIN"); err != nil {
		return err
	}
	if !strings.HasPrefix(c.Navigation.LoginRoute, "/") {
		return fmt.Errorf("LOGIN_ROUTE must start with '/', got %q", c.Navigation.LoginRoute)
	}
	if !strings.HasPrefix(c.Navigation.RegisterRoute, "/") {
		return fmt.Errorf("REGISTER_ROUTE must start with '/', got %q", c.Navigation.RegisterRoute)
	}
	return nil
}

func (c *Config) validateVisit() error {
	if !c.Visit.Enabled {
		return nil
	}
	if !strings.HasPrefix(c.Visit.Endpoint, "/") {
		return fmt.Errorf("VISIT_ENDPOINT must start with '/', got %q", c.Visit.Endpoint)
	}
	if c.Visit.ThrottleWindow <= 0 {
		return fmt.Errorf("VISIT_THROTTLE_WINDOW must be positive, got %v", c.Visit.ThrottleWindow)
	}
	if c.Visit.AdminPrefix != "" && !strings.HasPrefix(c.Visit.AdminPrefix, "/") {
		return fmt.Errorf("VISIT_ADMIN_PREFIX must start with '/', got %q", c.Visit.AdminPrefix)
	}
	if c.Visit.ReportsPerSecond < 0 {
		return fmt.Errorf("VISIT_REPORTS_PER_SECOND must not be negative")
	}
	if c.Visit.ReportsPerSecond > 0 && c.Visit.ReportBurst < 1 {
		return fmt.Errorf("VISIT_REPORT_BURST must be at least 1 when rate limiting is enabled")
	}
	if c.Visit.BreakerFailures == 0 {
		return fmt.Errorf("VISIT_BREAKER_FAILURES must be at least 1")
	}
	if c.Visit.BreakerTimeout <= 0 {
		return fmt.Errorf("VISIT_BREAKER_TIMEOUT must be positive, got %v", c.Visit.BreakerTimeout)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimitReqs < 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must not be negative")
	}
	if c.Server.RateLimitReqs > 0 && c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// validateHTTPURL checks for an absolute http(s) URL without query parameters.
// Unlike a bare server address, a path prefix is allowed.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}
