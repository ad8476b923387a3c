// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/MKhiriev/go-benefit-portal/internal/analytics"
)

// fragmentLoader produces one fragment's contribution to the final
// [Settings]. Loaders read only their own section's environment variables
// and fill in defaults, so loading the same fragment twice with the same
// environment yields equal results.
type fragmentLoader func() (*Settings, error)

// DefaultFragmentOrder is the fixed order in which fragments are applied.
// Later fragments override earlier non-zero values, so the order is part of
// the configuration contract and must stay deterministic.
var DefaultFragmentOrder = []string{
	"base",
	"apps",
	"middleware",
	"database",
	"templates",
	"locale",
	"login",
	"staticfiles",
	"logging",
	"csp",
	"matomo",
	"honeypot",
	"workers",
}

// fragmentRegistry maps fragment names to their loaders. Composition looks
// fragments up by name; an unknown name is a fatal startup error
// ([ErrFragmentNotFound]).
var fragmentRegistry = map[string]fragmentLoader{
	"base":        loadBaseFragment,
	"apps":        loadAppsFragment,
	"middleware":  loadMiddlewareFragment,
	"database":    loadDatabaseFragment,
	"templates":   loadTemplatesFragment,
	"locale":      loadLocaleFragment,
	"login":       loadLoginFragment,
	"staticfiles": loadStaticFilesFragment,
	"logging":     loadLoggingFragment,
	"csp":         loadCSPFragment,
	"matomo":      loadMatomoFragment,
	"honeypot":    loadHoneypotFragment,
	"workers":     loadWorkersFragment,
}

func loadBaseFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Base); err != nil {
		return nil, err
	}

	if s.Base.HTTPAddress == "" {
		s.Base.HTTPAddress = ":8080"
	}
	if s.Base.RequestTimeout == 0 {
		s.Base.RequestTimeout = 30 * time.Second
	}
	if s.Base.Version == "" {
		s.Base.Version = "0.0.0"
	}
	if s.Base.SecretKey == "" {
		s.Base.SecretKey = "dev-insecure-change-me"
	}

	// The optional JSON config path rides along with the base fragment so
	// that withJSON can resolve it from env as well as from flags.
	var jsonPath struct {
		Path string `env:"CONFIG"`
	}
	if err := parseEnv(&jsonPath); err != nil {
		return nil, err
	}
	s.JSONFilePath = jsonPath.Path

	return s, nil
}

func loadAppsFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Apps); err != nil {
		return nil, err
	}

	if len(s.Apps.Installed) == 0 {
		s.Apps.Installed = []string{"pages", "api", "analytics"}
	}

	return s, nil
}

func loadMiddlewareFragment() (*Settings, error) {
	s := &Settings{}

	// Toggles default to on; env.Parse leaves fields untouched when the
	// variable is absent, so MIDDLEWARE_*=false is an explicit off-switch.
	s.Middleware = Middleware{TraceID: true, RequestLogging: true, Gzip: true}
	if err := parseEnv(&s.Middleware); err != nil {
		return nil, err
	}

	return s, nil
}

func loadDatabaseFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Database); err != nil {
		return nil, err
	}

	if s.Database.DSN == "" {
		s.Database.DSN = "portal.db"
	}
	if s.Database.MaxOpenConns == 0 {
		s.Database.MaxOpenConns = 10
	}

	return s, nil
}

func loadTemplatesFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Templates); err != nil {
		return nil, err
	}

	return s, nil
}

func loadLocaleFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Locale); err != nil {
		return nil, err
	}

	if s.Locale.Language == "" {
		s.Locale.Language = "da"
	}
	if s.Locale.TimeZone == "" {
		s.Locale.TimeZone = "America/Nuuk"
	}

	return s, nil
}

func loadLoginFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Login); err != nil {
		return nil, err
	}

	if s.Login.URL == "" {
		s.Login.URL = "/login"
	}
	if s.Login.RedirectParam == "" {
		s.Login.RedirectParam = "next"
	}
	if s.Login.CookieName == "" {
		s.Login.CookieName = "portal_session"
	}
	if s.Login.SessionDuration == 0 {
		s.Login.SessionDuration = 30 * time.Minute
	}
	if s.Login.TokenIssuer == "" {
		s.Login.TokenIssuer = "benefit-portal"
	}

	return s, nil
}

func loadStaticFilesFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.StaticFiles); err != nil {
		return nil, err
	}

	if s.StaticFiles.URLPrefix == "" {
		s.StaticFiles.URLPrefix = "/static/"
	}
	if s.StaticFiles.Dir == "" {
		s.StaticFiles.Dir = "static"
	}

	return s, nil
}

func loadLoggingFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Logging); err != nil {
		return nil, err
	}

	if s.Logging.Level == "" {
		s.Logging.Level = "info"
	}

	return s, nil
}

func loadCSPFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.CSP); err != nil {
		return nil, err
	}

	if len(s.CSP.DefaultSrc) == 0 {
		s.CSP.DefaultSrc = []string{"'self'"}
	}
	if len(s.CSP.ScriptSrc) == 0 {
		s.CSP.ScriptSrc = []string{"'self'"}
	}
	if len(s.CSP.StyleSrc) == 0 {
		s.CSP.StyleSrc = []string{"'self'", "'unsafe-inline'"}
	}

	return s, nil
}

func loadMatomoFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Matomo); err != nil {
		return nil, err
	}

	// A missing MATOMO_URL is not an error: tracking is simply off.
	s.Matomo.Host = analytics.HostOf(s.Matomo.URL)

	return s, nil
}

func loadHoneypotFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Honeypot); err != nil {
		return nil, err
	}

	if s.Honeypot.FieldName == "" {
		s.Honeypot.FieldName = "asmd"
	}

	return s, nil
}

func loadWorkersFragment() (*Settings, error) {
	s := &Settings{}
	if err := parseEnv(&s.Workers); err != nil {
		return nil, err
	}

	if s.Workers.PruneInterval == 0 {
		s.Workers.PruneInterval = 10 * time.Minute
	}

	return s, nil
}
