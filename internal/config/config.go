// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// Settings is the process-wide configuration of the portal. It is assembled
// exactly once at startup by merging named fragments in a fixed order (see
// [GetSettings]) and is read-only afterwards: consumers receive it by
// pointer and must never mutate it.
//
// Each section corresponds to one settings fragment. Struct tags follow the
// caarlos0/env convention; fragments parse only their own section, so env
// variable names are spelled out in full on each field.
type Settings struct {
	// Base holds application-wide settings: listen address, secret key,
	// debug flag, and the application version.
	Base Base

	// Apps lists the enabled feature modules. Route registration consults
	// this list, so disabling an app removes its URL surface.
	Apps Apps

	// Middleware toggles the request middleware chain.
	Middleware Middleware

	// Database holds the relational database connection settings.
	Database Database

	// Templates holds template-engine settings.
	Templates Templates

	// Locale holds language and timezone settings.
	Locale Locale

	// Login holds session and authentication settings for the gated pages.
	Login Login

	// StaticFiles holds settings for serving static assets.
	StaticFiles StaticFiles

	// Logging holds structured-logging settings.
	Logging Logging

	// CSP holds the Content-Security-Policy directives applied by the
	// security-headers middleware.
	CSP CSP

	// Matomo holds the analytics integration settings. Host is derived from
	// URL at fragment load time and is empty when analytics is disabled.
	Matomo Matomo

	// Honeypot holds the anti-bot form trap settings.
	Honeypot Honeypot

	// Workers holds configuration for background worker processes.
	Workers Workers

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already composed from fragments and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Base holds application-wide settings shared by every component.
type Base struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// SecretKey is the secret used to sign session tokens. Must be kept
	// confidential.
	// Env: SECRET_KEY
	SecretKey string `env:"SECRET_KEY"`

	// Debug enables verbose diagnostics and relaxes cookie security.
	// Never enable in production.
	// Env: DEBUG
	Debug bool `env:"DEBUG"`

	// Version is the semantic version string of the running application
	// (e.g. "1.2.3"). Exposed via the /api/version endpoint.
	// Env: VERSION
	Version string `env:"VERSION"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Apps lists enabled feature modules.
type Apps struct {
	// Installed names the feature modules whose routes are registered.
	// Known names: "pages", "api", "analytics".
	// Env: INSTALLED_APPS (comma-separated)
	Installed []string `env:"INSTALLED_APPS"`
}

// Middleware toggles individual members of the request middleware chain.
// All default to enabled; the fragment exists so a deployment can switch a
// middleware off without a rebuild.
type Middleware struct {
	// TraceID attaches a request trace identifier and a request-scoped logger.
	// Env: MIDDLEWARE_TRACE_ID
	TraceID bool `env:"MIDDLEWARE_TRACE_ID"`

	// RequestLogging emits one structured log line per completed request.
	// Env: MIDDLEWARE_REQUEST_LOGGING
	RequestLogging bool `env:"MIDDLEWARE_REQUEST_LOGGING"`

	// Gzip compresses responses for clients that accept it.
	// Env: MIDDLEWARE_GZIP
	Gzip bool `env:"MIDDLEWARE_GZIP"`
}

// Database holds connection settings for the relational database backend.
type Database struct {
	// DSN is the database connection string. A "postgres://" scheme selects
	// the pgx driver; anything else is treated as an SQLite file path.
	// Env: DATABASE_URI
	DSN string `env:"DATABASE_URI"`

	// MaxOpenConns caps the connection pool size.
	// Env: DATABASE_MAX_OPEN_CONNS
	MaxOpenConns int `env:"DATABASE_MAX_OPEN_CONNS"`
}

// Templates holds template-engine settings.
type Templates struct {
	// Dir optionally points at an on-disk template directory that overrides
	// the templates embedded in the binary. Used during development.
	// Env: TEMPLATES_DIR
	Dir string `env:"TEMPLATES_DIR"`
}

// Locale holds language and timezone settings.
type Locale struct {
	// Language is the BCP 47 tag of the portal's primary language.
	// Env: LANGUAGE_CODE
	Language string `env:"LANGUAGE_CODE"`

	// TimeZone is the IANA name of the deployment timezone.
	// Env: TIME_ZONE
	TimeZone string `env:"TIME_ZONE"`
}

// Login holds session and authentication settings for the gated pages.
type Login struct {
	// URL is the path unauthenticated requests are redirected to.
	// Env: LOGIN_URL
	URL string `env:"LOGIN_URL"`

	// RedirectParam is the query parameter that carries the originally
	// requested path through the login flow.
	// Env: LOGIN_REDIRECT_PARAM
	RedirectParam string `env:"LOGIN_REDIRECT_PARAM"`

	// CookieName is the name of the session cookie.
	// Env: SESSION_COOKIE_NAME
	CookieName string `env:"SESSION_COOKIE_NAME"`

	// CookieSecure marks the session cookie Secure. Defaults to the
	// inverse of Base.Debug when unset.
	// Env: SESSION_COOKIE_SECURE
	CookieSecure bool `env:"SESSION_COOKIE_SECURE"`

	// SessionDuration is how long an issued session remains valid
	// (e.g. "30m", "2h").
	// Env: SESSION_DURATION
	SessionDuration time.Duration `env:"SESSION_DURATION"`

	// TokenIssuer is the "iss" claim embedded in every session token.
	// Env: TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`
}

// StaticFiles holds settings for serving static assets.
type StaticFiles struct {
	// URLPrefix is the path prefix static assets are served under.
	// Env: STATIC_URL
	URLPrefix string `env:"STATIC_URL"`

	// Dir is the filesystem directory holding static assets.
	// Env: STATIC_ROOT
	Dir string `env:"STATIC_ROOT"`
}

// Logging holds structured-logging settings.
type Logging struct {
	// Level is the minimum emitted log level ("debug", "info", "warn", ...).
	// Env: LOGGING_LEVEL
	Level string `env:"LOGGING_LEVEL"`
}

// CSP holds the Content-Security-Policy directives applied by the
// security-headers middleware. Each list becomes one directive; empty lists
// omit the directive entirely.
type CSP struct {
	// DefaultSrc populates the default-src directive.
	// Env: CSP_DEFAULT_SRC (comma-separated)
	DefaultSrc []string `env:"CSP_DEFAULT_SRC"`

	// ScriptSrc populates the script-src directive.
	// Env: CSP_SCRIPT_SRC (comma-separated)
	ScriptSrc []string `env:"CSP_SCRIPT_SRC"`

	// StyleSrc populates the style-src directive.
	// Env: CSP_STYLE_SRC (comma-separated)
	StyleSrc []string `env:"CSP_STYLE_SRC"`
}

// Matomo holds the analytics integration settings.
type Matomo struct {
	// URL is the base URL of the Matomo instance. Empty disables tracking;
	// a missing variable is never an error.
	// Env: MATOMO_URL
	URL string `env:"MATOMO_URL"`

	// Host is URL with its leading http:// or https:// scheme stripped,
	// derived once at fragment load time. Templates embed it in the
	// tracking snippet.
	Host string

	// SiteID is the Matomo site identifier hits are recorded under.
	// Env: MATOMO_SITEID
	SiteID int `env:"MATOMO_SITEID"`
}

// Honeypot holds the anti-bot form trap settings.
type Honeypot struct {
	// FieldName is the hidden form field legitimate users never fill.
	// A non-empty submitted value triggers the fixed 403 response.
	// Env: HONEYPOT_FIELD_NAME
	FieldName string `env:"HONEYPOT_FIELD_NAME"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// PruneInterval is how often the session pruner removes expired
	// session rows.
	// Env: WORKERS_PRUNE_INTERVAL
	PruneInterval time.Duration `env:"WORKERS_PRUNE_INTERVAL"`
}

// GetSettings composes, merges, and validates the application configuration
// exactly once per process. All sources are merged in the following priority
// order (later sources win for non-zero fields):
//  1. Settings fragments, applied in [DefaultFragmentOrder]
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Subsequent calls return the same *Settings and error without re-reading
// any source, which gives every component a consistent view and makes the
// composition a startup barrier.
func GetSettings() (*Settings, error) {
	settingsOnce.Do(func() {
		composedSettings, composeErr = newConfigBuilder().
			withFragments(DefaultFragmentOrder...).
			withFlags().
			withJSON().
			build()
	})

	return composedSettings, composeErr
}
