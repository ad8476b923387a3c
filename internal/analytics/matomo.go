// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package analytics integrates the portal with a Matomo instance.
//
// It provides the host extractor consumed by the matomo settings fragment
// and template filters, and a server-side tracker that records page hits
// over Matomo's HTTP tracking API. Tracking is best-effort: a missing or
// unreachable Matomo instance never affects request handling.
package analytics

import (
	"context"
	"regexp"
	"strconv"

	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/utils"
)

// urlScheme matches a single leading http:// or https:// prefix,
// case-insensitive.
var urlScheme = regexp.MustCompile(`(?i)^https?://`)

// HostOf strips one leading "http://" or "https://" scheme from rawURL and
// returns the remainder unchanged. Inputs without such a scheme, including
// the empty string, are returned as-is.
//
// The function is pure and total; it performs no URL validation.
func HostOf(rawURL string) string {
	return urlScheme.ReplaceAllString(rawURL, "")
}

// Tracker posts page hits to a Matomo instance. The zero-value check on
// baseURL makes a disabled tracker a no-op, so callers never need to guard
// their Track calls.
type Tracker struct {
	baseURL string
	siteID  int
	client  *utils.HTTPClient
	logger  *logger.Logger
}

// NewTracker constructs a Tracker for the given Matomo base URL and site ID.
// An empty baseURL disables tracking entirely.
func NewTracker(baseURL string, siteID int, client *utils.HTTPClient, logger *logger.Logger) *Tracker {
	return &Tracker{
		baseURL: baseURL,
		siteID:  siteID,
		client:  client,
		logger:  logger,
	}
}

// Enabled reports whether the tracker has a Matomo instance to talk to.
func (t *Tracker) Enabled() bool {
	return t.baseURL != ""
}

// Track records a page hit for pageURL via Matomo's HTTP tracking API
// (matomo.php, rec=1). Failures are logged at debug level and swallowed:
// analytics must never fail a user request.
func (t *Tracker) Track(ctx context.Context, pageURL string) {
	if !t.Enabled() {
		return
	}

	resp, err := t.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"idsite": strconv.Itoa(t.siteID),
			"rec":    "1",
			"url":    pageURL,
		}).
		Get(t.baseURL + "/matomo.php")
	if err != nil {
		t.logger.Debug().Err(err).Str("page", pageURL).Msg("matomo hit failed")
		return
	}

	if resp.IsError() {
		t.logger.Debug().Int("status", resp.StatusCode()).Str("page", pageURL).Msg("matomo hit rejected")
	}
}
