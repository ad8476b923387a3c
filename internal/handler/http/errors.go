// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the session middleware when reading the session
// cookie. Callers can match against them with [errors.Is].
var (
	// ErrNoSessionCookie is returned by the session middleware when the
	// incoming request does not carry the session cookie at all.
	ErrNoSessionCookie = errors.New("no session cookie")

	// ErrEmptySessionCookie is returned when the session cookie is present
	// but its value is an empty string.
	ErrEmptySessionCookie = errors.New("empty session cookie")
)
