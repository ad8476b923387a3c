package http

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/utils"
)

// requireSession is an HTTP middleware that gates page routes behind an
// authenticated session.
//
// It reads the session cookie, validates the token it carries via
// [service.AuthService.Authenticate], and — on success — stores the
// authenticated user's ID and session ID in the request context under
// [utils.UserIDCtxKey] and [utils.SessionIDCtxKey] before delegating to the
// next handler.
//
// Any failure (missing cookie, invalid or expired token, revoked session)
// redirects the browser to the configured login URL with HTTP 302. The
// originally requested path, including its query string, is preserved in the
// redirect query parameter so the login flow can send the user back where
// they started.
func (h *Handler) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := h.sessionCookieValue(r)
		if err != nil {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("unauthenticated page request")
			h.redirectToLogin(w, r)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.Authenticate(ctx, tokenString)
		if err != nil {
			log.Debug().Err(err).Str("path", r.URL.Path).Msg("session rejected")
			h.redirectToLogin(w, r)
			return
		}

		// Store the authenticated identifiers in the context so downstream
		// handlers can retrieve them without re-parsing the token.
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)
		ctx = context.WithValue(ctx, utils.SessionIDCtxKey, token.SessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionCookieValue extracts the raw token string from the session cookie.
//
// It returns the following sentinel errors:
//   - [ErrNoSessionCookie] — if the cookie is absent from the request.
//   - [ErrEmptySessionCookie] — if the cookie exists but holds no value.
func (h *Handler) sessionCookieValue(r *http.Request) (string, error) {
	cookie, err := r.Cookie(h.settings.Login.CookieName)
	if err != nil {
		return "", ErrNoSessionCookie
	}

	if cookie.Value == "" {
		return "", ErrEmptySessionCookie
	}

	return cookie.Value, nil
}

// redirectToLogin sends the browser to the login URL, carrying the original
// request path and query in the configured redirect parameter.
func (h *Handler) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	original := r.URL.Path
	if r.URL.RawQuery != "" {
		original += "?" + r.URL.RawQuery
	}

	params := url.Values{}
	params.Set(h.settings.Login.RedirectParam, original)

	http.Redirect(w, r, h.settings.Login.URL+"?"+params.Encode(), http.StatusFound)
}

// safeRedirectTarget returns target when it is a local path and the fallback
// otherwise. Protocol-relative ("//host") and absolute URLs are rejected so
// the login flow cannot be abused as an open redirect.
func safeRedirectTarget(target, fallback string) string {
	if target == "" {
		return fallback
	}
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	if strings.Contains(target, "\\") {
		return fallback
	}

	return target
}
