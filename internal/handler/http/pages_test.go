package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-benefit-portal/internal/service"
	"github.com/MKhiriev/go-benefit-portal/models"
)

// ─────────────────────────────────────────────
// gated landing page
// ─────────────────────────────────────────────

func TestRoot_Authenticated_RendersPage(t *testing.T) {
	auth := &stubAuthService{
		authenticateFunc: func(ctx context.Context, tokenString string) (models.Token, error) {
			assert.Equal(t, "valid-token", tokenString)
			return models.Token{UserID: 42, SessionID: "sess-1"}, nil
		},
	}
	router := newTestRouter(t, auth, testSettings())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "valid-token"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Benefit Portal")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestRoot_Unauthenticated_RedirectsPreservingPath(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		cookie  *http.Cookie
		authErr error
	}{
		{"no cookie", "/", nil, nil},
		{"empty cookie", "/", &http.Cookie{Name: "portal_session", Value: ""}, nil},
		{"rejected token", "/", &http.Cookie{Name: "portal_session", Value: "stale"}, service.ErrTokenIsExpiredOrInvalid},
		{"revoked session", "/?tab=2", &http.Cookie{Name: "portal_session", Value: "revoked"}, service.ErrSessionRevoked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &stubAuthService{
				authenticateFunc: func(ctx context.Context, tokenString string) (models.Token, error) {
					return models.Token{}, tt.authErr
				},
			}
			router := newTestRouter(t, auth, testSettings())

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusFound, rec.Code)

			location, err := url.Parse(rec.Header().Get("Location"))
			require.NoError(t, err)
			assert.Equal(t, "/login", location.Path)
			assert.Equal(t, tt.target, location.Query().Get("next"))
		})
	}
}

// ─────────────────────────────────────────────
// login flow
// ─────────────────────────────────────────────

func TestLoginPage_RendersFormWithHoneypotField(t *testing.T) {
	router := newTestRouter(t, &stubAuthService{}, testSettings())

	req := httptest.NewRequest(http.MethodGet, "/login?next=%2F%3Ftab%3D2", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="asmd"`)
	assert.Contains(t, body, "next=%2F%3Ftab%3D2")
}

func loginForm(values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginSubmit_Success_SetsCookieAndRedirects(t *testing.T) {
	auth := &stubAuthService{
		loginFunc: func(ctx context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "john", user.Login)
			assert.Equal(t, "s3cret", user.Password)
			return models.User{UserID: 42, Login: "john"}, nil
		},
		createSessionFunc: func(ctx context.Context, user models.User) (models.Token, error) {
			return models.Token{SignedString: "issued-token", SessionID: "sess-1", UserID: user.UserID}, nil
		},
	}
	router := newTestRouter(t, auth, testSettings())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, loginForm(url.Values{"login": {"john"}, "password": {"s3cret"}}))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_session", cookies[0].Name)
	assert.Equal(t, "issued-token", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}

func TestLoginSubmit_RedirectTargets(t *testing.T) {
	tests := []struct {
		name string
		next string
		want string
	}{
		{"local path", "/benefits/2026", "/benefits/2026"},
		{"local path with query", "/?tab=2", "/?tab=2"},
		{"absolute url rejected", "https://evil.example", "/"},
		{"protocol-relative rejected", "//evil.example", "/"},
		{"backslash rejected", "/\\evil.example", "/"},
		{"empty", "", "/"},
	}

	auth := &stubAuthService{
		loginFunc: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{UserID: 42}, nil
		},
		createSessionFunc: func(ctx context.Context, user models.User) (models.Token, error) {
			return models.Token{SignedString: "issued-token"}, nil
		},
	}
	router := newTestRouter(t, auth, testSettings())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/login"
			if tt.next != "" {
				target += "?next=" + url.QueryEscape(tt.next)
			}
			req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(url.Values{"login": {"john"}, "password": {"pw"}}.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestLoginSubmit_WrongCredentials_RendersFormAgain(t *testing.T) {
	auth := &stubAuthService{
		loginFunc: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}
	router := newTestRouter(t, auth, testSettings())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, loginForm(url.Values{"login": {"john"}, "password": {"wrong"}}))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Wrong login or password.")
	assert.Empty(t, rec.Result().Cookies())
}

func TestLoginSubmit_UnexpectedServiceError(t *testing.T) {
	auth := &stubAuthService{
		loginFunc: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, errors.New("db down")
		},
	}
	router := newTestRouter(t, auth, testSettings())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, loginForm(url.Values{"login": {"john"}, "password": {"pw"}}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// ─────────────────────────────────────────────
// logout
// ─────────────────────────────────────────────

func TestLogout_RevokesSessionAndClearsCookie(t *testing.T) {
	var revoked string
	auth := &stubAuthService{
		authenticateFunc: func(ctx context.Context, tokenString string) (models.Token, error) {
			return models.Token{UserID: 42, SessionID: "sess-1"}, nil
		},
		logoutFunc: func(ctx context.Context, sessionID string) error {
			revoked = sessionID
			return nil
		},
	}
	router := newTestRouter(t, auth, testSettings())

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "portal_session", Value: "valid-token"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, "sess-1", revoked)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestLogout_WithoutSessionStillRedirects(t *testing.T) {
	router := newTestRouter(t, &stubAuthService{}, testSettings())

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

// ─────────────────────────────────────────────
// honeypot
// ─────────────────────────────────────────────

func TestHoneypot_FilledFieldAlwaysForbidden(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"login form with real credentials", url.Values{"login": {"john"}, "password": {"s3cret"}, "asmd": {"gotcha"}}},
		{"login form with garbage", url.Values{"asmd": {"x"}}},
		{"whitespace still trips", url.Values{"asmd": {" "}}},
	}

	// the service must never be reached
	auth := &stubAuthService{
		loginFunc: func(ctx context.Context, user models.User) (models.User, error) {
			t.Fatal("login service called for a trapped request")
			return models.User{}, nil
		},
	}
	router := newTestRouter(t, auth, testSettings())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, loginForm(tt.values))

			require.Equal(t, http.StatusForbidden, rec.Code)
			assert.Contains(t, rec.Body.String(), "403 Forbidden")
		})
	}
}

func TestHoneypot_EmptyFieldPassesThrough(t *testing.T) {
	auth := &stubAuthService{
		loginFunc: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{UserID: 1}, nil
		},
		createSessionFunc: func(ctx context.Context, user models.User) (models.Token, error) {
			return models.Token{SignedString: "tok"}, nil
		},
	}
	router := newTestRouter(t, auth, testSettings())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, loginForm(url.Values{"login": {"john"}, "password": {"pw"}, "asmd": {""}}))

	assert.Equal(t, http.StatusFound, rec.Code)
}
