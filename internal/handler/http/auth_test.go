package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-benefit-portal/internal/service"
	"github.com/MKhiriev/go-benefit-portal/internal/store"
	"github.com/MKhiriev/go-benefit-portal/models"
)

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegister_Success(t *testing.T) {
	auth := &stubAuthService{
		registerUserFunc: func(ctx context.Context, user models.User) (models.User, error) {
			assert.Equal(t, "john", user.Login)
			user.UserID = 1
			return user, nil
		},
		createSessionFunc: func(ctx context.Context, user models.User) (models.Token, error) {
			return models.Token{SignedString: "issued-token"}, nil
		},
	}
	router := newTestRouter(t, auth, testSettings())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/register", `{"login":"john","password":"s3cret"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "issued-token", cookies[0].Value)
}

func TestRegister_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{"invalid json", `{"login":`, nil, http.StatusBadRequest},
		{"invalid data", `{"login":""}`, service.ErrInvalidDataProvided, http.StatusBadRequest},
		{"login taken", `{"login":"john","password":"pw"}`, store.ErrLoginAlreadyExists, http.StatusConflict},
		{"storage failure", `{"login":"john","password":"pw"}`, store.ErrExecutingQuery, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := &stubAuthService{
				registerUserFunc: func(ctx context.Context, user models.User) (models.User, error) {
					return models.User{}, tt.serviceErr
				},
			}
			router := newTestRouter(t, auth, testSettings())

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/register", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAPILogin_Success(t *testing.T) {
	auth := &stubAuthService{
		loginFunc: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{UserID: 42, Login: user.Login}, nil
		},
		createSessionFunc: func(ctx context.Context, user models.User) (models.Token, error) {
			return models.Token{SignedString: "issued-token"}, nil
		},
	}
	router := newTestRouter(t, auth, testSettings())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/login", `{"login":"john","password":"s3cret"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "portal_session", cookies[0].Name)
}

func TestAPILogin_WrongCredentials(t *testing.T) {
	auth := &stubAuthService{
		loginFunc: func(ctx context.Context, user models.User) (models.User, error) {
			return models.User{}, service.ErrWrongPassword
		},
	}
	router := newTestRouter(t, auth, testSettings())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, jsonRequest(http.MethodPost, "/api/user/login", `{"login":"john","password":"wrong"}`))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
