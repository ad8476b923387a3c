package http

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-benefit-portal/internal/analytics"
	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/render"
	"github.com/MKhiriev/go-benefit-portal/internal/service"
	"github.com/MKhiriev/go-benefit-portal/models"
)

type stubAuthService struct {
	registerUserFunc  func(ctx context.Context, user models.User) (models.User, error)
	loginFunc         func(ctx context.Context, user models.User) (models.User, error)
	createSessionFunc func(ctx context.Context, user models.User) (models.Token, error)
	authenticateFunc  func(ctx context.Context, tokenString string) (models.Token, error)
	logoutFunc        func(ctx context.Context, sessionID string) error
}

func (s *stubAuthService) RegisterUser(ctx context.Context, user models.User) (models.User, error) {
	return s.registerUserFunc(ctx, user)
}

func (s *stubAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	return s.loginFunc(ctx, user)
}

func (s *stubAuthService) CreateSession(ctx context.Context, user models.User) (models.Token, error) {
	return s.createSessionFunc(ctx, user)
}

func (s *stubAuthService) Authenticate(ctx context.Context, tokenString string) (models.Token, error) {
	return s.authenticateFunc(ctx, tokenString)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFunc(ctx, sessionID)
}

type stubAppInfoService struct {
	version string
}

func (s *stubAppInfoService) GetAppVersion(ctx context.Context) string {
	return s.version
}

func testSettings() *config.Settings {
	settings := &config.Settings{}
	settings.Base.HTTPAddress = ":8080"
	settings.Base.Version = "1.0.0"
	settings.Apps.Installed = []string{"pages", "api", "analytics"}
	settings.Locale.Language = "da"
	settings.Login.URL = "/login"
	settings.Login.RedirectParam = "next"
	settings.Login.CookieName = "portal_session"
	settings.Login.SessionDuration = 30 * time.Minute
	settings.StaticFiles.URLPrefix = "/static/"
	settings.Honeypot.FieldName = "asmd"
	settings.CSP.DefaultSrc = []string{"'self'"}
	return settings
}

func newTestRouter(t *testing.T, auth service.AuthService, settings *config.Settings) *chi.Mux {
	t.Helper()

	renderer, err := render.NewRenderer(config.Templates{}, logger.Nop())
	require.NoError(t, err)

	services := &service.Services{
		AuthService:    auth,
		AppInfoService: &stubAppInfoService{version: settings.Base.Version},
	}
	tracker := analytics.NewTracker("", 0, nil, logger.Nop())

	return NewHandler(services, renderer, tracker, settings, logger.Nop()).Init()
}
