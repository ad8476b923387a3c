package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-benefit-portal/internal/logger"
	"github.com/MKhiriev/go-benefit-portal/internal/service"
	"github.com/MKhiriev/go-benefit-portal/internal/store"
	"github.com/MKhiriev/go-benefit-portal/internal/utils"
	"github.com/MKhiriev/go-benefit-portal/models"
)

// root renders the portal landing page. The route is wrapped in
// requireSession, so by the time this handler runs the request always
// carries an authenticated user.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		sessionID, _ := utils.GetSessionIDFromContext(r.Context())
		log.Debug().Int64("user_id", userID).Str("session_id", sessionID).Msg("landing page requested")
	}

	if h.tracker.Enabled() {
		pageURL := "https://" + r.Host + r.URL.RequestURI()
		// the hit must outlive the request
		go h.tracker.Track(context.WithoutCancel(r.Context()), pageURL)
	}

	data := map[string]any{
		"Language":  h.settings.Locale.Language,
		"StaticURL": h.settings.StaticFiles.URLPrefix,
		"UserName":  "",
		"Matomo":    h.settings.Matomo,
	}

	if err := h.renderer.Render(w, http.StatusOK, "root.html", data); err != nil {
		log.Err(err).Msg("rendering landing page failed")
	}
}

// loginPage renders the sign-in form. A redirect parameter present on the
// request is carried through to the form action so a successful login can
// return the user to the page they originally asked for.
func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLoginPage(w, r, "")
}

func (h *Handler) renderLoginPage(w http.ResponseWriter, r *http.Request, errorMessage string) {
	log := logger.FromRequest(r)

	var nextParams map[string]string
	if next := r.URL.Query().Get(h.settings.Login.RedirectParam); next != "" {
		nextParams = map[string]string{h.settings.Login.RedirectParam: next}
	}

	status := http.StatusOK
	if errorMessage != "" {
		status = http.StatusUnauthorized
	}

	data := map[string]any{
		"Language":      h.settings.Locale.Language,
		"StaticURL":     h.settings.StaticFiles.URLPrefix,
		"HoneypotField": h.settings.Honeypot.FieldName,
		"NextParams":    nextParams,
		"Error":         errorMessage,
	}

	if err := h.renderer.Render(w, status, "login.html", data); err != nil {
		log.Err(err).Msg("rendering login page failed")
	}
}

// loginSubmit handles the sign-in form submission. The honeypot middleware
// has already rejected bot submissions before this handler runs.
//
// On success a session is created, the session cookie is set, and the
// browser is redirected to the originally requested page (validated to be
// a local path) or the portal root.
func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("unparseable login form")
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	user := models.User{
		Login:    r.PostForm.Get("login"),
		Password: r.PostForm.Get("password"),
	}

	foundUser, err := h.services.AuthService.Login(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.renderLoginPage(w, r, "Enter both login and password.")
		case errors.Is(err, store.ErrNoUserWasFound), errors.Is(err, service.ErrWrongPassword):
			log.Debug().Str("login", user.Login).Msg("failed sign-in attempt")
			h.renderLoginPage(w, r, "Wrong login or password.")
		default:
			log.Err(err).Msg("unexpected error occurred during sign-in")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	token, err := h.services.AuthService.CreateSession(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of session failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, token)

	next := r.URL.Query().Get(h.settings.Login.RedirectParam)
	http.Redirect(w, r, safeRedirectTarget(next, "/"), http.StatusFound)
}

// logout revokes the current session, clears the cookie and sends the
// browser back to the login page. A request without a valid session still
// clears the cookie; logout is idempotent.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if tokenString, err := h.sessionCookieValue(r); err == nil {
		if token, err := h.services.AuthService.Authenticate(ctx, tokenString); err == nil {
			if err := h.services.AuthService.Logout(ctx, token.SessionID); err != nil {
				log.Err(err).Str("session_id", token.SessionID).Msg("session revocation failed")
			}
		}
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, h.settings.Login.URL, http.StatusFound)
}

// setSessionCookie writes the session cookie carrying the signed token.
// The cookie lifetime matches the token's "exp" claim.
func (h *Handler) setSessionCookie(w http.ResponseWriter, token models.Token) {
	cookie := &http.Cookie{
		Name:     h.settings.Login.CookieName,
		Value:    token.String(),
		Path:     "/",
		HttpOnly: true,
		Secure:   h.settings.Login.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if token.ExpiresAt != nil {
		cookie.Expires = token.ExpiresAt.Time
	}

	http.SetCookie(w, cookie)
}

// clearSessionCookie overwrites the session cookie with an expired one.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     h.settings.Login.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.settings.Login.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
