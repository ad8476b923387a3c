package http

import (
	"net/http"

	"github.com/MKhiriev/go-benefit-portal/internal/logger"
)

// withHoneypot is an HTTP middleware that applies the anti-bot form trap to
// POST requests carrying form data.
//
// Every form rendered by the portal includes a hidden field, named by the
// honeypot settings fragment, that a human never fills in. A submission with
// a non-empty value in that field is answered with the fixed 403 template
// and is not passed to the wrapped handler. The page never varies and no
// state is recorded, so a bot probing the form learns nothing from the
// response.
//
// Requests without the field, or with an empty value, pass through
// untouched.
func (h *Handler) withHoneypot(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && h.honeypotTripped(r) {
			log := logger.FromRequest(r)
			log.Warn().Str("path", r.URL.Path).Msg("honeypot field submitted")

			h.renderForbidden(w, r)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// honeypotTripped reports whether the request's form data carries a
// non-empty value in the honeypot field.
func (h *Handler) honeypotTripped(r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		// unparseable bodies fall through to the handler's own validation
		return false
	}

	return r.PostForm.Get(h.settings.Honeypot.FieldName) != ""
}

// renderForbidden writes the fixed 403 page.
func (h *Handler) renderForbidden(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, http.StatusForbidden, "403.html", nil); err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	}
}
