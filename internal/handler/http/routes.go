package http

import (
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router from the composed settings. The middleware chain
// and the registered route groups both follow the configuration: switching
// a middleware off or removing an app from the installed list removes it
// from the request path entirely.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	if h.settings.Middleware.TraceID {
		router.Use(h.withTraceID)
	}
	if h.settings.Middleware.RequestLogging {
		router.Use(h.withLogging)
	}
	if h.settings.Middleware.Gzip {
		router.Use(withGZip)
	}
	router.Use(h.withSecurityHeaders)

	// gated pages
	if h.appEnabled("pages") {
		router.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Get("/", h.root)
		})

		router.Group(func(r chi.Router) {
			r.Use(h.withHoneypot)
			r.Get(h.settings.Login.URL, h.loginPage)
			r.Post(h.settings.Login.URL, h.loginSubmit)
		})

		router.Get("/logout", h.logout)
	}

	// routes without authorization
	if h.appEnabled("api") {
		router.Group(func(r chi.Router) {
			r.Use(h.withHoneypot)
			r.Post("/api/user/register", h.register)
			r.Post("/api/user/login", h.login)
		})
		router.Get("/api/version", h.getServerVersion)
	}

	if dir := h.settings.StaticFiles.Dir; dir != "" {
		prefix := h.settings.StaticFiles.URLPrefix
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
		router.Handle(prefix+"*", fileServer)
	}

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) appEnabled(name string) bool {
	return slices.Contains(h.settings.Apps.Installed, name)
}
