// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package render

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/MKhiriev/go-benefit-portal/internal/config"
	"github.com/MKhiriev/go-benefit-portal/internal/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer executes the portal's HTML templates. Templates are embedded in
// the binary; a non-empty Templates.Dir in the composed settings switches to
// an on-disk directory instead, which is convenient during development.
type Renderer struct {
	templates *template.Template
	logger    *logger.Logger
}

// NewRenderer parses every template with the filter function map installed.
func NewRenderer(cfg config.Templates, logger *logger.Logger) (*Renderer, error) {
	root := template.New("").Funcs(Filters())

	var (
		templates *template.Template
		err       error
	)
	if cfg.Dir != "" {
		templates, err = root.ParseGlob(cfg.Dir + "/*.html")
	} else {
		templates, err = root.ParseFS(templatesFS, "templates/*.html")
	}
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	return &Renderer{templates: templates, logger: logger}, nil
}

// Render executes the named template with status and data. The body is
// buffered by html/template internally per execution; an execution error
// after the header is written cannot be unwritten, so template data should
// be kept simple.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Err(err).Str("template", name).Msg("template execution failed")
		return fmt.Errorf("error executing template %s: %w", name, err)
	}

	return nil
}

// Has reports whether a template with the given name was parsed.
func (r *Renderer) Has(name string) bool {
	return r.templates.Lookup(name) != nil
}
