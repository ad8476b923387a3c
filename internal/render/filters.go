package render

import (
	"html/template"
	"net/url"

	"github.com/MKhiriev/go-benefit-portal/internal/analytics"
)

// URLParams encodes a parameter map as a form-encoded query string suitable
// for appending to a URL. Keys are emitted in sorted order and both keys and
// values are percent-escaped, so url.ParseQuery on the result yields the
// original map.
func URLParams(params map[string]string) string {
	values := make(url.Values, len(params))
	for key, value := range params {
		values.Set(key, value)
	}

	return values.Encode()
}

// Filters returns the function map installed into every parsed template.
func Filters() template.FuncMap {
	return template.FuncMap{
		"urlparams":  URLParams,
		"matomohost": analytics.HostOf,
	}
}
