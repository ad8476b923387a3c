// Package http implements the HTTP transport layer of the portal.
//
// It exposes route wiring, page and API handlers, and middleware.
// Cross-cutting concerns such as session authentication, request tracing,
// access logging, response compression, security headers, and the anti-bot
// form trap are handled in this package before requests are delegated to
// the service layer.
package http
