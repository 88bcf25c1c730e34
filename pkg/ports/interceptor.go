// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"strings"
)

// InterceptedRequest is a read-only view of a request paused by the
// browser's interception layer. The engine consumes it for matching only
// and never mutates the underlying request.
type InterceptedRequest struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    string
}

// Header returns the value for the given header name, case-insensitively.
func (r InterceptedRequest) Header(name string) string {
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Route is the per-request control object handed to an interception
// handler. Exactly one of Continue or Fulfill must be called; the browser
// keeps the request suspended until then.
type Route interface {
	// Request returns the intercepted request.
	Request() InterceptedRequest

	// Continue forwards the request unmodified through the normal path
	// (real network or default handling).
	Continue() error

	// Fulfill resolves the request with a synthesized response instead of
	// forwarding it.
	Fulfill(status int, headers map[string]string, body []byte) error
}

// InterceptionHandler is invoked once per request matching the pattern it
// was registered for.
type InterceptionHandler func(route Route)

// Interceptor abstracts the browser-side request interception layer.
type Interceptor interface {
	// RegisterInterception installs a handler scoped to the given URL
	// pattern. Patterns use glob syntax: '*' matches within a path
	// segment, '**' across segments, '?' a single character.
	RegisterInterception(urlPattern string, handler InterceptionHandler) error

	// UnregisterInterception removes a previously installed hook.
	// Removing an unknown pattern is not an error.
	UnregisterInterception(urlPattern string) error
}

// Browser abstracts browser automation for mock-backed page sessions.
type Browser interface {
	Interceptor

	// Launch starts the browser with the given options.
	Launch(ctx context.Context, opts BrowserOptions) error

	// Navigate loads the specified URL.
	Navigate(url string) error

	// Close shuts down the browser. All interception hooks are released.
	Close() error
}

// BrowserOptions configures browser launch settings.
type BrowserOptions struct {
	Headless          bool
	ChromePath        string
	UserAgent         string
	Headers           map[string]string
	IgnoreHTTPSErrors bool   // Ignore HTTPS certificate errors
	ProxyServer       string // HTTP proxy server (e.g., "http://proxy:8080")
	Incognito         bool   // Run browser in incognito mode (default: true)
}
