// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"

	"github.com/user/routemock/pkg/ports"
	"github.com/user/routemock/pkg/rules"
)

// Browser is a mock implementation of ports.Browser. In addition to the
// usual Func-field overrides, it records interception hooks and can
// replay synthetic requests through them with Fire.
type Browser struct {
	LaunchFunc               func(ctx context.Context, opts ports.BrowserOptions) error
	NavigateFunc             func(url string) error
	RegisterInterceptionFunc func(urlPattern string, handler ports.InterceptionHandler) error
	UnregisterFunc           func(urlPattern string) error
	CloseFunc                func() error

	mu    sync.Mutex
	hooks []hook
}

type hook struct {
	pattern string
	handler ports.InterceptionHandler
}

func (m *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	if m.LaunchFunc != nil {
		return m.LaunchFunc(ctx, opts)
	}
	return nil
}

func (m *Browser) Navigate(url string) error {
	if m.NavigateFunc != nil {
		return m.NavigateFunc(url)
	}
	return nil
}

func (m *Browser) RegisterInterception(urlPattern string, handler ports.InterceptionHandler) error {
	if m.RegisterInterceptionFunc != nil {
		if err := m.RegisterInterceptionFunc(urlPattern, handler); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.hooks = append(m.hooks, hook{pattern: urlPattern, handler: handler})
	m.mu.Unlock()
	return nil
}

func (m *Browser) UnregisterInterception(urlPattern string) error {
	if m.UnregisterFunc != nil {
		if err := m.UnregisterFunc(urlPattern); err != nil {
			return err
		}
	}
	m.mu.Lock()
	kept := m.hooks[:0]
	for _, h := range m.hooks {
		if h.pattern != urlPattern {
			kept = append(kept, h)
		}
	}
	m.hooks = kept
	m.mu.Unlock()
	return nil
}

func (m *Browser) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	m.mu.Lock()
	m.hooks = nil
	m.mu.Unlock()
	return nil
}

// Hooks returns the patterns with an installed interception hook, in
// registration order.
func (m *Browser) Hooks() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	patterns := make([]string, 0, len(m.hooks))
	for _, h := range m.hooks {
		patterns = append(patterns, h.pattern)
	}
	return patterns
}

// Outcome describes how a fired request was resolved.
type Outcome struct {
	Handled   bool // a hook matched the URL
	Fulfilled bool // the handler fulfilled instead of continuing
	Status    int
	Headers   map[string]string
	Body      []byte
}

// Fire simulates the browser pausing a request: it runs the request
// through the most recently registered hook whose pattern matches the
// URL and reports what the handler decided. A request matching no hook
// is reported as unhandled, mirroring a browser that never pauses it.
func (m *Browser) Fire(req ports.InterceptedRequest) Outcome {
	m.mu.Lock()
	var handler ports.InterceptionHandler
	for i := len(m.hooks) - 1; i >= 0; i-- {
		if rules.MatchURL(m.hooks[i].pattern, req.URL) {
			handler = m.hooks[i].handler
			break
		}
	}
	m.mu.Unlock()

	if handler == nil {
		return Outcome{}
	}

	route := &fakeRoute{req: req}
	handler(route)
	return Outcome{
		Handled:   true,
		Fulfilled: route.fulfilled,
		Status:    route.status,
		Headers:   route.headers,
		Body:      route.body,
	}
}

// fakeRoute captures the handler's decision for inspection.
type fakeRoute struct {
	req       ports.InterceptedRequest
	fulfilled bool
	status    int
	headers   map[string]string
	body      []byte
}

func (r *fakeRoute) Request() ports.InterceptedRequest {
	return r.req
}

func (r *fakeRoute) Continue() error {
	return nil
}

func (r *fakeRoute) Fulfill(status int, headers map[string]string, body []byte) error {
	r.fulfilled = true
	r.status = status
	r.headers = headers
	r.body = body
	return nil
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)

// Ensure fakeRoute implements ports.Route
var _ ports.Route = (*fakeRoute)(nil)
