// Package playwrightroute provides a browser implementation with request
// interception using playwright-go page routes.
package playwrightroute

import (
	"context"
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/user/routemock/pkg/ports"
)

// Browser implements ports.Browser using playwright. Interception hooks
// map directly onto page.Route, which shares the engine's glob semantics
// and most-recently-registered precedence.
type Browser struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	mu       sync.Mutex
	handlers map[string]func(playwright.Route)
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{
		handlers: make(map[string]func(playwright.Route)),
	}
}

// Launch starts the browser with the given options. The playwright
// driver must be installed (`playwright install chromium`).
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("start playwright: %w", err)
	}
	b.pw = pw

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
	}
	if opts.ChromePath != "" {
		launchOpts.ExecutablePath = playwright.String(opts.ChromePath)
	}
	if opts.ProxyServer != "" {
		launchOpts.Proxy = &playwright.Proxy{Server: opts.ProxyServer}
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		b.pw.Stop()
		return fmt.Errorf("launch browser: %w", err)
	}
	b.browser = browser

	contextOpts := playwright.BrowserNewContextOptions{}
	if opts.IgnoreHTTPSErrors {
		contextOpts.IgnoreHttpsErrors = playwright.Bool(true)
	}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = playwright.String(opts.UserAgent)
	}
	if len(opts.Headers) > 0 {
		contextOpts.ExtraHttpHeaders = opts.Headers
	}

	browserCtx, err := browser.NewContext(contextOpts)
	if err != nil {
		b.Close()
		return fmt.Errorf("create context: %w", err)
	}
	b.context = browserCtx

	page, err := browserCtx.NewPage()
	if err != nil {
		b.Close()
		return fmt.Errorf("create page: %w", err)
	}
	b.page = page

	return nil
}

// RegisterInterception installs a route for the URL pattern.
func (b *Browser) RegisterInterception(urlPattern string, handler ports.InterceptionHandler) error {
	if b.page == nil {
		return fmt.Errorf("browser not launched")
	}

	wrapped := func(route playwright.Route) {
		handler(&pwRoute{route: route})
	}

	b.mu.Lock()
	b.handlers[urlPattern] = wrapped
	b.mu.Unlock()

	if err := b.page.Route(urlPattern, wrapped); err != nil {
		b.mu.Lock()
		delete(b.handlers, urlPattern)
		b.mu.Unlock()
		return fmt.Errorf("install route for %q: %w", urlPattern, err)
	}
	return nil
}

// UnregisterInterception removes the route for the pattern.
func (b *Browser) UnregisterInterception(urlPattern string) error {
	if b.page == nil {
		return nil
	}

	b.mu.Lock()
	wrapped, ok := b.handlers[urlPattern]
	delete(b.handlers, urlPattern)
	b.mu.Unlock()
	if !ok {
		return nil
	}

	if err := b.page.Unroute(urlPattern, wrapped); err != nil {
		return fmt.Errorf("remove route for %q: %w", urlPattern, err)
	}
	return nil
}

// Navigate loads the specified URL.
func (b *Browser) Navigate(url string) error {
	if b.page == nil {
		return fmt.Errorf("browser not launched")
	}
	if _, err := b.page.Goto(url); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}
	return nil
}

// Close shuts down the browser and the playwright driver.
func (b *Browser) Close() error {
	if b.context != nil {
		b.context.Close()
		b.context = nil
	}
	if b.browser != nil {
		b.browser.Close()
		b.browser = nil
	}
	if b.pw != nil {
		b.pw.Stop()
		b.pw = nil
	}
	return nil
}

// pwRoute adapts a playwright route to the engine's control object.
type pwRoute struct {
	route playwright.Route
}

// Request returns the intercepted request.
func (r *pwRoute) Request() ports.InterceptedRequest {
	req := r.route.Request()

	headers := req.Headers()
	body := ""
	if data, err := req.PostData(); err == nil {
		body = data
	}

	return ports.InterceptedRequest{
		Method:  req.Method(),
		URL:     req.URL(),
		Headers: headers,
		Body:    body,
	}
}

// Continue forwards the request to the network unmodified.
func (r *pwRoute) Continue() error {
	return r.route.Continue()
}

// Fulfill resolves the request with a synthesized response.
func (r *pwRoute) Fulfill(status int, headers map[string]string, body []byte) error {
	return r.route.Fulfill(playwright.RouteFulfillOptions{
		Status:  playwright.Int(status),
		Headers: headers,
		Body:    body,
	})
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)

// Ensure pwRoute implements ports.Route
var _ ports.Route = (*pwRoute)(nil)
