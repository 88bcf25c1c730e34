// Package chromeintercept provides a browser implementation with request
// interception using chromedp and the CDP Fetch domain.
package chromeintercept

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/fetch"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/user/routemock/pkg/ports"
	"github.com/user/routemock/pkg/rules"
)

// Browser implements ports.Browser using chromedp. Every request the page
// issues is paused by the Fetch domain; paused requests matching a
// registered pattern are handed to that pattern's handler, all others
// continue to the network untouched.
type Browser struct {
	allocCtx    context.Context
	allocCancel context.CancelFunc
	ctx         context.Context
	cancel      context.CancelFunc

	hooksMu  sync.Mutex
	hooks    []hook
	launched bool
}

type hook struct {
	pattern string
	handler ports.InterceptionHandler
}

// New creates a new Browser.
func New() *Browser {
	return &Browser{}
}

// RegisterInterception installs a handler scoped to the URL pattern.
// Registering the same pattern again replaces the previous handler.
func (b *Browser) RegisterInterception(urlPattern string, handler ports.InterceptionHandler) error {
	if urlPattern == "" {
		return fmt.Errorf("url pattern must not be empty")
	}
	b.hooksMu.Lock()
	defer b.hooksMu.Unlock()

	for i := range b.hooks {
		if b.hooks[i].pattern == urlPattern {
			b.hooks[i].handler = handler
			return nil
		}
	}
	b.hooks = append(b.hooks, hook{pattern: urlPattern, handler: handler})
	return nil
}

// UnregisterInterception removes the hook for the pattern. Unknown
// patterns are a no-op.
func (b *Browser) UnregisterInterception(urlPattern string) error {
	b.hooksMu.Lock()
	defer b.hooksMu.Unlock()

	for i := range b.hooks {
		if b.hooks[i].pattern == urlPattern {
			b.hooks = append(b.hooks[:i], b.hooks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Launch starts the browser with the given options and enables request
// interception.
func (b *Browser) Launch(ctx context.Context, opts ports.BrowserOptions) error {
	// Start with default options but customize headless mode
	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("metrics-recording-only", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("safebrowsing-disable-auto-update", true),
	}

	if opts.Headless {
		// Use new headless mode for better compatibility
		chromedpOpts = append(chromedpOpts, chromedp.Flag("headless", "new"))
	}

	// Resolve Chrome path: CLI option → CHROME_PATH env → system defaults
	chromePath := ResolveChromePath(opts.ChromePath)
	if chromePath == "" {
		return fmt.Errorf("chrome not found: please install Chrome/Chromium, set CHROME_PATH environment variable, or use --chrome-path option")
	}
	chromedpOpts = append(chromedpOpts, chromedp.ExecPath(chromePath))

	// Incognito mode
	if opts.Incognito {
		chromedpOpts = append(chromedpOpts, chromedp.Flag("incognito", true))
	}

	if opts.UserAgent != "" {
		chromedpOpts = append(chromedpOpts, chromedp.UserAgent(opts.UserAgent))
	}

	// Ignore HTTPS certificate errors
	if opts.IgnoreHTTPSErrors {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("ignore-certificate-errors", true),
			chromedp.Flag("ignore-certificate-errors-spki-list", true),
			chromedp.Flag("allow-insecure-localhost", true))
	}

	// HTTP proxy server
	if opts.ProxyServer != "" {
		chromedpOpts = append(chromedpOpts,
			chromedp.Flag("proxy-server", opts.ProxyServer))
	}

	// Additional flags for server/background/container execution
	chromedpOpts = append(chromedpOpts,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-software-rasterizer", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("no-zygote", true),
	)

	b.allocCtx, b.allocCancel = chromedp.NewExecAllocator(ctx, chromedpOpts...)
	b.ctx, b.cancel = chromedp.NewContext(b.allocCtx)

	// Pause events arrive on the event loop; handle each on its own
	// goroutine so one suspended request never blocks the others.
	chromedp.ListenTarget(b.ctx, func(ev interface{}) {
		if pause, ok := ev.(*fetch.EventRequestPaused); ok {
			go b.handlePaused(pause)
		}
	})

	if err := chromedp.Run(b.ctx, fetch.Enable()); err != nil {
		return fmt.Errorf("enable interception: %w", err)
	}

	// Set custom headers if provided
	if len(opts.Headers) > 0 {
		headers := make(map[string]interface{})
		for k, v := range opts.Headers {
			headers[k] = v
		}
		if err := chromedp.Run(b.ctx, network.SetExtraHTTPHeaders(network.Headers(headers))); err != nil {
			return fmt.Errorf("set headers: %w", err)
		}
	}

	b.launched = true
	return nil
}

// Navigate loads the specified URL.
func (b *Browser) Navigate(url string) error {
	if !b.launched {
		return fmt.Errorf("browser not launched")
	}
	return chromedp.Run(b.ctx, chromedp.Navigate(url))
}

// Close shuts down the browser.
func (b *Browser) Close() error {
	// Cancel browser context first
	if b.cancel != nil {
		b.cancel()
	}

	// Give Chrome a moment to shut down gracefully, then force kill
	time.Sleep(100 * time.Millisecond)

	if b.allocCancel != nil {
		b.allocCancel()
	}

	return nil
}

// handlePaused routes one paused request to the most recently registered
// matching hook, or continues it to the network when nothing matches.
func (b *Browser) handlePaused(ev *fetch.EventRequestPaused) {
	c := chromedp.FromContext(b.ctx)
	ectx := cdp.WithExecutor(b.ctx, c.Target)

	req := requestFromEvent(ev)
	handler := b.lookup(req.URL)
	if handler == nil {
		fetch.ContinueRequest(ev.RequestID).Do(ectx)
		return
	}

	handler(&cdpRoute{ectx: ectx, id: ev.RequestID, req: req})
}

// lookup finds the handler for the URL, newest registration first.
func (b *Browser) lookup(url string) ports.InterceptionHandler {
	b.hooksMu.Lock()
	defer b.hooksMu.Unlock()

	for i := len(b.hooks) - 1; i >= 0; i-- {
		if rules.MatchURL(b.hooks[i].pattern, url) {
			return b.hooks[i].handler
		}
	}
	return nil
}

// requestFromEvent converts a pause event into the engine's read-only
// request view.
func requestFromEvent(ev *fetch.EventRequestPaused) ports.InterceptedRequest {
	headers := make(map[string]string, len(ev.Request.Headers))
	for k, v := range ev.Request.Headers {
		headers[k] = fmt.Sprint(v)
	}

	var body string
	if ev.Request.HasPostData {
		var buf []byte
		for _, entry := range ev.Request.PostDataEntries {
			if decoded, err := base64.StdEncoding.DecodeString(entry.Bytes); err == nil {
				buf = append(buf, decoded...)
			}
		}
		body = string(buf)
	}

	return ports.InterceptedRequest{
		Method:  ev.Request.Method,
		URL:     ev.Request.URL,
		Headers: headers,
		Body:    body,
	}
}

// cdpRoute is the per-request control object over the Fetch domain.
type cdpRoute struct {
	ectx context.Context
	id   fetch.RequestID
	req  ports.InterceptedRequest
}

// Request returns the intercepted request.
func (r *cdpRoute) Request() ports.InterceptedRequest {
	return r.req
}

// Continue forwards the request to the network unmodified.
func (r *cdpRoute) Continue() error {
	return fetch.ContinueRequest(r.id).Do(r.ectx)
}

// Fulfill resolves the request with a synthesized response.
func (r *cdpRoute) Fulfill(status int, headers map[string]string, body []byte) error {
	entries := make([]*fetch.HeaderEntry, 0, len(headers))
	for k, v := range headers {
		entries = append(entries, &fetch.HeaderEntry{Name: k, Value: v})
	}

	params := fetch.FulfillRequest(r.id, int64(status)).WithResponseHeaders(entries)
	if len(body) > 0 {
		params = params.WithBody(base64.StdEncoding.EncodeToString(body))
	}
	return params.Do(r.ectx)
}

// Ensure Browser implements ports.Browser
var _ ports.Browser = (*Browser)(nil)

// Ensure cdpRoute implements ports.Route
var _ ports.Route = (*cdpRoute)(nil)
