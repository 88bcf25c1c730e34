// Package main provides the CLI entry point for routemock.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/routemock/pkg/adapters/chromeintercept"
	"github.com/user/routemock/pkg/adapters/filesink"
	"github.com/user/routemock/pkg/adapters/logger"
	"github.com/user/routemock/pkg/adapters/nullsink"
	"github.com/user/routemock/pkg/adapters/osfilesystem"
	"github.com/user/routemock/pkg/adapters/playwrightroute"
	"github.com/user/routemock/pkg/config"
	"github.com/user/routemock/pkg/engine"
	"github.com/user/routemock/pkg/ports"
	"github.com/user/routemock/pkg/report"
	"github.com/user/routemock/pkg/session"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "routemock",
		Usage:   l10n.T("Run a page against a declarative suite of mocked network responses"),
		Version: version,
		Commands: []*cli.Command{
			runCommand(),
			validateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     l10n.T("Load a suite, open the page, and report rule activity"),
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "suite", Aliases: []string{"s"}, Required: true, Usage: l10n.T("Mock suite YAML file")},
			&cli.StringFlag{Name: "wait-for", Usage: l10n.T("Rule id to wait for after navigation")},
			&cli.IntFlag{Name: "wait-count", Value: 1, Usage: l10n.T("Fulfillment count to wait for")},
			&cli.IntFlag{Name: "timeout-ms", Value: 30000, Usage: l10n.T("Wait timeout in milliseconds")},
			&cli.IntFlag{Name: "settle-ms", Value: 2000, Usage: l10n.T("Time to keep the page open when no rule is waited on")},
			&cli.StringFlag{Name: "backend", Value: "chromedp", Usage: l10n.T("Interception backend (chromedp or playwright)")},
			&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run browser in non-headless mode")},
			&cli.StringFlag{Name: "chrome-path", Usage: l10n.T("Path to Chrome executable (falls back to CHROME_PATH env, then system default)")},
			&cli.BoolFlag{Name: "ignore-https-errors", Usage: l10n.T("Ignore HTTPS certificate errors")},
			&cli.StringFlag{Name: "proxy-server", Usage: l10n.T("HTTP proxy server (e.g., http://proxy:8080)")},
			&cli.StringFlag{Name: "transcript", Usage: l10n.T("Append a JSONL transcript of interception decisions to this file")},
			&cli.BoolFlag{Name: "markdown", Usage: l10n.T("Print the summary as a Markdown table")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Action: runAction,
	}
}

func validateCommand() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     l10n.T("Check a suite file without launching a browser"),
		ArgsUsage: "SUITE",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one suite file argument")
			}
			path := c.Args().First()
			suite, err := config.LoadFromFile(path)
			if err != nil {
				return err
			}
			fmt.Println(l10n.F("Suite %q is valid (%d rules)", suite.Name, len(suite.Rules)))
			return nil
		},
	}
}

func runAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one URL argument")
	}
	url := c.Args().First()

	suite, err := config.LoadFromFile(c.String("suite"))
	if err != nil {
		return err
	}

	var log ports.Logger
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		log = logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	browser, err := newBrowser(c.String("backend"))
	if err != nil {
		return err
	}

	var sink ports.TrafficSink
	if path := c.String("transcript"); path != "" {
		sink = filesink.New(path, osfilesystem.New())
	} else {
		sink = nullsink.New()
	}

	opts := ports.BrowserOptions{
		Headless:          !c.Bool("no-headless"),
		ChromePath:        c.String("chrome-path"),
		IgnoreHTTPSErrors: c.Bool("ignore-https-errors"),
		ProxyServer:       c.String("proxy-server"),
		Incognito:         true,
	}
	if err := browser.Launch(ctx, opts); err != nil {
		return fmt.Errorf("launch browser: %w", err)
	}
	defer browser.Close()

	sess := session.New(browser, sink, log)
	defer sess.Close()
	sess.SetPage(url)

	log.Info(l10n.F("Installing %d mock rules", len(suite.Rules)))
	for _, rc := range suite.Rules {
		id, rule, err := rc.ToRule()
		if err != nil {
			return err
		}
		if err := sess.AddRule(id, rule); err != nil {
			return fmt.Errorf("install rule %q: %w", id, err)
		}
	}
	log.Info(l10n.T("Mock rules installed"))

	log.Info(l10n.F("Navigating to %s", url))
	if err := browser.Navigate(url); err != nil {
		return fmt.Errorf("navigate: %w", err)
	}

	if ruleID := c.String("wait-for"); ruleID != "" {
		timeout := time.Duration(c.Int("timeout-ms")) * time.Millisecond
		if err := sess.WaitForCount(ctx, ruleID, c.Int("wait-count"), timeout); err != nil {
			// Print what happened before failing so a timeout is debuggable.
			var te *engine.TimeoutError
			if errors.As(err, &te) {
				printSummary(c, sess.Summary())
			}
			return err
		}
	} else {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(c.Int("settle-ms")) * time.Millisecond):
		}
	}

	printSummary(c, sess.Summary())
	return nil
}

func newBrowser(backend string) (ports.Browser, error) {
	switch backend {
	case "chromedp", "":
		return chromeintercept.New(), nil
	case "playwright":
		return playwrightroute.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (expected chromedp or playwright)", backend)
	}
}

func printSummary(c *cli.Context, summary *report.Summary) {
	var formatter report.Formatter
	if c.Bool("markdown") {
		formatter = report.NewMarkdownFormatter()
	} else {
		formatter = report.NewTextFormatter()
	}
	fmt.Println(formatter.Format(summary))
}
