// Package cdpdriver is the out-of-process backend for the harness
// contracts, driving a live Chrome tab over the DevTools protocol with
// chromedp. Elements are addressed by JS expressions re-evaluated on
// every operation, so handles observe the current tree and report
// staleness when their node has been detached.
package cdpdriver

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/glasswing-ui/glasswing/harness"
	"github.com/glasswing-ui/glasswing/internal/config"
)

// ScriptRunner is what the element layer needs from the driver: script
// evaluation with a JSON-decoded result, and raw chromedp input actions.
// Tests substitute a fake to exercise element logic without a browser.
type ScriptRunner interface {
	// Evaluate runs the expression in the page, awaiting promises, and
	// decodes the result into out when out is non-nil.
	Evaluate(ctx context.Context, expression string, out any) error
	// RunActions executes chromedp actions against the tab, combining the
	// operational context with the tab's lifetime context.
	RunActions(ctx context.Context, actions ...chromedp.Action) error
}

// Driver owns one browser tab and exposes harness environments scoped to
// it.
type Driver struct {
	logger    *zap.Logger
	runner    ScriptRunner
	sessionID string

	stabilizeBudget time.Duration
	navTimeout      time.Duration

	idSeq uint64

	allocCancel context.CancelFunc
	tabCancel   context.CancelFunc
}

// New launches a browser tab per the configuration and binds a driver to
// it. Close releases the tab and the allocator.
func New(ctx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Driver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	if !cfg.Headless {
		opts = append(opts, chromedp.Flag("headless", false))
	}
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.IgnoreTLSErrors {
		opts = append(opts, chromedp.Flag("ignore-certificate-errors", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	// Force the browser to start now so a broken environment fails fast.
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	d := &Driver{
		logger:          logger.Named("cdpdriver"),
		sessionID:       uuid.NewString(),
		stabilizeBudget: cfg.StabilizeBudget,
		navTimeout:      cfg.NavTimeout,
		allocCancel:     allocCancel,
		tabCancel:       tabCancel,
	}
	d.runner = &chromedpRunner{tab: tabCtx}
	d.logger.Debug("Browser session started.", zap.String("session_id", d.sessionID))
	return d, nil
}

// NewWithRunner binds a driver to an existing runner. Used by tests and
// by callers that manage their own chromedp contexts.
func NewWithRunner(runner ScriptRunner, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		logger:          logger.Named("cdpdriver"),
		runner:          runner,
		sessionID:       uuid.NewString(),
		stabilizeBudget: 10 * time.Second,
		navTimeout:      30 * time.Second,
	}
}

// SessionID identifies the browser session in logs and reports.
func (d *Driver) SessionID() string {
	return d.sessionID
}

// Close tears down the tab and the browser allocator.
func (d *Driver) Close() {
	if d.tabCancel != nil {
		d.tabCancel()
	}
	if d.allocCancel != nil {
		d.allocCancel()
	}
}

// Navigate loads the URL and waits for the document to be ready.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	opCtx, cancel := context.WithTimeout(ctx, d.navTimeout)
	defer cancel()
	err := d.runner.RunActions(opCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if opCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("navigation to %s timed out after %v: %w", url, d.navTimeout, opCtx.Err())
		}
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Environment returns a harness environment scoped to the document root
// of the driver's tab.
func (d *Driver) Environment() harness.Environment {
	return &environment{d: d, rootExpr: documentRootExpr}
}

// ForceStabilize waits for pending rendering work to flush by riding two
// animation frames, the settle point after which style and layout reads
// observe the updated tree.
func (d *Driver) ForceStabilize(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, d.stabilizeBudget)
	defer cancel()
	err := d.runner.Evaluate(opCtx, settleScript, nil)
	if err != nil {
		if opCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("stabilization exceeded %v: %w", d.stabilizeBudget, opCtx.Err())
		}
		return fmt.Errorf("stabilizing page: %w", err)
	}
	return nil
}

func (d *Driver) nextID(prefix string) string {
	d.idSeq++
	return fmt.Sprintf("%s-%d", prefix, d.idSeq)
}

// CombineContext derives a context from parent that is additionally
// canceled when secondary is canceled. chromedp actions need the tab
// context's CDP values while still honoring per-call deadlines.
func CombineContext(parent, secondary context.Context) (context.Context, context.CancelFunc) {
	combined, cancel := context.WithCancel(parent)
	stop := context.AfterFunc(secondary, cancel)
	return combined, func() {
		stop()
		cancel()
	}
}
