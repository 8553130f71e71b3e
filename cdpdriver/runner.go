package cdpdriver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"
)

// chromedpRunner executes scripts and input actions against one tab.
type chromedpRunner struct {
	tab context.Context
}

var _ ScriptRunner = (*chromedpRunner)(nil)

func (r *chromedpRunner) RunActions(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := CombineContext(r.tab, ctx)
	defer cancel()
	if err := chromedp.Run(runCtx, actions...); err != nil {
		// Report the caller's cancellation rather than the derived one.
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}

func (r *chromedpRunner) Evaluate(ctx context.Context, expression string, out any) error {
	var raw json.RawMessage
	err := r.RunActions(ctx, chromedp.Evaluate(expression, &raw,
		func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithReturnByValue(true).WithAwaitPromise(true).WithSilent(true)
		},
	))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := jsoniter.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding evaluation result %q: %w", truncate(string(raw), 120), err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
