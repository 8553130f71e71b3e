package cdpdriver

import (
	"context"
	"fmt"

	"github.com/glasswing-ui/glasswing/harness"
)

// environment scopes harness queries under one element expression.
type environment struct {
	d        *Driver
	rootExpr string
}

var _ harness.Environment = (*environment)(nil)

func (e *environment) RootElement(ctx context.Context) (harness.TestElement, error) {
	el := &Element{d: e.d, expr: e.rootExpr}
	// Probe the expression so a detached scope surfaces as staleness at
	// resolution time rather than on first use.
	if err := el.eval(ctx, "return true;", nil); err != nil {
		return nil, err
	}
	return el, nil
}

func (e *environment) QueryAll(ctx context.Context, selector string) ([]harness.TestElement, error) {
	if err := e.d.ForceStabilize(ctx); err != nil {
		return nil, err
	}
	var count int
	if err := e.d.runner.Evaluate(ctx, queryCountExpr(e.rootExpr, selector), &count); err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("querying %q: %w", selector, harness.ErrStaleElement)
	}
	out := make([]harness.TestElement, count)
	for i := range out {
		out[i] = &Element{d: e.d, expr: elementExpr(e.rootExpr, selector, i)}
	}
	return out, nil
}

func (e *environment) DocumentRoot() harness.Environment {
	return &environment{d: e.d, rootExpr: documentRootExpr}
}

func (e *environment) ChildEnvironment(el harness.TestElement) (harness.Environment, error) {
	ce, ok := el.(*Element)
	if !ok {
		return nil, fmt.Errorf("element %T does not belong to the cdp backend", el)
	}
	return &environment{d: e.d, rootExpr: ce.expr}, nil
}

func (e *environment) ForceStabilize(ctx context.Context) error {
	return e.d.ForceStabilize(ctx)
}

func (e *environment) NextID(prefix string) string {
	return e.d.nextID(prefix)
}
