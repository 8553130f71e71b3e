package harness

import (
	"context"
	"fmt"
)

// Locator is a lazy, selector-scoped query surface over an Environment.
// It is a query, not a cursor: every call re-resolves against the live
// tree, so two calls may return handles to different concrete nodes even
// for "the same" logical element.
type Locator struct {
	env Environment
}

// NewLocator returns a Locator scoped to the given environment's root.
func NewLocator(env Environment) *Locator {
	return &Locator{env: env}
}

// Environment returns the scope this locator queries under.
func (l *Locator) Environment() Environment {
	return l.env
}

// Root resolves the scope's root element.
func (l *Locator) Root(ctx context.Context) (TestElement, error) {
	return l.env.RootElement(ctx)
}

// Find returns the first element matching the selector in document order.
// Zero matches fail with a NotFoundError. Multiple matches are not an
// error: the first match wins silently, matching legacy single-match
// query semantics.
func (l *Locator) Find(ctx context.Context, selector string) (TestElement, error) {
	els, err := l.env.QueryAll(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("locator query %q: %w", selector, err)
	}
	if len(els) == 0 {
		return nil, &NotFoundError{Selector: selector}
	}
	return els[0], nil
}

// FindOptional is Find, except zero matches return (nil, nil).
func (l *Locator) FindOptional(ctx context.Context, selector string) (TestElement, error) {
	els, err := l.env.QueryAll(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("locator query %q: %w", selector, err)
	}
	if len(els) == 0 {
		return nil, nil
	}
	return els[0], nil
}

// FindAll returns every element matching the selector in document order.
// Zero matches return an empty slice, never an error and never nil.
func (l *Locator) FindAll(ctx context.Context, selector string) ([]TestElement, error) {
	els, err := l.env.QueryAll(ctx, selector)
	if err != nil {
		return nil, fmt.Errorf("locator query %q: %w", selector, err)
	}
	if els == nil {
		els = []TestElement{}
	}
	return els, nil
}
