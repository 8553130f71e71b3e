package harness

import (
	"context"
	"fmt"
)

// ComponentHarness is implemented by every per-widget harness. A harness
// is a typed facade over one widget instance: it exposes semantic
// operations implemented purely in terms of Locator and TestElement
// calls, hiding the widget's internal DOM structure from tests.
type ComponentHarness interface {
	// Host resolves the widget's root element.
	Host(ctx context.Context) (TestElement, error)
}

// ComponentHarnessBase is the concrete building block widget harnesses
// embed. It binds the harness to an Environment scoped at the widget's
// host element; the host is re-resolved on every call, never cached.
type ComponentHarnessBase struct {
	env Environment
}

// NewComponentHarnessBase binds a harness base to its scoped environment.
func NewComponentHarnessBase(env Environment) ComponentHarnessBase {
	return ComponentHarnessBase{env: env}
}

// Host resolves the widget's root element.
func (b *ComponentHarnessBase) Host(ctx context.Context) (TestElement, error) {
	return b.env.RootElement(ctx)
}

// Environment returns the harness's scoped environment.
func (b *ComponentHarnessBase) Environment() Environment {
	return b.env
}

// Locator returns a locator scoped to the widget's host subtree.
func (b *ComponentHarnessBase) Locator() *Locator {
	return NewLocator(b.env)
}

// DocumentLocator returns a locator scoped to the document root, the
// escape hatch for content the widget projects outside its own subtree
// (overlay panels, tooltip bubbles).
func (b *ComponentHarnessBase) DocumentLocator() *Locator {
	return NewLocator(b.env.DocumentRoot())
}

// ForceStabilize flushes pending asynchronous rendering work. Harness
// operations whose result depends on an asynchronous visual transition
// call this before reading.
func (b *ComponentHarnessBase) ForceStabilize(ctx context.Context) error {
	return b.env.ForceStabilize(ctx)
}

// ScopeTo returns an environment scoped to the first element matching
// the selector under the widget's host. Content-container harnesses use
// this to expose typed accessors for structurally separate content
// containers.
func (b *ComponentHarnessBase) ScopeTo(ctx context.Context, selector string) (Environment, error) {
	el, err := b.Locator().Find(ctx, selector)
	if err != nil {
		return nil, err
	}
	env, err := b.env.ChildEnvironment(el)
	if err != nil {
		return nil, fmt.Errorf("scoping to %q: %w", selector, err)
	}
	return env, nil
}

// ReferencedPanel resolves the element an attribute-id back-reference on
// the host points at: the host's value for attr (aria-owns,
// aria-controls, aria-describedby) is read per call and looked up by id
// against the document root. The indirection is never cached because the
// referenced id can change between renders. A host without the attribute
// returns (nil, nil).
func (b *ComponentHarnessBase) ReferencedPanel(ctx context.Context, attr string) (TestElement, error) {
	host, err := b.Host(ctx)
	if err != nil {
		return nil, err
	}
	id, err := host.Attribute(ctx, attr)
	if err != nil {
		return nil, err
	}
	if id == nil || *id == "" {
		return nil, nil
	}
	return b.DocumentLocator().FindOptional(ctx, fmt.Sprintf("#%s", *id))
}
