package harness

import "context"

// Environment is the glue a harness needs from its execution backend: a
// way to resolve elements within its root scope, an escape hatch to the
// document root for content projected elsewhere (overlay panels), and a
// stabilization primitive that flushes pending asynchronous rendering
// work before the next read.
//
// Environments are created per test context and hold no cross-test state.
// An Environment is scoped to one root element; ChildEnvironment derives a
// narrower scope from a resolved element.
type Environment interface {
	// RootElement resolves the scope's root element. Resolution happens
	// per call; the returned handle must not be cached.
	RootElement(ctx context.Context) (TestElement, error)

	// QueryAll resolves the selector within the scope's subtree and
	// returns all matches in document order. The result is never nil.
	QueryAll(ctx context.Context, selector string) ([]TestElement, error)

	// DocumentRoot returns an Environment scoped to the document root,
	// for widgets that render their interactive panel outside their own
	// subtree.
	DocumentRoot() Environment

	// ChildEnvironment returns an Environment scoped to the given
	// element. The element must have been produced by this backend.
	ChildEnvironment(el TestElement) (Environment, error)

	// ForceStabilize blocks until pending asynchronous rendering or
	// update work has completed, so subsequent reads observe settled
	// state. Harness operations whose effect depends on an asynchronous
	// visual transition must call this before returning.
	ForceStabilize(ctx context.Context) error

	// NextID returns a fresh unique id with the given prefix. The counter
	// is owned by the environment so tests can isolate or reset it.
	NextID(prefix string) string
}
