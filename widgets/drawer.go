package widgets

import (
	"context"

	"github.com/glasswing-ui/glasswing/harness"
)

// DrawerHostSelector matches the host element of every drawer widget.
const DrawerHostSelector = ".gw-drawer"

// DrawerContent is the content-container harness for a drawer: it scopes
// further queries to the drawer's projected content so tests can resolve
// nested widgets without knowing the drawer's internal structure.
type DrawerContent struct {
	harness.ComponentHarnessBase
}

// NewDrawerContent binds a drawer content harness to its scoped
// environment.
func NewDrawerContent(env harness.Environment) *DrawerContent {
	return &DrawerContent{harness.NewComponentHarnessBase(env)}
}

// Text returns the visible text of the drawer's content.
func (h *DrawerContent) Text(ctx context.Context) (string, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return "", err
	}
	return host.Text(ctx)
}

// Drawer drives a side drawer. The open state rides a state class on the
// host; position and mode ride attributes. Opening and closing go
// through dispatched events the widget listens for, the same channel its
// own toggle button uses.
type Drawer struct {
	harness.ComponentHarnessBase
}

// NewDrawer binds a drawer harness to its scoped environment.
func NewDrawer(env harness.Environment) *Drawer {
	return &Drawer{harness.NewComponentHarnessBase(env)}
}

// DrawerFilters narrow a drawer predicate.
type DrawerFilters struct {
	Position *string
	Mode     *string
}

// DrawerWith returns a predicate selecting drawers that satisfy the
// filters.
func DrawerWith(f DrawerFilters) *harness.Predicate[*Drawer] {
	p := harness.NewPredicate(DrawerHostSelector, NewDrawer)
	harness.AddOption(p, "position", f.Position, func(ctx context.Context, h *Drawer, want string) (bool, error) {
		got, err := h.Position(ctx)
		return got == want, err
	})
	harness.AddOption(p, "mode", f.Mode, func(ctx context.Context, h *Drawer, want string) (bool, error) {
		got, err := h.Mode(ctx)
		return got == want, err
	})
	return p
}

// IsOpen reports whether the drawer is open.
func (h *Drawer) IsOpen(ctx context.Context) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	return host.HasClass(ctx, "gw-drawer-opened")
}

// Position returns "start" or "end" from the host's position attribute.
func (h *Drawer) Position(ctx context.Context) (string, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return "", err
	}
	return attrValue(ctx, host, "data-position")
}

// Mode returns "over", "push" or "side" from the host's mode attribute.
func (h *Drawer) Mode(ctx context.Context) (string, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return "", err
	}
	return attrValue(ctx, host, "data-mode")
}

// Content returns the content harness scoped to the drawer's content
// container.
func (h *Drawer) Content(ctx context.Context) (*DrawerContent, error) {
	env, err := h.ScopeTo(ctx, ".gw-drawer-content")
	if err != nil {
		return nil, err
	}
	return NewDrawerContent(env), nil
}

func (h *Drawer) dispatchAndSettle(ctx context.Context, event string) error {
	host, err := h.Host(ctx)
	if err != nil {
		return err
	}
	if err := host.DispatchEvent(ctx, event, nil); err != nil {
		return err
	}
	// Opening and closing are animated transitions; flush them before the
	// caller observes the new state.
	return h.ForceStabilize(ctx)
}

// Open opens the drawer; a no-op when it is already open.
func (h *Drawer) Open(ctx context.Context) error {
	open, err := h.IsOpen(ctx)
	if err != nil || open {
		return err
	}
	return h.dispatchAndSettle(ctx, "open")
}

// Close closes the drawer; a no-op when it is already closed.
func (h *Drawer) Close(ctx context.Context) error {
	open, err := h.IsOpen(ctx)
	if err != nil || !open {
		return err
	}
	return h.dispatchAndSettle(ctx, "close")
}

// Toggle flips the drawer's open state.
func (h *Drawer) Toggle(ctx context.Context) error {
	return h.dispatchAndSettle(ctx, "toggle")
}
