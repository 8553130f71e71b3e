package widgets

import (
	"context"

	"github.com/glasswing-ui/glasswing/harness"
)

// InputAutosizeHostSelector matches every autosizing text area.
const InputAutosizeHostSelector = "textarea.gw-autosize"

// InputAutosize drives the autosize behavior attached to a text area:
// the element grows and shrinks with its content between configured row
// bounds.
type InputAutosize struct {
	harness.ComponentHarnessBase
}

// NewInputAutosize binds an autosize harness to its scoped environment.
func NewInputAutosize(env harness.Environment) *InputAutosize {
	return &InputAutosize{harness.NewComponentHarnessBase(env)}
}

// InputAutosizeFilters narrow an autosize predicate.
type InputAutosizeFilters struct {
	Enabled *bool
}

// InputAutosizeWith returns a predicate selecting autosizing text areas
// that satisfy the filters.
func InputAutosizeWith(f InputAutosizeFilters) *harness.Predicate[*InputAutosize] {
	p := harness.NewPredicate(InputAutosizeHostSelector, NewInputAutosize)
	harness.AddOption(p, "enabled", f.Enabled, func(ctx context.Context, h *InputAutosize, want bool) (bool, error) {
		enabled, err := h.IsEnabled(ctx)
		return enabled == want, err
	})
	return p
}

// IsEnabled reports whether autosizing is active. The behavior defaults
// on; data-autosize="false" switches it off without detaching it.
func (h *InputAutosize) IsEnabled(ctx context.Context) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	off, err := attrIs(ctx, host, "data-autosize", "false")
	return !off, err
}

// MinRows returns the configured minimum row count, zero when unset.
func (h *InputAutosize) MinRows(ctx context.Context) (int, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return 0, err
	}
	return attrInt(ctx, host, "data-min-rows")
}

// MaxRows returns the configured maximum row count, zero when unset.
func (h *InputAutosize) MaxRows(ctx context.Context) (int, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return 0, err
	}
	return attrInt(ctx, host, "data-max-rows")
}

// Height returns the element's resolved CSS height.
func (h *InputAutosize) Height(ctx context.Context) (string, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return "", err
	}
	return host.CSSValue(ctx, "height")
}

// ResizeToFitContent forces a measurement pass by replaying the input
// event the behavior listens for, then waits for the resize to flush.
func (h *InputAutosize) ResizeToFitContent(ctx context.Context) error {
	host, err := h.Host(ctx)
	if err != nil {
		return err
	}
	if err := host.DispatchEvent(ctx, "input", nil); err != nil {
		return err
	}
	return h.ForceStabilize(ctx)
}
