package widgets

import (
	"context"
	"fmt"

	"github.com/glasswing-ui/glasswing/harness"
)

// TooltipHostSelector matches every tooltip trigger element.
const TooltipHostSelector = ".gw-tooltip-trigger"

// Tooltip drives a tooltip through its trigger element. The bubble is
// projected at the document root; while it is visible the trigger
// references it through aria-describedby, read on every call.
type Tooltip struct {
	harness.ComponentHarnessBase
}

// NewTooltip binds a tooltip harness to its scoped environment.
func NewTooltip(env harness.Environment) *Tooltip {
	return &Tooltip{harness.NewComponentHarnessBase(env)}
}

// TooltipFilters narrow a tooltip predicate.
type TooltipFilters struct {
	TriggerText *harness.StringFilter
}

// TooltipWith returns a predicate selecting tooltip triggers that
// satisfy the filters.
func TooltipWith(f TooltipFilters) *harness.Predicate[*Tooltip] {
	p := harness.NewPredicate(TooltipHostSelector, NewTooltip)
	harness.AddStringOption(p, "trigger text", f.TriggerText, func(ctx context.Context, h *Tooltip) (string, error) {
		host, err := h.Host(ctx)
		if err != nil {
			return "", err
		}
		return host.Text(ctx)
	})
	return p
}

func (h *Tooltip) bubble(ctx context.Context) (harness.TestElement, error) {
	if err := h.ForceStabilize(ctx); err != nil {
		return nil, err
	}
	return h.ReferencedPanel(ctx, "aria-describedby")
}

// Show makes the tooltip visible by hovering the trigger, then waits for
// the show transition to flush.
func (h *Tooltip) Show(ctx context.Context) error {
	host, err := h.Host(ctx)
	if err != nil {
		return err
	}
	if err := host.Hover(ctx); err != nil {
		return err
	}
	return h.ForceStabilize(ctx)
}

// Hide dismisses the tooltip by moving the pointer off the trigger. The
// hide transition is flushed before returning, so IsOpen immediately
// after reports the settled state.
func (h *Tooltip) Hide(ctx context.Context) error {
	host, err := h.Host(ctx)
	if err != nil {
		return err
	}
	if err := host.MouseAway(ctx); err != nil {
		return err
	}
	return h.ForceStabilize(ctx)
}

// IsOpen reports whether the tooltip bubble is visible.
func (h *Tooltip) IsOpen(ctx context.Context) (bool, error) {
	bubble, err := h.bubble(ctx)
	if err != nil {
		return false, err
	}
	return bubble != nil, nil
}

// Text returns the visible tooltip message. Reading a hidden tooltip is
// an error rather than an empty string, so tests cannot silently assert
// against nothing.
func (h *Tooltip) Text(ctx context.Context) (string, error) {
	bubble, err := h.bubble(ctx)
	if err != nil {
		return "", err
	}
	if bubble == nil {
		return "", fmt.Errorf("tooltip is not shown")
	}
	return bubble.Text(ctx)
}
