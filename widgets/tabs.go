package widgets

import (
	"context"
	"fmt"

	"github.com/glasswing-ui/glasswing/harness"
)

// Host selectors of the tab widgets.
const (
	TabGroupHostSelector = ".gw-tab-group"
	TabHostSelector      = ".gw-tab"
)

// Tab drives one tab header. Selection state rides the aria-selected
// attribute; the tab's content panel lives outside the header, referenced
// by aria-controls.
type Tab struct {
	harness.ComponentHarnessBase
}

// NewTab binds a tab harness to its scoped environment.
func NewTab(env harness.Environment) *Tab {
	return &Tab{harness.NewComponentHarnessBase(env)}
}

// TabFilters narrow a tab predicate.
type TabFilters struct {
	Label    *harness.StringFilter
	Selected *bool
}

// TabWith returns a predicate selecting tabs that satisfy the filters.
func TabWith(f TabFilters) *harness.Predicate[*Tab] {
	p := harness.NewPredicate(TabHostSelector, NewTab)
	harness.AddStringOption(p, "label", f.Label, func(ctx context.Context, h *Tab) (string, error) {
		return h.Label(ctx)
	})
	harness.AddOption(p, "selected", f.Selected, func(ctx context.Context, h *Tab, want bool) (bool, error) {
		selected, err := h.IsSelected(ctx)
		return selected == want, err
	})
	return p
}

// Label returns the tab's header text.
func (h *Tab) Label(ctx context.Context) (string, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return "", err
	}
	return host.Text(ctx)
}

// IsSelected reports whether the tab is the group's active one.
func (h *Tab) IsSelected(ctx context.Context) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	return attrIs(ctx, host, "aria-selected", "true")
}

// IsDisabled reports whether the tab rejects selection.
func (h *Tab) IsDisabled(ctx context.Context) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	return disabledState(ctx, host)
}

// Select activates the tab by clicking its header.
func (h *Tab) Select(ctx context.Context) error {
	host, err := h.Host(ctx)
	if err != nil {
		return err
	}
	return host.Click(ctx)
}

// Content resolves the tab's content panel through the aria-controls
// reference, looked up against the document root on every call. A tab
// without a panel reference returns (nil, nil).
func (h *Tab) Content(ctx context.Context) (harness.TestElement, error) {
	return h.ReferencedPanel(ctx, "aria-controls")
}

// ContentText returns the visible text of the tab's content panel.
func (h *Tab) ContentText(ctx context.Context) (string, error) {
	panel, err := h.Content(ctx)
	if err != nil {
		return "", err
	}
	if panel == nil {
		return "", fmt.Errorf("tab has no content panel reference")
	}
	return panel.Text(ctx)
}

// TabGroup drives a set of tab headers and their panels.
type TabGroup struct {
	harness.ComponentHarnessBase
}

// NewTabGroup binds a tab group harness to its scoped environment.
func NewTabGroup(env harness.Environment) *TabGroup {
	return &TabGroup{harness.NewComponentHarnessBase(env)}
}

// TabGroupFilters narrow a tab group predicate.
type TabGroupFilters struct {
	SelectedTabLabel *harness.StringFilter
}

// TabGroupWith returns a predicate selecting tab groups that satisfy the
// filters.
func TabGroupWith(f TabGroupFilters) *harness.Predicate[*TabGroup] {
	p := harness.NewPredicate(TabGroupHostSelector, NewTabGroup)
	harness.AddStringOption(p, "selected tab label", f.SelectedTabLabel, func(ctx context.Context, h *TabGroup) (string, error) {
		tab, err := h.SelectedTab(ctx)
		if err != nil {
			return "", err
		}
		return tab.Label(ctx)
	})
	return p
}

// Tabs returns the group's tabs passing the filters, in document order.
func (h *TabGroup) Tabs(ctx context.Context, f TabFilters) ([]*Tab, error) {
	return harness.GetAll(ctx, h.Locator(), TabWith(f))
}

// Labels returns the header text of every tab in the group.
func (h *TabGroup) Labels(ctx context.Context) ([]string, error) {
	tabs, err := h.Tabs(ctx, TabFilters{})
	if err != nil {
		return nil, err
	}
	labels := make([]string, len(tabs))
	for i, t := range tabs {
		if labels[i], err = t.Label(ctx); err != nil {
			return nil, err
		}
	}
	return labels, nil
}

// SelectedTab returns the group's active tab.
func (h *TabGroup) SelectedTab(ctx context.Context) (*Tab, error) {
	selected := true
	return harness.Get(ctx, h.Locator(), TabWith(TabFilters{Selected: &selected}))
}

// SelectTab activates the first tab matching the filters. No matching
// tab fails with a NotFoundError naming the active filters.
func (h *TabGroup) SelectTab(ctx context.Context, f TabFilters) error {
	tab, err := harness.Get(ctx, h.Locator(), TabWith(f))
	if err != nil {
		return err
	}
	return tab.Select(ctx)
}
