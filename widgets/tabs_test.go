package widgets_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasswing-ui/glasswing/fixture"
	"github.com/glasswing-ui/glasswing/harness"
	"github.com/glasswing-ui/glasswing/widgets"
)

const tabsPage = `<html><body>
  <div class="gw-tab-group">
    <div class="gw-tab" aria-selected="true" aria-controls="panel-overview">Overview</div>
    <div class="gw-tab" aria-selected="false" aria-controls="panel-settings">Settings</div>
    <div class="gw-tab" aria-selected="false" aria-disabled="true">Billing</div>
  </div>
  <div id="panel-overview">Overview body</div>
  <div id="panel-settings">Settings body</div>
</body></html>`

// loadTabsPage wires single-selection behavior: clicking a tab header
// moves aria-selected to it on the next stabilization pass.
func loadTabsPage(t *testing.T) (*fixture.Fixture, *harness.Locator) {
	t.Helper()
	f, loc := loadPage(t, tabsPage)
	tabs := pageNodes(t, f, ".gw-tab")
	require.NoError(t, f.On(".gw-tab", "click", func(ev *fixture.Event) {
		target := ev.CurrentTarget
		f.Schedule(func() {
			for _, n := range tabs {
				f.SetAttr(n, "aria-selected", "false")
			}
			f.SetAttr(target, "aria-selected", "true")
		})
	}))
	return f, loc
}

func tabGroup(t *testing.T, loc *harness.Locator) *widgets.TabGroup {
	t.Helper()
	g, err := harness.Get(context.Background(), loc, widgets.TabGroupWith(widgets.TabGroupFilters{}))
	require.NoError(t, err)
	return g
}

func TestTabGroupLabels(t *testing.T) {
	ctx := context.Background()
	_, loc := loadTabsPage(t)

	labels, err := tabGroup(t, loc).Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Overview", "Settings", "Billing"}, labels)
}

func TestTabGroupSelectedTab(t *testing.T) {
	ctx := context.Background()
	_, loc := loadTabsPage(t)

	tab, err := tabGroup(t, loc).SelectedTab(ctx)
	require.NoError(t, err)
	label, err := tab.Label(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Overview", label)
}

func TestTabGroupSelectTab(t *testing.T) {
	ctx := context.Background()
	_, loc := loadTabsPage(t)
	g := tabGroup(t, loc)

	require.NoError(t, g.SelectTab(ctx, widgets.TabFilters{Label: harness.Exactly("Settings")}))

	tab, err := g.SelectedTab(ctx)
	require.NoError(t, err)
	label, err := tab.Label(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Settings", label)

	t.Run("missing tab names the filter", func(t *testing.T) {
		err := g.SelectTab(ctx, widgets.TabFilters{Label: harness.Exactly("Reports")})
		require.Error(t, err)
		assert.ErrorIs(t, err, harness.ErrNotFound)
		assert.Contains(t, err.Error(), `label = "Reports"`)
	})
}

func TestTabContent(t *testing.T) {
	ctx := context.Background()
	f, loc := loadTabsPage(t)
	g := tabGroup(t, loc)

	t.Run("panel resolves through the document root", func(t *testing.T) {
		tab, err := g.SelectedTab(ctx)
		require.NoError(t, err)
		text, err := tab.ContentText(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Overview body", text)
	})

	t.Run("reference is re-read on every call", func(t *testing.T) {
		tab, err := g.SelectedTab(ctx)
		require.NoError(t, err)
		host := pageNode(t, f, `.gw-tab[aria-controls=panel-overview]`)
		f.SetAttr(host, "aria-controls", "panel-settings")

		text, err := tab.ContentText(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Settings body", text)
	})

	t.Run("tab without a reference yields no panel", func(t *testing.T) {
		tabs, err := g.Tabs(ctx, widgets.TabFilters{Label: harness.Exactly("Billing")})
		require.NoError(t, err)
		require.Len(t, tabs, 1)
		panel, err := tabs[0].Content(ctx)
		require.NoError(t, err)
		assert.Nil(t, panel)

		_, err = tabs[0].ContentText(ctx)
		assert.Error(t, err)
	})
}

func TestTabDisabled(t *testing.T) {
	ctx := context.Background()
	_, loc := loadTabsPage(t)
	g := tabGroup(t, loc)

	tabs, err := g.Tabs(ctx, widgets.TabFilters{Label: harness.Exactly("Billing")})
	require.NoError(t, err)
	require.Len(t, tabs, 1)

	disabled, err := tabs[0].IsDisabled(ctx)
	require.NoError(t, err)
	assert.True(t, disabled)

	// Selecting a disabled tab must not steal the selection.
	require.NoError(t, tabs[0].Select(ctx))
	selected, err := g.SelectedTab(ctx)
	require.NoError(t, err)
	label, err := selected.Label(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Overview", label)
}

func TestTabSelectedFilter(t *testing.T) {
	ctx := context.Background()
	_, loc := loadTabsPage(t)
	g := tabGroup(t, loc)

	unselected := false
	tabs, err := g.Tabs(ctx, widgets.TabFilters{Selected: &unselected})
	require.NoError(t, err)
	labels := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label, err := tab.Label(ctx)
		require.NoError(t, err)
		labels = append(labels, label)
	}
	assert.Equal(t, []string{"Settings", "Billing"}, labels)
}
