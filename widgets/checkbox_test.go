package widgets_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasswing-ui/glasswing/harness"
	"github.com/glasswing-ui/glasswing/widgets"
)

const checkboxPage = `<html><body>
  <div class="gw-checkbox">
    <input class="gw-checkbox-input" type="checkbox" name="terms" value="accepted">
    <span class="gw-checkbox-label">foo</span>
  </div>
  <div class="gw-checkbox">
    <input class="gw-checkbox-input" type="checkbox" name="news" value="weekly" checked required>
    <span class="gw-checkbox-label">far</span>
  </div>
  <div class="gw-checkbox">
    <input class="gw-checkbox-input" type="checkbox" name="frozen" disabled>
    <span class="gw-checkbox-label">bar</span>
  </div>
</body></html>`

func TestCheckboxFilters(t *testing.T) {
	ctx := context.Background()

	t.Run("empty filters match every checkbox", func(t *testing.T) {
		_, loc := loadPage(t, checkboxPage)
		all, err := harness.GetAll(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{}))
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("literal label matches exactly one", func(t *testing.T) {
		_, loc := loadPage(t, checkboxPage)
		all, err := harness.GetAll(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{
			Label: harness.Exactly("foo"),
		}))
		require.NoError(t, err)
		require.Len(t, all, 1)
		name, err := all[0].Name(ctx)
		require.NoError(t, err)
		assert.Equal(t, "terms", name)
	})

	t.Run("pattern label matches every prefix hit", func(t *testing.T) {
		_, loc := loadPage(t, checkboxPage)
		all, err := harness.GetAll(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{
			Label: harness.Matching(regexp.MustCompile("^f")),
		}))
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("no match names the filter", func(t *testing.T) {
		_, loc := loadPage(t, checkboxPage)
		_, err := harness.Get(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{
			Label: harness.Exactly("quux"),
		}))
		require.Error(t, err)
		assert.ErrorIs(t, err, harness.ErrNotFound)
		assert.Contains(t, err.Error(), `label = "quux"`)
	})
}

func TestCheckboxState(t *testing.T) {
	ctx := context.Background()
	_, loc := loadPage(t, checkboxPage)

	unchecked, err := harness.Get(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{Label: harness.Exactly("foo")}))
	require.NoError(t, err)
	checked, err := harness.Get(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{Label: harness.Exactly("far")}))
	require.NoError(t, err)
	disabled, err := harness.Get(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{Label: harness.Exactly("bar")}))
	require.NoError(t, err)

	is, err := unchecked.IsChecked(ctx)
	require.NoError(t, err)
	assert.False(t, is)

	is, err = checked.IsChecked(ctx)
	require.NoError(t, err)
	assert.True(t, is)

	is, err = checked.IsRequired(ctx)
	require.NoError(t, err)
	assert.True(t, is)

	is, err = disabled.IsDisabled(ctx)
	require.NoError(t, err)
	assert.True(t, is)

	value, err := checked.Value(ctx)
	require.NoError(t, err)
	assert.Equal(t, "weekly", value)
}

func TestCheckboxToggle(t *testing.T) {
	ctx := context.Background()

	get := func(t *testing.T, loc *harness.Locator, label string) *widgets.Checkbox {
		t.Helper()
		h, err := harness.Get(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{Label: harness.Exactly(label)}))
		require.NoError(t, err)
		return h
	}

	t.Run("toggle twice restores the original state", func(t *testing.T) {
		_, loc := loadPage(t, checkboxPage)
		h := get(t, loc, "foo")

		before, err := h.IsChecked(ctx)
		require.NoError(t, err)
		require.NoError(t, h.Toggle(ctx))
		mid, err := h.IsChecked(ctx)
		require.NoError(t, err)
		assert.NotEqual(t, before, mid)

		require.NoError(t, h.Toggle(ctx))
		after, err := h.IsChecked(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("check and uncheck are idempotent", func(t *testing.T) {
		_, loc := loadPage(t, checkboxPage)
		h := get(t, loc, "foo")

		require.NoError(t, h.Check(ctx))
		require.NoError(t, h.Check(ctx))
		is, err := h.IsChecked(ctx)
		require.NoError(t, err)
		assert.True(t, is)

		require.NoError(t, h.Uncheck(ctx))
		require.NoError(t, h.Uncheck(ctx))
		is, err = h.IsChecked(ctx)
		require.NoError(t, err)
		assert.False(t, is)
	})

	t.Run("toggling a disabled checkbox changes nothing", func(t *testing.T) {
		_, loc := loadPage(t, checkboxPage)
		h := get(t, loc, "bar")
		require.NoError(t, h.Toggle(ctx))
		is, err := h.IsChecked(ctx)
		require.NoError(t, err)
		assert.False(t, is)
	})

	t.Run("clicking clears the mixed state", func(t *testing.T) {
		f, loc := loadPage(t, checkboxPage)
		h := get(t, loc, "foo")
		f.SetProperty(pageNode(t, f, ".gw-checkbox input[name=terms]"), "indeterminate", true)

		mixed, err := h.IsIndeterminate(ctx)
		require.NoError(t, err)
		require.True(t, mixed)

		require.NoError(t, h.Toggle(ctx))
		mixed, err = h.IsIndeterminate(ctx)
		require.NoError(t, err)
		assert.False(t, mixed)
	})
}
