package fixture

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasswing-ui/glasswing/harness"
)

func findElement(t *testing.T, f *Fixture, selector string) *Element {
	t.Helper()
	el, err := harness.NewLocator(f.Environment()).Find(context.Background(), selector)
	require.NoError(t, err)
	return el.(*Element)
}

func TestClickCheckbox(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><input id="c" type="checkbox"></body></html>`)
	el := findElement(t, f, "#c")

	var events []string
	require.NoError(t, f.On("#c", "input", func(*Event) { events = append(events, "input") }))
	require.NoError(t, f.On("#c", "change", func(*Event) { events = append(events, "change") }))

	require.NoError(t, el.Click(ctx))
	checked, err := el.Property(ctx, "checked")
	require.NoError(t, err)
	assert.Equal(t, true, checked)
	assert.Equal(t, []string{"input", "change"}, events)

	require.NoError(t, el.Click(ctx))
	checked, err = el.Property(ctx, "checked")
	require.NoError(t, err)
	assert.Equal(t, false, checked)
}

func TestClickClearsIndeterminate(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><input id="c" type="checkbox"></body></html>`)
	el := findElement(t, f, "#c")
	f.SetProperty(el.Node(), "indeterminate", true)

	require.NoError(t, el.Click(ctx))
	indeterminate, err := el.Property(ctx, "indeterminate")
	require.NoError(t, err)
	assert.Equal(t, false, indeterminate)
}

func TestClickPreventDefault(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><input id="c" type="checkbox"></body></html>`)
	el := findElement(t, f, "#c")
	require.NoError(t, f.On("#c", "click", func(ev *Event) { ev.PreventDefault() }))

	require.NoError(t, el.Click(ctx))
	checked, err := el.Property(ctx, "checked")
	require.NoError(t, err)
	assert.Equal(t, false, checked, "prevented click must not toggle")
}

func TestClickDisabledControl(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><input id="c" type="checkbox" disabled></body></html>`)
	el := findElement(t, f, "#c")

	clicked := false
	require.NoError(t, f.On("#c", "click", func(*Event) { clicked = true }))
	require.NoError(t, el.Click(ctx))
	assert.False(t, clicked, "disabled controls receive no events")

	focused, err := el.IsFocused(ctx)
	require.NoError(t, err)
	assert.False(t, focused)
}

func TestRadioGroupExclusivity(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body>
  <input id="r1" type="radio" name="g" checked>
  <input id="r2" type="radio" name="g">
  <input id="other" type="radio" name="h" checked>
</body></html>`)

	require.NoError(t, findElement(t, f, "#r2").Click(ctx))

	checked := func(sel string) bool {
		v, err := findElement(t, f, sel).Property(ctx, "checked")
		require.NoError(t, err)
		b, _ := v.(bool)
		return b
	}
	assert.False(t, checked("#r1"))
	assert.True(t, checked("#r2"))
	assert.True(t, checked("#other"), "other groups stay untouched")
}

func TestSendKeys(t *testing.T) {
	ctx := context.Background()

	t.Run("characters append to the value with key events", func(t *testing.T) {
		f := load(t, `<html><body><input id="i" type="text"></body></html>`)
		el := findElement(t, f, "#i")

		var keys []string
		require.NoError(t, f.On("#i", "keydown", func(ev *Event) {
			key, _ := ev.Prop("key").(string)
			keys = append(keys, key)
		}))

		require.NoError(t, el.SendKeys(ctx, harness.Modifiers{}, harness.Chars("hi")))
		value, err := el.Property(ctx, "value")
		require.NoError(t, err)
		assert.Equal(t, "hi", value)
		assert.Equal(t, []string{"h", "i"}, keys)

		focused, err := el.IsFocused(ctx)
		require.NoError(t, err)
		assert.True(t, focused, "typing focuses the element")
	})

	t.Run("backspace removes the final rune", func(t *testing.T) {
		f := load(t, `<html><body><input id="i" type="text" value="héé"></body></html>`)
		el := findElement(t, f, "#i")
		require.NoError(t, el.SendKeys(ctx, harness.Modifiers{}, harness.KeyBackspace))
		value, err := el.Property(ctx, "value")
		require.NoError(t, err)
		assert.Equal(t, "hé", value)
	})

	t.Run("prevented keydown blocks the edit", func(t *testing.T) {
		f := load(t, `<html><body><input id="i" type="text"></body></html>`)
		el := findElement(t, f, "#i")
		require.NoError(t, f.On("#i", "keydown", func(ev *Event) { ev.PreventDefault() }))
		require.NoError(t, el.SendKeys(ctx, harness.Modifiers{}, harness.Chars("x")))
		value, err := el.Property(ctx, "value")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("control chord does not insert text", func(t *testing.T) {
		f := load(t, `<html><body><input id="i" type="text"></body></html>`)
		el := findElement(t, f, "#i")
		require.NoError(t, el.SendKeys(ctx, harness.Modifiers{Control: true}, harness.Chars("a")))
		value, err := el.Property(ctx, "value")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})

	t.Run("readonly inputs receive events but no edits", func(t *testing.T) {
		f := load(t, `<html><body><input id="i" type="text" value="ro" readonly></body></html>`)
		el := findElement(t, f, "#i")
		require.NoError(t, el.SendKeys(ctx, harness.Modifiers{}, harness.Chars("x")))
		value, err := el.Property(ctx, "value")
		require.NoError(t, err)
		assert.Equal(t, "ro", value)
	})
}

func TestSetInputValueAndClear(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><input id="i" type="text" value="seed"><div id="d"></div></body></html>`)
	el := findElement(t, f, "#i")

	inputs := 0
	require.NoError(t, f.On("#i", "input", func(*Event) { inputs++ }))

	require.NoError(t, el.SetInputValue(ctx, "direct"))
	value, err := el.Property(ctx, "value")
	require.NoError(t, err)
	assert.Equal(t, "direct", value)
	assert.Equal(t, 1, inputs)

	require.NoError(t, el.Clear(ctx))
	value, err = el.Property(ctx, "value")
	require.NoError(t, err)
	assert.Equal(t, "", value)
	assert.Equal(t, 2, inputs)

	assert.Error(t, findElement(t, f, "#d").Clear(ctx))
	assert.Error(t, findElement(t, f, "#d").SetInputValue(ctx, "x"))
}

func TestSelectOptions(t *testing.T) {
	ctx := context.Background()

	selected := func(t *testing.T, f *Fixture, sel string) bool {
		v, err := findElement(t, f, sel).Property(context.Background(), "selected")
		require.NoError(t, err)
		b, _ := v.(bool)
		return b
	}

	t.Run("multi-select keeps every requested index", func(t *testing.T) {
		f := load(t, `<html><body><select id="s" multiple>
  <option id="o0">a</option><option id="o1" selected>b</option><option id="o2">c</option>
</select></body></html>`)
		el := findElement(t, f, "#s")

		var events []string
		require.NoError(t, f.On("#s", "change", func(*Event) { events = append(events, "change") }))

		require.NoError(t, el.SelectOptions(ctx, 0, 2))
		assert.True(t, selected(t, f, "#o0"))
		assert.False(t, selected(t, f, "#o1"), "previous selection is cleared first")
		assert.True(t, selected(t, f, "#o2"))
		assert.Equal(t, []string{"change"}, events)
	})

	t.Run("single select ends with one selected option", func(t *testing.T) {
		f := load(t, `<html><body><select id="s">
  <option id="o0" selected>a</option><option id="o1">b</option>
</select></body></html>`)
		require.NoError(t, findElement(t, f, "#s").SelectOptions(ctx, 1))
		assert.False(t, selected(t, f, "#o0"))
		assert.True(t, selected(t, f, "#o1"))
	})

	t.Run("out-of-range index fails before mutating", func(t *testing.T) {
		f := load(t, `<html><body><select id="s"><option id="o0" selected>a</option></select></body></html>`)
		require.Error(t, findElement(t, f, "#s").SelectOptions(ctx, 5))
		assert.True(t, selected(t, f, "#o0"))
	})

	t.Run("non-select elements are rejected", func(t *testing.T) {
		f := load(t, `<html><body><div id="d"></div></body></html>`)
		assert.Error(t, findElement(t, f, "#d").SelectOptions(ctx, 0))
	})
}

func TestText(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><div id="d">
  Hello   <b>big</b>
  world <span class="badge">3</span>
</div></body></html>`)
	el := findElement(t, f, "#d")

	text, err := el.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello big world 3", text)

	text, err = el.Text(ctx, harness.ExcludeText(".badge"))
	require.NoError(t, err)
	assert.Equal(t, "Hello big world", text)
}

func TestAttributeAndHasClass(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><div id="d" class="a b" data-kind="x"></div></body></html>`)
	el := findElement(t, f, "#d")

	v, err := el.Attribute(ctx, "data-kind")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "x", *v)

	v, err = el.Attribute(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, v)

	has, err := el.HasClass(ctx, "b")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = el.HasClass(ctx, "c")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestGeometryFromInlineStyle(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body>
  <div id="d" style="width: 120px; height: 40px; left: 10px; top: 5px; color: red"></div>
</body></html>`)
	el := findElement(t, f, "#d")

	rect, err := el.Dimensions(ctx)
	require.NoError(t, err)
	assert.Equal(t, harness.Rect{Width: 120, Height: 40, Left: 10, Top: 5}, rect)

	color, err := el.CSSValue(ctx, "color")
	require.NoError(t, err)
	assert.Equal(t, "red", color)

	missing, err := el.CSSValue(ctx, "display")
	require.NoError(t, err)
	assert.Equal(t, "", missing)
}

func TestMatchesSelector(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><div id="d" class="box"></div></body></html>`)
	el := findElement(t, f, "#d")

	ok, err := el.MatchesSelector(ctx, "div.box")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = el.MatchesSelector(ctx, "span")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFocusBlur(t *testing.T) {
	ctx := context.Background()
	f := load(t, `<html><body><input id="a" type="text"><input id="b" type="text"></body></html>`)
	a := findElement(t, f, "#a")
	b := findElement(t, f, "#b")

	var events []string
	for _, spec := range []struct{ sel, typ string }{
		{"#a", "focus"}, {"#a", "blur"}, {"#b", "focus"},
	} {
		sel, typ := spec.sel, spec.typ
		require.NoError(t, f.On(sel, typ, func(*Event) { events = append(events, sel+":"+typ) }))
	}

	require.NoError(t, a.Focus(ctx))
	focused, err := a.IsFocused(ctx)
	require.NoError(t, err)
	assert.True(t, focused)

	// Focusing another element blurs the first.
	require.NoError(t, b.Focus(ctx))
	focused, err = a.IsFocused(ctx)
	require.NoError(t, err)
	assert.False(t, focused)

	require.NoError(t, b.Blur(ctx))
	focused, err = b.IsFocused(ctx)
	require.NoError(t, err)
	assert.False(t, focused)

	assert.Equal(t, []string{"#a:focus", "#a:blur", "#b:focus"}, events)
}
