package cdpdriver

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/cdproto/input"
	"github.com/chromedp/chromedp"
	jsoniter "github.com/json-iterator/go"

	"github.com/glasswing-ui/glasswing/harness"
)

// Element addresses one rendered node by a JS expression. The expression
// is re-evaluated on every operation, so the handle always acts on the
// current tree; a node that has been detached since resolution reports
// ErrStaleElement.
type Element struct {
	d    *Driver
	expr string
}

var _ harness.TestElement = (*Element)(nil)

type evalEnvelope struct {
	Stale bool                `json:"stale"`
	Value jsoniter.RawMessage `json:"value"`
}

// eval runs a per-element script body with staleness detection and
// decodes the result into out when non-nil. Pending rendering work is
// flushed first so the script observes settled state.
func (el *Element) eval(ctx context.Context, body string, out any) error {
	if err := el.d.ForceStabilize(ctx); err != nil {
		return err
	}
	var envelope evalEnvelope
	if err := el.d.runner.Evaluate(ctx, nodeScript(el.expr, body), &envelope); err != nil {
		return err
	}
	if envelope.Stale {
		return fmt.Errorf("element %s: %w", el.expr, harness.ErrStaleElement)
	}
	if out == nil {
		return nil
	}
	if err := jsoniter.Unmarshal(envelope.Value, out); err != nil {
		return fmt.Errorf("decoding element result: %w", err)
	}
	return nil
}

// viewportRect resolves the element's border box in viewport
// coordinates, failing when the node is stale.
func (el *Element) viewportRect(ctx context.Context) (harness.Rect, error) {
	var rect harness.Rect
	if err := el.eval(ctx, geometryBody, &rect); err != nil {
		return harness.Rect{}, err
	}
	return rect, nil
}

func (el *Element) click(ctx context.Context, button input.MouseButton, buttons int64, opts []harness.ClickOption) error {
	spec := harness.ResolveClickSpec(opts)
	rect, err := el.viewportRect(ctx)
	if err != nil {
		return err
	}
	rel := spec.RelativePoint(rect.Width, rect.Height)
	x, y := rect.Left+rel.X, rect.Top+rel.Y
	mask := modifierMask(spec.Modifiers)

	// The buttons bitmask is set explicitly on the pressed event; the
	// protocol defaults it to zero, which confuses listeners that
	// inspect it.
	press := input.DispatchMouseEvent(input.MousePressed, x, y).
		WithButton(button).
		WithButtons(buttons).
		WithClickCount(1).
		WithModifiers(mask)
	release := input.DispatchMouseEvent(input.MouseReleased, x, y).
		WithButton(button).
		WithClickCount(1).
		WithModifiers(mask)
	return el.d.runner.RunActions(ctx, press, release)
}

func (el *Element) Click(ctx context.Context, opts ...harness.ClickOption) error {
	return el.click(ctx, input.MouseButton("left"), 1, opts)
}

func (el *Element) RightClick(ctx context.Context, opts ...harness.ClickOption) error {
	return el.click(ctx, input.MouseButton("right"), 2, opts)
}

func (el *Element) Hover(ctx context.Context) error {
	rect, err := el.viewportRect(ctx)
	if err != nil {
		return err
	}
	move := input.DispatchMouseEvent(input.MouseMoved, rect.Left+rect.Width/2, rect.Top+rect.Height/2)
	return el.d.runner.RunActions(ctx, move)
}

func (el *Element) MouseAway(ctx context.Context) error {
	rect, err := el.viewportRect(ctx)
	if err != nil {
		return err
	}
	x, y := rect.Left-1, rect.Top-1
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return el.d.runner.RunActions(ctx, input.DispatchMouseEvent(input.MouseMoved, x, y))
}

func (el *Element) Focus(ctx context.Context) error {
	return el.eval(ctx, "node.focus(); return true;", nil)
}

func (el *Element) Blur(ctx context.Context) error {
	return el.eval(ctx, "node.blur(); return true;", nil)
}

func (el *Element) IsFocused(ctx context.Context) (bool, error) {
	var focused bool
	err := el.eval(ctx, "return document.activeElement === node;", &focused)
	return focused, err
}

func (el *Element) Clear(ctx context.Context) error {
	body := `
  if (!('value' in node)) return false;
  node.value = '';
  return true;`
	var ok bool
	if err := el.eval(ctx, body, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cannot clear %s: element has no value", el.expr)
	}
	return el.DispatchEvent(ctx, "input", nil)
}

func (el *Element) SendKeys(ctx context.Context, mods harness.Modifiers, keys ...harness.KeyIn) error {
	if err := el.Focus(ctx); err != nil {
		return err
	}
	var actions []chromedp.Action
	for _, k := range keys {
		switch v := k.(type) {
		case harness.Chars:
			if mods.None() {
				actions = append(actions, chromedp.KeyEvent(string(v)))
				continue
			}
			for _, r := range string(v) {
				for _, a := range charActions(string(r), mods) {
					actions = append(actions, a)
				}
			}
		case harness.Key:
			for _, a := range keyActions(v, mods) {
				actions = append(actions, a)
			}
		default:
			return fmt.Errorf("unsupported key input %T", k)
		}
	}
	if len(actions) == 0 {
		return nil
	}
	return el.d.runner.RunActions(ctx, actions...)
}

func (el *Element) SetInputValue(ctx context.Context, value string) error {
	body := fmt.Sprintf(`
  if (!('value' in node)) return false;
  node.value = %s;
  return true;`, jsonEncode(value))
	var ok bool
	if err := el.eval(ctx, body, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("cannot set value of %s: element has no value", el.expr)
	}
	return el.DispatchEvent(ctx, "input", nil)
}

func (el *Element) SelectOptions(ctx context.Context, indexes ...int) error {
	var count int
	if err := el.eval(ctx, "return node.tagName === 'SELECT' ? node.options.length : -1;", &count); err != nil {
		return err
	}
	if count < 0 {
		return fmt.Errorf("cannot select options of %s: not a select element", el.expr)
	}
	for _, idx := range indexes {
		if idx < 0 || idx >= count {
			return fmt.Errorf("option index %d out of range (%d options)", idx, count)
		}
	}
	var ok bool
	if err := el.eval(ctx, selectOptionsClearBody, &ok); err != nil {
		return err
	}
	// Toggle each option with a control-held click; the control key is
	// held in single-select mode too, where it is harmless.
	ctrl := harness.WithModifiers(harness.Modifiers{Control: true})
	for _, idx := range indexes {
		option := &Element{d: el.d, expr: fmt.Sprintf("(%s).options[%d]", el.expr, idx)}
		if err := option.Click(ctx, ctrl); err != nil {
			return fmt.Errorf("selecting option %d: %w", idx, err)
		}
	}
	return nil
}

func (el *Element) Text(ctx context.Context, opts ...harness.TextOption) (string, error) {
	spec := harness.ResolveTextSpec(opts)
	var text string
	if err := el.eval(ctx, textBody(spec.Exclude), &text); err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(text), " "), nil
}

func (el *Element) Attribute(ctx context.Context, name string) (*string, error) {
	var value *string
	body := fmt.Sprintf("return node.getAttribute(%s);", jsonEncode(name))
	if err := el.eval(ctx, body, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func (el *Element) Property(ctx context.Context, name string) (any, error) {
	var value any
	body := fmt.Sprintf("const v = node[%s]; return v === undefined ? null : v;", jsonEncode(name))
	if err := el.eval(ctx, body, &value); err != nil {
		return nil, err
	}
	return value, nil
}

func (el *Element) CSSValue(ctx context.Context, name string) (string, error) {
	var value string
	body := fmt.Sprintf("return getComputedStyle(node).getPropertyValue(%s);", jsonEncode(name))
	if err := el.eval(ctx, body, &value); err != nil {
		return "", err
	}
	return value, nil
}

func (el *Element) HasClass(ctx context.Context, name string) (bool, error) {
	// Derived from the raw class attribute through the shared helper, not
	// a native classList call, so both backends agree on edge cases.
	attr, err := el.Attribute(ctx, "class")
	if err != nil {
		return false, err
	}
	if attr == nil {
		return false, nil
	}
	return harness.ClassListContains(*attr, name), nil
}

func (el *Element) Dimensions(ctx context.Context) (harness.Rect, error) {
	return el.viewportRect(ctx)
}

func (el *Element) MatchesSelector(ctx context.Context, selector string) (bool, error) {
	var matches bool
	body := fmt.Sprintf("return node.matches(%s);", jsonEncode(selector))
	if err := el.eval(ctx, body, &matches); err != nil {
		return false, err
	}
	return matches, nil
}

func (el *Element) DispatchEvent(ctx context.Context, name string, data map[string]any) error {
	return el.eval(ctx, dispatchEventBody(name, data), nil)
}
