package fixture

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/glasswing-ui/glasswing/harness"
)

// Element binds a harness element handle to one node of the fixture
// tree. Handles go stale when the node is detached; every operation
// checks attachment after letting pending work flush.
type Element struct {
	f    *Fixture
	node *html.Node
}

var _ harness.TestElement = (*Element)(nil)

// Node exposes the underlying parsed node for fixture-internal use in
// test setup code.
func (el *Element) Node() *html.Node {
	return el.node
}

// settle flushes pending work and verifies the node is still attached.
// Every element operation starts here so reads and actions observe a
// stabilized tree, mirroring how the live backend waits out pending
// rendering before touching an element.
func (el *Element) settle(ctx context.Context) error {
	if err := el.f.ForceStabilize(ctx); err != nil {
		return err
	}
	if !el.f.attached(el.node) {
		return fmt.Errorf("%s: %w", nodeLabel(el.node), harness.ErrStaleElement)
	}
	return nil
}

func (el *Element) tag() string {
	return strings.ToLower(el.node.Data)
}

func (el *Element) Click(ctx context.Context, opts ...harness.ClickOption) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	spec := harness.ResolveClickSpec(opts)
	el.f.clickNode(el.node, spec.Modifiers, leftButton)
	return nil
}

func (el *Element) RightClick(ctx context.Context, opts ...harness.ClickOption) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	spec := harness.ResolveClickSpec(opts)
	if el.f.isDisabledControl(el.node) {
		return nil
	}
	el.f.Dispatch(newMouseEvent("mousedown", el.node, rightButton, spec.Modifiers))
	el.f.Dispatch(newMouseEvent("contextmenu", el.node, rightButton, spec.Modifiers))
	el.f.Dispatch(newMouseEvent("mouseup", el.node, 0, spec.Modifiers))
	return nil
}

func (el *Element) Hover(ctx context.Context) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	el.f.Dispatch(newMouseEvent("mouseenter", el.node, 0, harness.Modifiers{}))
	el.f.Dispatch(newMouseEvent("mouseover", el.node, 0, harness.Modifiers{}))
	return nil
}

func (el *Element) MouseAway(ctx context.Context) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	el.f.Dispatch(newMouseEvent("mouseleave", el.node, 0, harness.Modifiers{}))
	el.f.Dispatch(newMouseEvent("mouseout", el.node, 0, harness.Modifiers{}))
	return nil
}

func (el *Element) Focus(ctx context.Context) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	el.f.focusNode(el.node)
	return nil
}

func (el *Element) Blur(ctx context.Context) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	el.f.blurNode(el.node)
	return nil
}

func (el *Element) IsFocused(ctx context.Context) (bool, error) {
	if err := el.settle(ctx); err != nil {
		return false, err
	}
	return el.f.focused == el.node, nil
}

func (el *Element) Clear(ctx context.Context) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	if !el.f.isTextEntry(el.node) {
		return fmt.Errorf("cannot clear %s: not an input or textarea", nodeLabel(el.node))
	}
	el.f.focusNode(el.node)
	el.f.SetProperty(el.node, "value", "")
	el.f.Dispatch(newSimpleEvent("input", el.node))
	return nil
}

func (el *Element) SendKeys(ctx context.Context, mods harness.Modifiers, keys ...harness.KeyIn) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	el.f.focusNode(el.node)
	for _, k := range keys {
		switch v := k.(type) {
		case harness.Chars:
			for _, r := range string(v) {
				el.f.typeKey(el.node, string(r), mods, true)
			}
		case harness.Key:
			el.f.typeKey(el.node, v.Name(), mods, false)
		default:
			return fmt.Errorf("unsupported key input %T", k)
		}
	}
	return nil
}

func (el *Element) SetInputValue(ctx context.Context, value string) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	if !el.f.isTextEntry(el.node) && el.tag() != "select" {
		return fmt.Errorf("cannot set value of %s: not an input element", nodeLabel(el.node))
	}
	el.f.SetProperty(el.node, "value", value)
	el.f.Dispatch(newSimpleEvent("input", el.node))
	return nil
}

func (el *Element) SelectOptions(ctx context.Context, indexes ...int) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	if el.tag() != "select" {
		return fmt.Errorf("cannot select options of %s: not a select element", nodeLabel(el.node))
	}
	options, err := el.f.queryAll(el.node, "option")
	if err != nil {
		return err
	}
	for _, idx := range indexes {
		if idx < 0 || idx >= len(options) {
			return fmt.Errorf("option index %d out of range (%d options)", idx, len(options))
		}
	}
	// Clear the current selection, then toggle each requested option with
	// a control-key-held click. The control key is held even in
	// single-select mode, where it is harmless.
	for _, o := range options {
		el.f.SetProperty(o, "selected", false)
	}
	ctrl := harness.Modifiers{Control: true}
	for _, idx := range indexes {
		el.f.clickNode(options[idx], ctrl, leftButton)
	}
	el.f.Dispatch(newSimpleEvent("input", el.node))
	el.f.Dispatch(newSimpleEvent("change", el.node))
	return nil
}

func (el *Element) Text(ctx context.Context, opts ...harness.TextOption) (string, error) {
	if err := el.settle(ctx); err != nil {
		return "", err
	}
	spec := harness.ResolveTextSpec(opts)
	var exclude cascadia.SelectorGroup
	if spec.Exclude != "" {
		sel, err := cascadia.ParseGroup(spec.Exclude)
		if err != nil {
			return "", fmt.Errorf("invalid exclude selector %q: %w", spec.Exclude, err)
		}
		exclude = sel
	}
	return strings.Join(strings.Fields(textContent(el.node, exclude)), " "), nil
}

func (el *Element) Attribute(ctx context.Context, name string) (*string, error) {
	if err := el.settle(ctx); err != nil {
		return nil, err
	}
	if v, present := el.f.Attr(el.node, name); present {
		return &v, nil
	}
	return nil, nil
}

func (el *Element) Property(ctx context.Context, name string) (any, error) {
	if err := el.settle(ctx); err != nil {
		return nil, err
	}
	return el.f.Property(el.node, name), nil
}

func (el *Element) CSSValue(ctx context.Context, name string) (string, error) {
	if err := el.settle(ctx); err != nil {
		return "", err
	}
	// The fixture has no style cascade; inline style declarations are the
	// computed value.
	return el.styleValue(name), nil
}

func (el *Element) HasClass(ctx context.Context, name string) (bool, error) {
	if err := el.settle(ctx); err != nil {
		return false, err
	}
	classAttr, _ := el.f.Attr(el.node, "class")
	return harness.ClassListContains(classAttr, name), nil
}

func (el *Element) Dimensions(ctx context.Context) (harness.Rect, error) {
	if err := el.settle(ctx); err != nil {
		return harness.Rect{}, err
	}
	// No layout engine: geometry comes from inline style declarations.
	return harness.Rect{
		Width:  el.stylePx("width"),
		Height: el.stylePx("height"),
		Left:   el.stylePx("left"),
		Top:    el.stylePx("top"),
	}, nil
}

func (el *Element) MatchesSelector(ctx context.Context, selector string) (bool, error) {
	if err := el.settle(ctx); err != nil {
		return false, err
	}
	return el.f.matches(el.node, selector)
}

func (el *Element) DispatchEvent(ctx context.Context, name string, data map[string]any) error {
	if err := el.settle(ctx); err != nil {
		return err
	}
	el.f.Dispatch(&Event{
		Type:       name,
		Target:     el.node,
		Bubbles:    true,
		Cancelable: true,
		Props:      data,
	})
	return nil
}

// styleValue returns the inline style declaration for the property, or
// the empty string.
func (el *Element) styleValue(name string) string {
	style, _ := el.f.Attr(el.node, "style")
	for _, decl := range strings.Split(style, ";") {
		prop, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.TrimSpace(prop) == name {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// stylePx parses a pixel-valued style declaration, defaulting to zero.
func (el *Element) stylePx(name string) float64 {
	v := strings.TrimSuffix(el.styleValue(name), "px")
	out, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return out
}

func nodeLabel(n *html.Node) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(n.Data)
	for _, a := range n.Attr {
		if a.Key == "id" || a.Key == "class" {
			fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
		}
	}
	sb.WriteString(">")
	return sb.String()
}
