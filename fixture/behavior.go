package fixture

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/glasswing-ui/glasswing/harness"
)

// Button bitmask values for the "buttons" mouse-event property.
const (
	leftButton  = 1
	rightButton = 2
)

// clickNode runs the full click sequence on a node: focus, mousedown,
// mouseup, click, then the control's default action unless a listener
// prevented it. Disabled form controls receive nothing, matching browser
// behavior.
func (f *Fixture) clickNode(n *html.Node, mods harness.Modifiers, buttons int) {
	if f.isDisabledControl(n) {
		return
	}
	f.Dispatch(newMouseEvent("mousedown", n, buttons, mods))
	if f.isFocusable(n) {
		f.focusNode(n)
	}
	f.Dispatch(newMouseEvent("mouseup", n, 0, mods))
	click := newMouseEvent("click", n, 0, mods)
	f.Dispatch(click)
	if !click.DefaultPrevented {
		f.applyClickDefault(n, mods)
	}
}

// applyClickDefault performs the native activation behavior of form
// controls the widgets rely on.
func (f *Fixture) applyClickDefault(n *html.Node, mods harness.Modifiers) {
	switch strings.ToLower(n.Data) {
	case "input":
		typ, _ := f.Attr(n, "type")
		switch strings.ToLower(typ) {
		case "checkbox":
			checked, _ := f.Property(n, "checked").(bool)
			f.SetProperty(n, "checked", !checked)
			f.SetProperty(n, "indeterminate", false)
			f.Dispatch(newSimpleEvent("input", n))
			f.Dispatch(newSimpleEvent("change", n))
		case "radio":
			f.checkRadio(n)
		}
	case "option":
		f.toggleOption(n, mods)
	}
}

// checkRadio checks the radio input and unchecks the rest of its group,
// identified by a shared name attribute.
func (f *Fixture) checkRadio(n *html.Node) {
	if checked, _ := f.Property(n, "checked").(bool); checked {
		return
	}
	name, _ := f.Attr(n, "name")
	if name != "" {
		group, err := f.queryAll(f.documentElement(), `input[type="radio"]`)
		if err == nil {
			for _, other := range group {
				otherName, _ := f.Attr(other, "name")
				if other != n && otherName == name {
					f.SetProperty(other, "checked", false)
				}
			}
		}
	}
	f.SetProperty(n, "checked", true)
	f.Dispatch(newSimpleEvent("input", n))
	f.Dispatch(newSimpleEvent("change", n))
}

// toggleOption applies select-option click semantics: with control held
// in a multi-select the option toggles; otherwise the click replaces the
// selection.
func (f *Fixture) toggleOption(n *html.Node, mods harness.Modifiers) {
	sel := n.Parent
	for sel != nil && strings.ToLower(sel.Data) != "select" {
		sel = sel.Parent
	}
	if sel == nil {
		return
	}
	_, multiple := f.Attr(sel, "multiple")
	if multiple && mods.Control {
		selected, _ := f.Property(n, "selected").(bool)
		f.SetProperty(n, "selected", !selected)
		return
	}
	siblings, err := f.queryAll(sel, "option")
	if err != nil {
		return
	}
	for _, o := range siblings {
		f.SetProperty(o, "selected", o == n)
	}
}

// focusNode moves focus to the node, blurring the previous holder.
// Disabled controls refuse focus.
func (f *Fixture) focusNode(n *html.Node) {
	if f.focused == n || f.isDisabledControl(n) {
		return
	}
	if f.focused != nil {
		f.blurNode(f.focused)
	}
	f.focused = n
	f.Dispatch(&Event{Type: "focus", Target: n})
	f.Dispatch(newSimpleEvent("focusin", n))
}

// blurNode removes focus from the node if it holds it.
func (f *Fixture) blurNode(n *html.Node) {
	if f.focused != n {
		return
	}
	f.focused = nil
	f.Dispatch(&Event{Type: "blur", Target: n})
	f.Dispatch(newSimpleEvent("focusout", n))
}

// typeKey dispatches one key's event sequence and applies text editing
// to the node's value when the key produces or removes a character.
func (f *Fixture) typeKey(n *html.Node, key string, mods harness.Modifiers, isChar bool) {
	down := newKeyEvent("keydown", key, n, mods)
	f.Dispatch(down)
	editable := f.isTextEntry(n) && !f.isReadOnly(n)
	if !down.DefaultPrevented && editable {
		value, _ := f.Property(n, "value").(string)
		switch {
		case isChar && !mods.Control && !mods.Alt && !mods.Meta:
			f.Dispatch(newKeyEvent("keypress", key, n, mods))
			f.SetProperty(n, "value", value+key)
			f.Dispatch(newSimpleEvent("input", n))
		case key == "Backspace" && value != "":
			runes := []rune(value)
			f.SetProperty(n, "value", string(runes[:len(runes)-1]))
			f.Dispatch(newSimpleEvent("input", n))
		}
	}
	f.Dispatch(newKeyEvent("keyup", key, n, mods))
}

// isDisabledControl reports whether the node is a form control carrying
// the disabled attribute or an aria-disabled marker.
func (f *Fixture) isDisabledControl(n *html.Node) bool {
	if _, disabled := f.Attr(n, "disabled"); disabled {
		return true
	}
	if v, ok := f.Attr(n, "aria-disabled"); ok && strings.EqualFold(v, "true") {
		return true
	}
	return false
}

func (f *Fixture) isReadOnly(n *html.Node) bool {
	_, ro := f.Attr(n, "readonly")
	return ro
}

// isTextEntry reports whether keystrokes edit the node's value.
func (f *Fixture) isTextEntry(n *html.Node) bool {
	switch strings.ToLower(n.Data) {
	case "textarea":
		return true
	case "input":
		typ, _ := f.Attr(n, "type")
		switch strings.ToLower(typ) {
		case "checkbox", "radio", "submit", "button", "reset", "image", "hidden":
			return false
		default:
			return true
		}
	default:
		return false
	}
}

// isFocusable reports whether clicking the node gives it focus.
func (f *Fixture) isFocusable(n *html.Node) bool {
	if f.isDisabledControl(n) {
		return false
	}
	switch strings.ToLower(n.Data) {
	case "input", "textarea", "select", "button":
		return true
	case "a":
		_, href := f.Attr(n, "href")
		return href
	}
	_, tabindex := f.Attr(n, "tabindex")
	return tabindex
}
