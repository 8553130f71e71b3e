package cdpdriver

import (
	"github.com/chromedp/cdproto/input"

	"github.com/glasswing-ui/glasswing/harness"
)

// modifierMask converts a harness modifier chord to the CDP bitmask.
func modifierMask(m harness.Modifiers) input.Modifier {
	var mask input.Modifier
	if m.Alt {
		mask |= input.ModifierAlt
	}
	if m.Control {
		mask |= input.ModifierCtrl
	}
	if m.Meta {
		mask |= input.ModifierMeta
	}
	if m.Shift {
		mask |= input.ModifierShift
	}
	return mask
}

// keyActions builds the down/up event pair for one special key held
// under the given modifier chord. The DOM key name from the symbolic
// table is passed to CDP directly.
func keyActions(key harness.Key, mods harness.Modifiers) []*input.DispatchKeyEventParams {
	mask := modifierMask(mods)
	down := input.DispatchKeyEvent(input.KeyDown).
		WithModifiers(mask).
		WithKey(key.Name())
	up := input.DispatchKeyEvent(input.KeyUp).
		WithModifiers(mask).
		WithKey(key.Name())
	return []*input.DispatchKeyEventParams{down, up}
}

// charActions builds the down/up event pair for one literal character.
// The text payload rides the key-down event so the page receives the
// character insertion even under a modifier chord.
func charActions(ch string, mods harness.Modifiers) []*input.DispatchKeyEventParams {
	mask := modifierMask(mods)
	down := input.DispatchKeyEvent(input.KeyDown).
		WithModifiers(mask).
		WithKey(ch).
		WithText(ch).
		WithUnmodifiedText(ch)
	up := input.DispatchKeyEvent(input.KeyUp).
		WithModifiers(mask).
		WithKey(ch)
	return []*input.DispatchKeyEventParams{down, up}
}
