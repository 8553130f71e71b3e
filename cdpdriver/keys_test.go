package cdpdriver

import (
	"testing"

	"github.com/chromedp/cdproto/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasswing-ui/glasswing/harness"
)

func TestModifierMask(t *testing.T) {
	assert.Equal(t, input.Modifier(0), modifierMask(harness.Modifiers{}))
	assert.Equal(t, input.ModifierCtrl, modifierMask(harness.Modifiers{Control: true}))
	assert.Equal(t, input.ModifierAlt|input.ModifierShift,
		modifierMask(harness.Modifiers{Alt: true, Shift: true}))
	assert.Equal(t, input.ModifierAlt|input.ModifierCtrl|input.ModifierMeta|input.ModifierShift,
		modifierMask(harness.Modifiers{Control: true, Alt: true, Shift: true, Meta: true}))
}

func TestKeyActions(t *testing.T) {
	actions := keyActions(harness.KeyEnter, harness.Modifiers{Control: true})
	require.Len(t, actions, 2)

	assert.Equal(t, input.KeyDown, actions[0].Type)
	assert.Equal(t, "Enter", actions[0].Key)
	assert.Equal(t, input.ModifierCtrl, actions[0].Modifiers)

	assert.Equal(t, input.KeyUp, actions[1].Type)
	assert.Equal(t, "Enter", actions[1].Key)
}

func TestCharActions(t *testing.T) {
	actions := charActions("a", harness.Modifiers{Shift: true})
	require.Len(t, actions, 2)

	// The character payload rides the key-down event.
	assert.Equal(t, input.KeyDown, actions[0].Type)
	assert.Equal(t, "a", actions[0].Text)
	assert.Equal(t, "a", actions[0].UnmodifiedText)
	assert.Equal(t, input.ModifierShift, actions[0].Modifiers)

	assert.Equal(t, input.KeyUp, actions[1].Type)
	assert.Empty(t, actions[1].Text)
}
