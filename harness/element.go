package harness

import (
	"context"
	"strings"
)

// Point is a coordinate pair relative to an element's top-left corner.
type Point struct {
	X float64
	Y float64
}

// Rect describes an element's rendered geometry.
type Rect struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
}

// Modifiers describes the modifier keys held while another input action is
// performed (modifier chording).
type Modifiers struct {
	Control bool
	Alt     bool
	Shift   bool
	Meta    bool
}

// None reports whether no modifier key is held.
func (m Modifiers) None() bool {
	return !m.Control && !m.Alt && !m.Shift && !m.Meta
}

// Anchor names a click position relative to the element box.
type Anchor string

const (
	// AnchorCenter targets the center of the element box. This is the
	// default when no offset is given.
	AnchorCenter Anchor = "center"
	// AnchorTopLeft targets the element box origin.
	AnchorTopLeft Anchor = "top-left"
)

// ClickSpec is the resolved configuration of a Click or RightClick call.
type ClickSpec struct {
	Anchor    Anchor
	Offset    *Point
	Modifiers Modifiers
}

// ClickOption customizes a Click or RightClick call.
type ClickOption func(*ClickSpec)

// AtOffset clicks at an explicit offset from the element's top-left corner.
func AtOffset(x, y float64) ClickOption {
	return func(s *ClickSpec) { s.Offset = &Point{X: x, Y: y} }
}

// AtAnchor clicks at a named position within the element box.
func AtAnchor(a Anchor) ClickOption {
	return func(s *ClickSpec) { s.Anchor = a }
}

// WithModifiers holds the given modifier keys during the click.
func WithModifiers(m Modifiers) ClickOption {
	return func(s *ClickSpec) { s.Modifiers = m }
}

// ResolveClickSpec folds the given options into a ClickSpec. With no
// options the spec targets the element center with no modifiers held.
func ResolveClickSpec(opts []ClickOption) ClickSpec {
	spec := ClickSpec{Anchor: AnchorCenter}
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

// RelativePoint resolves the spec against an element box of the given size,
// returning the click point relative to the box origin.
func (s ClickSpec) RelativePoint(width, height float64) Point {
	if s.Offset != nil {
		return *s.Offset
	}
	switch s.Anchor {
	case AnchorTopLeft:
		return Point{}
	default:
		return Point{X: width / 2, Y: height / 2}
	}
}

// TextSpec is the resolved configuration of a Text call.
type TextSpec struct {
	// Exclude is a selector for descendants whose text is omitted.
	Exclude string
}

// TextOption customizes a Text call.
type TextOption func(*TextSpec)

// ExcludeText omits the text of descendants matching the selector.
func ExcludeText(selector string) TextOption {
	return func(s *TextSpec) { s.Exclude = selector }
}

// ResolveTextSpec folds the given options into a TextSpec.
func ResolveTextSpec(opts []TextOption) TextSpec {
	var spec TextSpec
	for _, opt := range opts {
		opt(&spec)
	}
	return spec
}

// TestElement is the capability surface over a single rendered element.
//
// Every operation may suspend (a backend round trip or a pending render
// flush) and fails with ErrStaleElement when the bound node has been
// removed from the render tree since resolution. Handles are valid only
// for the call chain that obtained them; callers must not cache them
// across actions that can re-render.
type TestElement interface {
	// Click dispatches a left-button click. With no options the click
	// lands at the element center.
	Click(ctx context.Context, opts ...ClickOption) error
	// RightClick dispatches a right-button (context menu) click.
	RightClick(ctx context.Context, opts ...ClickOption) error
	// Hover moves the pointer onto the element.
	Hover(ctx context.Context) error
	// MouseAway moves the pointer off the element.
	MouseAway(ctx context.Context) error
	// Focus gives the element keyboard focus.
	Focus(ctx context.Context) error
	// Blur removes keyboard focus from the element.
	Blur(ctx context.Context) error
	// IsFocused reports whether the element currently has focus.
	IsFocused(ctx context.Context) (bool, error)
	// Clear empties an input or textarea element.
	Clear(ctx context.Context) error
	// SendKeys dispatches the given keys character by character while
	// holding the given modifiers. Special keys come from the symbolic
	// Key table; literal text is sent with Chars.
	SendKeys(ctx context.Context, mods Modifiers, keys ...KeyIn) error
	// SetInputValue sets the value of an input element directly and
	// notifies listeners with an input event.
	SetInputValue(ctx context.Context, value string) error
	// SelectOptions selects the options at the given indexes of a select
	// element. The current selection is cleared first; each index is then
	// toggled with a control-key-held click. The control key is held in
	// single-select mode too, where it is harmless.
	SelectOptions(ctx context.Context, indexes ...int) error
	// Text returns the element's visible text, trimmed.
	Text(ctx context.Context, opts ...TextOption) (string, error)
	// Attribute returns the value of the named attribute, or nil when the
	// attribute is absent.
	Attribute(ctx context.Context, name string) (*string, error)
	// Property returns the value of the named DOM property.
	Property(ctx context.Context, name string) (any, error)
	// CSSValue returns the computed value of the named style property.
	CSSValue(ctx context.Context, name string) (string, error)
	// HasClass reports whether the element's class attribute contains the
	// given name.
	HasClass(ctx context.Context, name string) (bool, error)
	// Dimensions returns the element's rendered geometry.
	Dimensions(ctx context.Context) (Rect, error)
	// MatchesSelector reports whether the element matches the selector.
	MatchesSelector(ctx context.Context, selector string) (bool, error)
	// DispatchEvent synthesizes and fires a DOM-style event. Extra data
	// properties are copied onto the event object and are readable by
	// listeners.
	DispatchEvent(ctx context.Context, name string, data map[string]any) error
}

// ClassListContains reports whether the whitespace-separated class
// attribute value contains name. Both backends derive HasClass from this
// helper instead of a native class-list call so the two agree on edge
// cases like duplicate and surrounding whitespace.
func ClassListContains(classAttr, name string) bool {
	if name == "" {
		return false
	}
	for _, c := range strings.Fields(classAttr) {
		if c == name {
			return true
		}
	}
	return false
}
