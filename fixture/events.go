package fixture

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/glasswing-ui/glasswing/harness"
)

// Event is a synthetic DOM-style event flowing through the fixture.
//
// Event objects are assembled from this generic base for every event
// type; extra data properties live in Props and are readable by
// listeners exactly as they were attached. DefaultPrevented is flipped
// explicitly by PreventDefault because synthetic events cannot rely on a
// native initializer doing it, and mouse events carry an explicit
// "buttons" entry for the same reason.
type Event struct {
	Type             string
	Target           *html.Node
	CurrentTarget    *html.Node
	Bubbles          bool
	Cancelable       bool
	DefaultPrevented bool
	// Props holds extra properties copied onto the event object.
	Props map[string]any

	propagationStopped bool
}

// PreventDefault cancels the event's default action. DefaultPrevented is
// set explicitly rather than derived.
func (e *Event) PreventDefault() {
	if e.Cancelable {
		e.DefaultPrevented = true
	}
}

// StopPropagation stops the event from bubbling to further ancestors.
// Remaining listeners on the current target still run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

// Prop returns the named extra property, or nil when absent.
func (e *Event) Prop(name string) any {
	if e.Props == nil {
		return nil
	}
	return e.Props[name]
}

// ModifierProps reports the modifier chord carried by the event.
func (e *Event) ModifierProps() harness.Modifiers {
	b := func(name string) bool {
		v, _ := e.Prop(name).(bool)
		return v
	}
	return harness.Modifiers{
		Control: b("ctrlKey"),
		Alt:     b("altKey"),
		Shift:   b("shiftKey"),
		Meta:    b("metaKey"),
	}
}

// Listener handles one dispatched event.
type Listener func(*Event)

// newMouseEvent builds a mouse-family event. The buttons bitmask is set
// explicitly on the event object; synthetic initializers default it to
// zero, which breaks listeners that inspect it.
func newMouseEvent(typ string, target *html.Node, buttons int, mods harness.Modifiers) *Event {
	return &Event{
		Type:       typ,
		Target:     target,
		Bubbles:    typ != "mouseenter" && typ != "mouseleave",
		Cancelable: true,
		Props: map[string]any{
			"buttons":  buttons,
			"ctrlKey":  mods.Control,
			"altKey":   mods.Alt,
			"shiftKey": mods.Shift,
			"metaKey":  mods.Meta,
		},
	}
}

// newKeyEvent builds a keyboard-family event carrying the symbolic key
// name and the modifier chord.
func newKeyEvent(typ, key string, target *html.Node, mods harness.Modifiers) *Event {
	return &Event{
		Type:       typ,
		Target:     target,
		Bubbles:    true,
		Cancelable: true,
		Props: map[string]any{
			"key":      key,
			"ctrlKey":  mods.Control,
			"altKey":   mods.Alt,
			"shiftKey": mods.Shift,
			"metaKey":  mods.Meta,
		},
	}
}

// newSimpleEvent builds a bubbling, non-cancelable notification event
// (input, change, focusin, focusout).
func newSimpleEvent(typ string, target *html.Node) *Event {
	return &Event{Type: typ, Target: target, Bubbles: true}
}

// Dispatch delivers the event to listeners on its target and, when the
// event bubbles, on each ancestor in turn. There is no capture phase;
// the fixture models the bubbling path only.
func (f *Fixture) Dispatch(ev *Event) {
	if ev.Target == nil {
		return
	}
	for node := ev.Target; node != nil; node = node.Parent {
		if node.Type != html.ElementNode && node.Type != html.DocumentNode {
			continue
		}
		ev.CurrentTarget = node
		for _, fn := range f.listenersFor(node, ev.Type) {
			fn(ev)
		}
		if !ev.Bubbles || ev.propagationStopped {
			break
		}
	}
}

// AddListener registers a listener for events of the given type on the
// node.
func (f *Fixture) AddListener(n *html.Node, typ string, fn Listener) {
	if f.listeners[n] == nil {
		f.listeners[n] = make(map[string][]Listener)
	}
	f.listeners[n][typ] = append(f.listeners[n][typ], fn)
}

// On registers a listener on every current match of the selector. It
// fails when the selector matches nothing, which in practice means the
// test page is missing the element the behavior was written for.
func (f *Fixture) On(selector, typ string, fn Listener) error {
	nodes, err := f.queryAll(f.documentElement(), selector)
	if err != nil {
		return err
	}
	if len(nodes) == 0 {
		return &harness.NotFoundError{Selector: selector}
	}
	for _, n := range nodes {
		f.AddListener(n, typ, fn)
	}
	return nil
}

func (f *Fixture) listenersFor(n *html.Node, typ string) []Listener {
	byType := f.listeners[n]
	if byType == nil {
		return nil
	}
	// Copy so a listener mutating the registry does not skew delivery.
	src := byType[strings.ToLower(typ)]
	if len(src) == 0 {
		src = byType[typ]
	}
	out := make([]Listener, len(src))
	copy(out, src)
	return out
}
