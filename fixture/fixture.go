// Package fixture is the in-process DOM backend for the harness
// contracts. It parses a static HTML page, tracks element properties,
// focus and listeners on top of the parsed tree, and stands in for the
// rendering pipeline with an explicit work queue drained by
// ForceStabilize. Test pages script widget behavior by attaching Go
// listeners with On and mutating the tree through the fixture's
// mutation helpers.
package fixture

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/glasswing-ui/glasswing/harness"
)

// Fixture owns one parsed page: the tree, the listener registry, dynamic
// element properties that have no attribute reflection (value, checked),
// the focused node, and the queue of pending asynchronous work.
//
// A fixture belongs to one test; it is driven by a single logical actor
// and holds no cross-test state.
type Fixture struct {
	logger *zap.Logger

	doc  *goquery.Document
	root *html.Node

	listeners map[*html.Node]map[string][]Listener
	props     map[*html.Node]map[string]any
	focused   *html.Node

	queue []func()
	idSeq atomic.Int64
}

// Option configures a Fixture.
type Option func(*Fixture)

// WithLogger attaches a logger; the default is a nop logger.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fixture) { f.logger = l }
}

// Load parses the HTML source into a fixture.
func Load(src string, opts ...Option) (*Fixture, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parsing fixture page: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("fixture page parsed to an empty document")
	}
	f := &Fixture{
		logger:    zap.NewNop(),
		doc:       doc,
		root:      doc.Nodes[0],
		listeners: make(map[*html.Node]map[string][]Listener),
		props:     make(map[*html.Node]map[string]any),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = f.logger.Named("fixture")
	return f, nil
}

// Environment returns a harness environment scoped to the document root.
func (f *Fixture) Environment() harness.Environment {
	return &environment{f: f, root: f.documentElement()}
}

// Schedule queues asynchronous work standing in for a pending rendering
// or update pass. The work runs when the fixture stabilizes, not before;
// reads through the harness layer stabilize first and therefore observe
// its effects.
func (f *Fixture) Schedule(fn func()) {
	f.queue = append(f.queue, fn)
}

// ForceStabilize drains the pending-work queue, including work scheduled
// by the work it runs.
func (f *Fixture) ForceStabilize(ctx context.Context) error {
	for len(f.queue) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn := f.queue[0]
		f.queue = f.queue[1:]
		fn()
	}
	return nil
}

// NextID returns a fresh unique id with the given prefix.
func (f *Fixture) NextID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, f.idSeq.Add(1))
}

// documentElement returns the <html> element, or the parse root when the
// source had no document element.
func (f *Fixture) documentElement() *html.Node {
	for n := f.root.FirstChild; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return f.root
}

// attached reports whether the node is still part of the document tree.
func (f *Fixture) attached(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == f.root {
			return true
		}
	}
	return false
}

// queryAll returns every element in root's subtree matching the selector
// group, in document order. The root itself is excluded, matching
// querySelectorAll scoping.
func (f *Fixture) queryAll(root *html.Node, selector string) ([]*html.Node, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && sel.Match(c) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(root)
	return out, nil
}

// matches reports whether a single element matches the selector group.
func (f *Fixture) matches(n *html.Node, selector string) (bool, error) {
	sel, err := cascadia.ParseGroup(selector)
	if err != nil {
		return false, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return sel.Match(n), nil
}

// -- Attribute and property access --

// Attr returns the attribute value and whether it is present.
func (f *Fixture) Attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (f *Fixture) SetAttr(n *html.Node, name, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr deletes an attribute if present.
func (f *Fixture) RemoveAttr(n *html.Node, name string) {
	for i := range n.Attr {
		if n.Attr[i].Key == name {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// AddClass adds a class to the element's class attribute.
func (f *Fixture) AddClass(n *html.Node, class string) {
	cur, _ := f.Attr(n, "class")
	if harness.ClassListContains(cur, class) {
		return
	}
	f.SetAttr(n, "class", strings.TrimSpace(cur+" "+class))
}

// RemoveClass removes a class from the element's class attribute.
func (f *Fixture) RemoveClass(n *html.Node, class string) {
	cur, _ := f.Attr(n, "class")
	fields := strings.Fields(cur)
	out := fields[:0]
	for _, c := range fields {
		if c != class {
			out = append(out, c)
		}
	}
	f.SetAttr(n, "class", strings.Join(out, " "))
}

// SetText replaces the node's children with a single text node.
func (f *Fixture) SetText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// Detach removes the node from the tree. Handles bound to it become
// stale.
func (f *Fixture) Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Property returns the node's dynamic property, falling back to the
// attribute reflection browsers provide for the common form-control
// properties.
func (f *Fixture) Property(n *html.Node, name string) any {
	if props, ok := f.props[n]; ok {
		if v, ok := props[name]; ok {
			return v
		}
	}
	switch name {
	case "value":
		v, _ := f.Attr(n, "value")
		return v
	case "checked", "selected", "disabled", "required", "readOnly", "multiple":
		attr := strings.ToLower(name)
		_, present := f.Attr(n, attr)
		return present
	case "indeterminate":
		return false
	case "id":
		v, _ := f.Attr(n, "id")
		return v
	case "tagName", "nodeName":
		return strings.ToUpper(n.Data)
	case "textContent":
		return textContent(n, nil)
	default:
		if v, present := f.Attr(n, name); present {
			return v
		}
		return nil
	}
}

// SetProperty sets a dynamic property on the node.
func (f *Fixture) SetProperty(n *html.Node, name string, value any) {
	if f.props[n] == nil {
		f.props[n] = make(map[string]any)
	}
	f.props[n][name] = value
}

// textContent collects the subtree's text, skipping elements matched by
// exclude when non-nil.
func textContent(n *html.Node, exclude cascadia.SelectorGroup) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.TextNode {
				sb.WriteString(c.Data)
				continue
			}
			if c.Type != html.ElementNode {
				continue
			}
			if exclude != nil && exclude.Match(c) {
				continue
			}
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// -- Environment implementation --

type environment struct {
	f    *Fixture
	root *html.Node
}

var _ harness.Environment = (*environment)(nil)

func (e *environment) RootElement(ctx context.Context) (harness.TestElement, error) {
	if err := e.f.ForceStabilize(ctx); err != nil {
		return nil, err
	}
	if !e.f.attached(e.root) {
		return nil, fmt.Errorf("resolving scope root: %w", harness.ErrStaleElement)
	}
	return &Element{f: e.f, node: e.root}, nil
}

func (e *environment) QueryAll(ctx context.Context, selector string) ([]harness.TestElement, error) {
	if err := e.f.ForceStabilize(ctx); err != nil {
		return nil, err
	}
	if !e.f.attached(e.root) {
		return nil, fmt.Errorf("querying %q: %w", selector, harness.ErrStaleElement)
	}
	nodes, err := e.f.queryAll(e.root, selector)
	if err != nil {
		return nil, err
	}
	out := make([]harness.TestElement, len(nodes))
	for i, n := range nodes {
		out[i] = &Element{f: e.f, node: n}
	}
	return out, nil
}

func (e *environment) DocumentRoot() harness.Environment {
	return &environment{f: e.f, root: e.f.documentElement()}
}

func (e *environment) ChildEnvironment(el harness.TestElement) (harness.Environment, error) {
	fe, ok := el.(*Element)
	if !ok {
		return nil, fmt.Errorf("element %T does not belong to the fixture backend", el)
	}
	return &environment{f: e.f, root: fe.node}, nil
}

func (e *environment) ForceStabilize(ctx context.Context) error {
	return e.f.ForceStabilize(ctx)
}

func (e *environment) NextID(prefix string) string {
	return e.f.NextID(prefix)
}
