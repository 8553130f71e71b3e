package cdpdriver

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// documentRootExpr addresses the document element, the scope of a
// document-root environment.
const documentRootExpr = "document.documentElement"

// settleScript resolves after two animation frames, the point at which
// pending rendering work from before the call has flushed.
const settleScript = "new Promise(resolve => requestAnimationFrame(() => requestAnimationFrame(() => resolve(true))))"

// jsonEncode safely encodes a value for injection into a script.
func jsonEncode(v any) string {
	b, err := jsoniter.Marshal(v)
	if err != nil {
		return `""`
	}
	return string(b)
}

// elementExpr addresses the i-th match of selector under the scope
// expression. Evaluating it again later re-resolves against the live
// tree.
func elementExpr(rootExpr, selector string, index int) string {
	return fmt.Sprintf("(%s).querySelectorAll(%s)[%d]", rootExpr, jsonEncode(selector), index)
}

// queryCountExpr counts matches of selector under the scope expression.
func queryCountExpr(rootExpr, selector string) string {
	return fmt.Sprintf("(() => { const r = (%s); return r ? r.querySelectorAll(%s).length : -1; })()",
		rootExpr, jsonEncode(selector))
}

// nodeScript wraps a per-element script body. The body sees `node` bound
// to the live element and must return the envelope value; a detached or
// missing node short-circuits to a stale marker before the body runs.
func nodeScript(expr, body string) string {
	return fmt.Sprintf(`(() => {
  const node = (%s);
  if (!node || !node.isConnected) return { stale: true };
  const run = (node) => { %s };
  return { value: run(node) };
})()`, expr, body)
}

// dispatchEventBody synthesizes and fires a DOM-style event on `node`.
//
// The event is assembled from the generic Event base and readonly
// properties are attached with property-descriptor overrides instead of
// native initializer methods, which not every automation backend
// supports. defaultPrevented is set explicitly on preventDefault calls
// because synthetic events do not get it updated automatically.
func dispatchEventBody(name string, data map[string]any) string {
	if data == nil {
		data = map[string]any{}
	}
	return fmt.Sprintf(`
  const event = document.createEvent('Event');
  event.initEvent(%s, true, true);
  const originalPreventDefault = event.preventDefault;
  event.preventDefault = function() {
    Object.defineProperty(event, 'defaultPrevented', { configurable: true, get: () => true });
    return originalPreventDefault.apply(this, arguments);
  };
  const data = %s;
  for (const key of Object.keys(data)) {
    Object.defineProperty(event, key, { configurable: true, get: () => data[key] });
  }
  node.dispatchEvent(event);
  return true;`, jsonEncode(name), jsonEncode(data))
}

// textBody collects the node's visible text, optionally dropping
// descendants matching the exclude selector from a detached clone so the
// live tree is never mutated.
func textBody(exclude string) string {
	if exclude == "" {
		return "return (node.textContent || '').trim();"
	}
	return fmt.Sprintf(`
  const clone = node.cloneNode(true);
  clone.querySelectorAll(%s).forEach(el => el.remove());
  return (clone.textContent || '').trim();`, jsonEncode(exclude))
}

// geometryBody reads the border-box rectangle in viewport coordinates.
const geometryBody = `
  const rect = node.getBoundingClientRect();
  return { width: rect.width, height: rect.height, left: rect.left, top: rect.top };`

// selectOptionsClearBody clears the current selection of a select
// element without dispatching change; the subsequent per-option clicks
// produce the user-visible events.
const selectOptionsClearBody = `
  if (node.tagName !== 'SELECT') return false;
  for (const option of node.options) option.selected = false;
  return true;`
