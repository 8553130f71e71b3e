// Package widgets provides typed harnesses for the glasswing widget
// set. Each harness is a semantic facade over one widget instance,
// implemented purely in terms of harness.Locator and harness.TestElement
// calls, so the same harness code runs unchanged against the fixture and
// cdpdriver backends.
//
// The widgets follow a shared DOM contract: every widget's host element
// carries a "gw-"-prefixed class (".gw-checkbox", ".gw-tab-group", ...)
// and exposes its state through attributes and form-control properties
// rather than rendered appearance. Harnesses never reach into a widget's
// internals beyond that contract.
//
// Each widget exposes a <Widget>HostSelector constant, a <Widget>With
// constructor turning a filter struct into a harness.Predicate, and
// semantic operations. A zero-value filter struct matches every instance
// in scope.
package widgets
