// Package harness defines a backend-agnostic contract for driving and
// inspecting rendered UI widgets from tests.
//
// The core pieces compose hierarchically: an Environment resolves CSS
// selectors to TestElement handles within a scope, a Locator wraps an
// Environment with the query semantics tests rely on, a Predicate filters
// widget harnesses by typed options, and ComponentHarnessBase is the
// building block every per-widget harness embeds.
//
// Two interchangeable backends implement the Environment and TestElement
// contracts: package fixture (an in-process DOM) and package cdpdriver
// (a live Chrome tab over the DevTools protocol). Harness code written
// against this package behaves identically on both.
package harness
