package harness

import (
	"context"
	"fmt"
	"regexp"
)

// StringFilter is the dual-mode text filter used by every text option in
// the library: a literal built with Exactly matches only on exact
// equality, a pattern built with Matching matches whenever the pattern
// tests true against the candidate text.
type StringFilter struct {
	literal string
	pattern *regexp.Regexp
	isExact bool
}

// Exactly returns a filter matching candidate text equal to s.
func Exactly(s string) *StringFilter {
	return &StringFilter{literal: s, isExact: true}
}

// Matching returns a filter matching candidate text the pattern tests
// true against.
func Matching(re *regexp.Regexp) *StringFilter {
	return &StringFilter{pattern: re}
}

// Match reports whether the candidate text satisfies the filter.
func (f *StringFilter) Match(s string) bool {
	if f.isExact {
		return s == f.literal
	}
	return f.pattern.MatchString(s)
}

func (f *StringFilter) String() string {
	if f.isExact {
		return fmt.Sprintf("%q", f.literal)
	}
	return fmt.Sprintf("/%s/", f.pattern.String())
}

// Predicate filters instances of one harness type. It wraps the type's
// host selector with a list of named matchers; a candidate is selected
// only when every registered matcher passes. Matchers run against the
// harness instance's own query methods, never against the raw DOM, so
// the same filtering logic serves both predicate queries and ad-hoc
// assertions.
type Predicate[T ComponentHarness] struct {
	selector     string
	build        func(Environment) T
	descriptions []string
	matchers     []func(ctx context.Context, h T) (bool, error)
}

// NewPredicate returns a predicate for the harness type rooted at the
// given host selector. With no options added it matches every instance
// of the type in scope.
func NewPredicate[T ComponentHarness](hostSelector string, build func(Environment) T) *Predicate[T] {
	return &Predicate[T]{selector: hostSelector, build: build}
}

// Selector returns the host selector the predicate queries for.
func (p *Predicate[T]) Selector() string {
	return p.selector
}

// Descriptions returns the human-readable descriptions of all registered
// matchers, used to annotate NotFoundErrors.
func (p *Predicate[T]) Descriptions() []string {
	return p.descriptions
}

// Add registers a matcher under a description and returns the predicate
// for chaining.
func (p *Predicate[T]) Add(description string, match func(ctx context.Context, h T) (bool, error)) *Predicate[T] {
	p.descriptions = append(p.descriptions, description)
	p.matchers = append(p.matchers, match)
	return p
}

// Evaluate reports whether the harness instance passes every registered
// matcher.
func (p *Predicate[T]) Evaluate(ctx context.Context, h T) (bool, error) {
	for i, match := range p.matchers {
		ok, err := match(ctx, h)
		if err != nil {
			return false, fmt.Errorf("predicate %q: %w", p.descriptions[i], err)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// AddOption registers a conditional matcher: when value is nil the option
// is absent and the check is skipped entirely (absent filter = always
// matches); otherwise the matcher requires match(ctx, h, *value) to be
// true.
func AddOption[T ComponentHarness, V any](p *Predicate[T], name string, value *V, match func(ctx context.Context, h T, value V) (bool, error)) *Predicate[T] {
	if value == nil {
		return p
	}
	v := *value
	return p.Add(fmt.Sprintf("%s = %v", name, v), func(ctx context.Context, h T) (bool, error) {
		return match(ctx, h, v)
	})
}

// AddStringOption registers a StringFilter-valued option. A nil filter is
// absent and skipped.
func AddStringOption[T ComponentHarness](p *Predicate[T], name string, value *StringFilter, text func(ctx context.Context, h T) (string, error)) *Predicate[T] {
	if value == nil {
		return p
	}
	return p.Add(fmt.Sprintf("%s = %v", name, value), func(ctx context.Context, h T) (bool, error) {
		s, err := text(ctx, h)
		if err != nil {
			return false, err
		}
		return value.Match(s), nil
	})
}

// GetAll resolves every instance of the predicate's harness type within
// the locator's scope that passes all registered matchers, in document
// order. Zero matches return an empty slice.
func GetAll[T ComponentHarness](ctx context.Context, l *Locator, p *Predicate[T]) ([]T, error) {
	roots, err := l.FindAll(ctx, p.selector)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(roots))
	for _, root := range roots {
		child, err := l.Environment().ChildEnvironment(root)
		if err != nil {
			return nil, fmt.Errorf("scoping harness %q: %w", p.selector, err)
		}
		h := p.build(child)
		ok, err := p.Evaluate(ctx, h)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, h)
		}
	}
	return out, nil
}

// Get resolves the first matching harness instance. Zero matches fail
// with a NotFoundError naming the active filters; as with element
// queries, multiple matches silently yield the first.
func Get[T ComponentHarness](ctx context.Context, l *Locator, p *Predicate[T]) (T, error) {
	var zero T
	all, err := GetAll(ctx, l, p)
	if err != nil {
		return zero, err
	}
	if len(all) == 0 {
		return zero, &NotFoundError{Selector: p.selector, Filters: p.descriptions}
	}
	return all[0], nil
}

// GetOptional is Get, except zero matches return the zero harness value
// and found reports false.
func GetOptional[T ComponentHarness](ctx context.Context, l *Locator, p *Predicate[T]) (h T, found bool, err error) {
	all, err := GetAll(ctx, l, p)
	if err != nil {
		return h, false, err
	}
	if len(all) == 0 {
		return h, false, nil
	}
	return all[0], true, nil
}
