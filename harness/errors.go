package harness

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStaleElement indicates that an element handle's backing node is no
// longer attached to the render tree, usually because the page navigated
// or re-rendered after the handle was resolved.
var ErrStaleElement = errors.New("element is stale or detached from the document")

// ErrNotFound is the sentinel matched by errors.Is for every NotFoundError.
var ErrNotFound = errors.New("no matching element found")

// NotFoundError reports that a required single-match query produced no
// matches. It carries the selector and, for predicate-filtered queries,
// the descriptions of the filters that were active, so composite harness
// operations can surface which filter eliminated every candidate.
type NotFoundError struct {
	Selector string
	Filters  []string
}

func (e *NotFoundError) Error() string {
	if len(e.Filters) == 0 {
		return fmt.Sprintf("no element matches selector %q", e.Selector)
	}
	return fmt.Sprintf("no element matches selector %q with filters (%s)",
		e.Selector, strings.Join(e.Filters, ", "))
}

// Is makes errors.Is(err, ErrNotFound) succeed for NotFoundErrors.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// WithFilter returns a copy of the error annotated with an additional
// filter description. Composite operations use this to augment a
// lower-level NotFoundError with the originating filter before
// rethrowing; the original error is never swallowed.
func (e *NotFoundError) WithFilter(description string) *NotFoundError {
	filters := make([]string, 0, len(e.Filters)+1)
	filters = append(filters, e.Filters...)
	filters = append(filters, description)
	return &NotFoundError{Selector: e.Selector, Filters: filters}
}
