// Package migrate implements the declarative edit engine behind the
// source-to-source migration CLI. Rules emit offset edits against file
// content; the engine merges edits from all rules, rejects overlaps, and
// applies them late in descending offset order so earlier edits never
// shift the offsets of later ones.
package migrate

import (
	"errors"
	"fmt"
	"sort"
)

// Edit replaces Length bytes at Start with Insert. A zero Length is a
// pure insertion; an empty Insert is a deletion.
type Edit struct {
	Start  int
	Length int
	Insert string
}

// End returns the offset one past the edited range.
func (e Edit) End() int {
	return e.Start + e.Length
}

// ErrConflict is the sentinel matched by errors.Is for edit conflicts.
var ErrConflict = errors.New("conflicting edits")

// ConflictError reports two overlapping edits in one file, naming the
// rules that produced them. Overlap between rules means the rules
// disagree about the same span; applying either order would corrupt the
// other's result, so the file is rejected instead.
type ConflictError struct {
	Path   string
	RuleA  string
	RuleB  string
	EditA  Edit
	EditB  Edit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: rules %q and %q produce overlapping edits at offsets %d and %d",
		e.Path, e.RuleA, e.RuleB, e.EditA.Start, e.EditB.Start)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// attributedEdit ties an edit to the rule that produced it for conflict
// reporting.
type attributedEdit struct {
	Edit
	rule string
}

// applyEdits merges the attributed edits and rewrites content. The edits
// must fall inside the content and must not overlap.
func applyEdits(path, content string, edits []attributedEdit) (string, error) {
	sorted := make([]attributedEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End() < sorted[j].End()
	})

	for i, e := range sorted {
		if e.Start < 0 || e.Length < 0 || e.End() > len(content) {
			return "", fmt.Errorf("%s: rule %q edit [%d,%d) outside content of %d bytes",
				path, e.rule, e.Start, e.End(), len(content))
		}
		if i > 0 && sorted[i-1].End() > e.Start {
			prev := sorted[i-1]
			return "", &ConflictError{
				Path:  path,
				RuleA: prev.rule,
				RuleB: e.rule,
				EditA: prev.Edit,
				EditB: e.Edit,
			}
		}
	}

	// Apply back to front so remaining offsets stay valid.
	out := content
	for i := len(sorted) - 1; i >= 0; i-- {
		e := sorted[i]
		out = out[:e.Start] + e.Insert + out[e.End():]
	}
	return out, nil
}
