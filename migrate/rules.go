package migrate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
)

// TargetKind classifies a migration target by what kind of text it
// holds. Rules declare which kinds they rewrite.
type TargetKind int

const (
	KindOther TargetKind = iota
	KindSource
	KindTemplate
	KindStylesheet
)

func (k TargetKind) String() string {
	switch k {
	case KindSource:
		return "source"
	case KindTemplate:
		return "template"
	case KindStylesheet:
		return "stylesheet"
	default:
		return "other"
	}
}

// ClassifyPath maps a file path to its target kind by extension.
func ClassifyPath(path string) TargetKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".js", ".mjs", ".cjs":
		return KindSource
	case ".html", ".htm":
		return KindTemplate
	case ".css", ".scss", ".sass", ".less":
		return KindStylesheet
	default:
		return KindOther
	}
}

// Target is one file under migration.
type Target struct {
	Path    string
	Kind    TargetKind
	Content string
}

// Rule produces edits for one target file. Implementations must be safe
// for concurrent use; the runner calls them from multiple workers.
type Rule interface {
	// Name identifies the rule in conflict reports and summaries.
	Name() string
	// Edits returns the rule's edits against the target, empty when the
	// rule has nothing to change. Returned offsets index into
	// target.Content.
	Edits(target *Target) ([]Edit, error)
}

// regexEdits emits a replacement edit per match of re in the content.
func regexEdits(content string, re *regexp.Regexp, replacement func(match string) string) []Edit {
	var edits []Edit
	for _, loc := range re.FindAllStringIndex(content, -1) {
		edits = append(edits, Edit{
			Start:  loc[0],
			Length: loc[1] - loc[0],
			Insert: replacement(content[loc[0]:loc[1]]),
		})
	}
	return edits
}

// sortedKeys returns the map keys longest first so alternation prefers
// the longest match, then lexicographic for determinism.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// AttributeSelectorRename renames element attributes across templates
// and the attribute selectors referencing them in stylesheets. The
// upstream codemods ship renames of deprecated attribute names in this
// shape.
type AttributeSelectorRename struct {
	// Renames maps old attribute names to their replacements.
	Renames map[string]string

	once sync.Once
	re   *regexp.Regexp
}

func (r *AttributeSelectorRename) Name() string { return "attribute-selector-rename" }

func (r *AttributeSelectorRename) pattern() *regexp.Regexp {
	r.once.Do(func() {
		alternatives := make([]string, 0, len(r.Renames))
		for _, k := range sortedKeys(r.Renames) {
			alternatives = append(alternatives, regexp.QuoteMeta(k))
		}
		// Attribute position in a template (<el old-attr ...>) or an
		// attribute selector in a stylesheet ([old-attr]).
		r.re = regexp.MustCompile(fmt.Sprintf(`(^|[\s\[])(%s)($|[\s\]=>])`, strings.Join(alternatives, "|")))
	})
	return r.re
}

func (r *AttributeSelectorRename) Edits(target *Target) ([]Edit, error) {
	if len(r.Renames) == 0 || (target.Kind != KindTemplate && target.Kind != KindStylesheet) {
		return nil, nil
	}
	re := r.pattern()
	var edits []Edit
	for _, m := range re.FindAllStringSubmatchIndex(target.Content, -1) {
		// Group 2 is the attribute name; the surrounding delimiters stay.
		start, end := m[4], m[5]
		old := target.Content[start:end]
		edits = append(edits, Edit{Start: start, Length: end - start, Insert: r.Renames[old]})
	}
	return edits, nil
}

// SymbolRename renames identifiers in source files on word boundaries.
type SymbolRename struct {
	// Renames maps old symbol names to their replacements.
	Renames map[string]string

	once sync.Once
	re   *regexp.Regexp
}

func (r *SymbolRename) Name() string { return "symbol-rename" }

func (r *SymbolRename) pattern() *regexp.Regexp {
	r.once.Do(func() {
		alternatives := make([]string, 0, len(r.Renames))
		for _, k := range sortedKeys(r.Renames) {
			alternatives = append(alternatives, regexp.QuoteMeta(k))
		}
		r.re = regexp.MustCompile(fmt.Sprintf(`\b(%s)\b`, strings.Join(alternatives, "|")))
	})
	return r.re
}

func (r *SymbolRename) Edits(target *Target) ([]Edit, error) {
	if len(r.Renames) == 0 || target.Kind != KindSource {
		return nil, nil
	}
	return regexEdits(target.Content, r.pattern(), func(match string) string {
		return r.Renames[match]
	}), nil
}
