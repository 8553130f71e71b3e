package widgets

import (
	"context"

	"github.com/glasswing-ui/glasswing/harness"
)

// Host selectors of the autocomplete widgets.
const (
	AutocompleteHostSelector       = ".gw-autocomplete"
	AutocompleteOptionHostSelector = ".gw-option"
)

// AutocompleteOption drives one option row in an autocomplete panel.
type AutocompleteOption struct {
	harness.ComponentHarnessBase
}

// NewAutocompleteOption binds an option harness to its scoped
// environment.
func NewAutocompleteOption(env harness.Environment) *AutocompleteOption {
	return &AutocompleteOption{harness.NewComponentHarnessBase(env)}
}

// AutocompleteOptionFilters narrow an option predicate.
type AutocompleteOptionFilters struct {
	Text *harness.StringFilter
}

// AutocompleteOptionWith returns a predicate selecting options that
// satisfy the filters.
func AutocompleteOptionWith(f AutocompleteOptionFilters) *harness.Predicate[*AutocompleteOption] {
	p := harness.NewPredicate(AutocompleteOptionHostSelector, NewAutocompleteOption)
	harness.AddStringOption(p, "text", f.Text, func(ctx context.Context, h *AutocompleteOption) (string, error) {
		return h.Text(ctx)
	})
	return p
}

// Text returns the option's visible text.
func (h *AutocompleteOption) Text(ctx context.Context) (string, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return "", err
	}
	return host.Text(ctx)
}

// IsDisabled reports whether the option rejects selection.
func (h *AutocompleteOption) IsDisabled(ctx context.Context) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	return disabledState(ctx, host)
}

// Select picks the option by clicking it.
func (h *AutocompleteOption) Select(ctx context.Context) error {
	host, err := h.Host(ctx)
	if err != nil {
		return err
	}
	return host.Click(ctx)
}

// Autocomplete drives a text input with a floating suggestion panel. The
// panel is projected outside the widget's own subtree; while it is open
// the host references it through aria-owns, which is read on every call
// and resolved against the document root, never cached.
type Autocomplete struct {
	harness.ComponentHarnessBase
}

// NewAutocomplete binds an autocomplete harness to its scoped
// environment.
func NewAutocomplete(env harness.Environment) *Autocomplete {
	return &Autocomplete{harness.NewComponentHarnessBase(env)}
}

// AutocompleteFilters narrow an autocomplete predicate.
type AutocompleteFilters struct {
	Value *harness.StringFilter
}

// AutocompleteWith returns a predicate selecting autocompletes that
// satisfy the filters.
func AutocompleteWith(f AutocompleteFilters) *harness.Predicate[*Autocomplete] {
	p := harness.NewPredicate(AutocompleteHostSelector, NewAutocomplete)
	harness.AddStringOption(p, "value", f.Value, func(ctx context.Context, h *Autocomplete) (string, error) {
		return h.Value(ctx)
	})
	return p
}

func (h *Autocomplete) input(ctx context.Context) (harness.TestElement, error) {
	return h.Locator().Find(ctx, "input.gw-autocomplete-input")
}

// Value returns the input's current text.
func (h *Autocomplete) Value(ctx context.Context) (string, error) {
	input, err := h.input(ctx)
	if err != nil {
		return "", err
	}
	return stringProp(ctx, input, "value")
}

// EnterText focuses the input and types the text character by
// character, driving the widget's filtering the way a user would.
func (h *Autocomplete) EnterText(ctx context.Context, text string) error {
	input, err := h.input(ctx)
	if err != nil {
		return err
	}
	return input.SendKeys(ctx, harness.Modifiers{}, harness.Chars(text))
}

// Clear empties the input.
func (h *Autocomplete) Clear(ctx context.Context) error {
	input, err := h.input(ctx)
	if err != nil {
		return err
	}
	return input.Clear(ctx)
}

// Focus focuses the input, which opens the suggestion panel.
func (h *Autocomplete) Focus(ctx context.Context) error {
	input, err := h.input(ctx)
	if err != nil {
		return err
	}
	return input.Focus(ctx)
}

// Blur removes focus from the input.
func (h *Autocomplete) Blur(ctx context.Context) error {
	input, err := h.input(ctx)
	if err != nil {
		return err
	}
	return input.Blur(ctx)
}

// panel resolves the floating suggestion panel, nil while it is closed.
// The widget sets aria-owns only for the panel's lifetime, so presence
// of the reference is the open signal.
func (h *Autocomplete) panel(ctx context.Context) (harness.TestElement, error) {
	if err := h.ForceStabilize(ctx); err != nil {
		return nil, err
	}
	return h.ReferencedPanel(ctx, "aria-owns")
}

// IsOpen reports whether the suggestion panel is showing.
func (h *Autocomplete) IsOpen(ctx context.Context) (bool, error) {
	panel, err := h.panel(ctx)
	if err != nil {
		return false, err
	}
	return panel != nil, nil
}

func (h *Autocomplete) panelLocator(ctx context.Context) (*harness.Locator, error) {
	panel, err := h.panel(ctx)
	if err != nil {
		return nil, err
	}
	if panel == nil {
		return nil, nil
	}
	env, err := h.Environment().DocumentRoot().ChildEnvironment(panel)
	if err != nil {
		return nil, err
	}
	return harness.NewLocator(env), nil
}

// Options returns the panel's options passing the filters, in document
// order. A closed panel yields no options.
func (h *Autocomplete) Options(ctx context.Context, f AutocompleteOptionFilters) ([]*AutocompleteOption, error) {
	loc, err := h.panelLocator(ctx)
	if err != nil || loc == nil {
		return []*AutocompleteOption{}, err
	}
	return harness.GetAll(ctx, loc, AutocompleteOptionWith(f))
}

// SelectOption picks the first option matching the filters. No matching
// option, including a closed panel, fails with a NotFoundError naming
// the active filters.
func (h *Autocomplete) SelectOption(ctx context.Context, f AutocompleteOptionFilters) error {
	p := AutocompleteOptionWith(f)
	loc, err := h.panelLocator(ctx)
	if err != nil {
		return err
	}
	if loc == nil {
		return &harness.NotFoundError{Selector: p.Selector(), Filters: p.Descriptions()}
	}
	option, err := harness.Get(ctx, loc, p)
	if err != nil {
		return err
	}
	return option.Select(ctx)
}
