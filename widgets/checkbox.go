package widgets

import (
	"context"

	"github.com/glasswing-ui/glasswing/harness"
)

// CheckboxHostSelector matches the host element of every checkbox widget.
const CheckboxHostSelector = ".gw-checkbox"

// Checkbox drives one checkbox widget: a host element wrapping a native
// checkbox input and a label span.
type Checkbox struct {
	harness.ComponentHarnessBase
}

// NewCheckbox binds a checkbox harness to its scoped environment.
func NewCheckbox(env harness.Environment) *Checkbox {
	return &Checkbox{harness.NewComponentHarnessBase(env)}
}

// CheckboxFilters narrow a checkbox predicate. The zero value matches
// every checkbox in scope.
type CheckboxFilters struct {
	Label *harness.StringFilter
	Name  *harness.StringFilter
}

// CheckboxWith returns a predicate selecting checkboxes that satisfy the
// filters.
func CheckboxWith(f CheckboxFilters) *harness.Predicate[*Checkbox] {
	p := harness.NewPredicate(CheckboxHostSelector, NewCheckbox)
	harness.AddStringOption(p, "label", f.Label, func(ctx context.Context, h *Checkbox) (string, error) {
		return h.Label(ctx)
	})
	harness.AddStringOption(p, "name", f.Name, func(ctx context.Context, h *Checkbox) (string, error) {
		return h.Name(ctx)
	})
	return p
}

func (h *Checkbox) input(ctx context.Context) (harness.TestElement, error) {
	return h.Locator().Find(ctx, "input.gw-checkbox-input")
}

// IsChecked reports whether the checkbox is checked.
func (h *Checkbox) IsChecked(ctx context.Context) (bool, error) {
	input, err := h.input(ctx)
	if err != nil {
		return false, err
	}
	return boolProp(ctx, input, "checked")
}

// IsIndeterminate reports whether the checkbox is in the mixed state.
func (h *Checkbox) IsIndeterminate(ctx context.Context) (bool, error) {
	input, err := h.input(ctx)
	if err != nil {
		return false, err
	}
	return boolProp(ctx, input, "indeterminate")
}

// IsDisabled reports whether the checkbox rejects interaction.
func (h *Checkbox) IsDisabled(ctx context.Context) (bool, error) {
	input, err := h.input(ctx)
	if err != nil {
		return false, err
	}
	return disabledState(ctx, input)
}

// IsRequired reports whether the checkbox is required.
func (h *Checkbox) IsRequired(ctx context.Context) (bool, error) {
	input, err := h.input(ctx)
	if err != nil {
		return false, err
	}
	return boolProp(ctx, input, "required")
}

// Value returns the checkbox's form value.
func (h *Checkbox) Value(ctx context.Context) (string, error) {
	input, err := h.input(ctx)
	if err != nil {
		return "", err
	}
	return stringProp(ctx, input, "value")
}

// Name returns the checkbox's form control name.
func (h *Checkbox) Name(ctx context.Context) (string, error) {
	input, err := h.input(ctx)
	if err != nil {
		return "", err
	}
	return attrValue(ctx, input, "name")
}

// Label returns the checkbox's label text.
func (h *Checkbox) Label(ctx context.Context) (string, error) {
	label, err := h.Locator().Find(ctx, ".gw-checkbox-label")
	if err != nil {
		return "", err
	}
	return label.Text(ctx)
}

// Toggle flips the checked state by clicking the input. Clicking a
// disabled checkbox does nothing, matching user interaction.
func (h *Checkbox) Toggle(ctx context.Context) error {
	input, err := h.input(ctx)
	if err != nil {
		return err
	}
	return input.Click(ctx)
}

// Check puts the checkbox into the checked state, toggling only when it
// is not already checked.
func (h *Checkbox) Check(ctx context.Context) error {
	checked, err := h.IsChecked(ctx)
	if err != nil {
		return err
	}
	if checked {
		return nil
	}
	return h.Toggle(ctx)
}

// Uncheck puts the checkbox into the unchecked state, toggling only when
// it is currently checked.
func (h *Checkbox) Uncheck(ctx context.Context) error {
	checked, err := h.IsChecked(ctx)
	if err != nil {
		return err
	}
	if !checked {
		return nil
	}
	return h.Toggle(ctx)
}
