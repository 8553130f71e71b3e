package widgets

import (
	"context"
	"fmt"

	"github.com/glasswing-ui/glasswing/harness"
)

// Host selectors of the radio widgets.
const (
	RadioGroupHostSelector  = ".gw-radio-group"
	RadioButtonHostSelector = ".gw-radio-button"
)

// RadioButton drives one radio button: a host wrapping a native radio
// input and a label span.
type RadioButton struct {
	harness.ComponentHarnessBase
}

// NewRadioButton binds a radio button harness to its scoped environment.
func NewRadioButton(env harness.Environment) *RadioButton {
	return &RadioButton{harness.NewComponentHarnessBase(env)}
}

// RadioButtonFilters narrow a radio button predicate.
type RadioButtonFilters struct {
	Label *harness.StringFilter
	Value *harness.StringFilter
}

// RadioButtonWith returns a predicate selecting radio buttons that
// satisfy the filters.
func RadioButtonWith(f RadioButtonFilters) *harness.Predicate[*RadioButton] {
	p := harness.NewPredicate(RadioButtonHostSelector, NewRadioButton)
	harness.AddStringOption(p, "label", f.Label, func(ctx context.Context, h *RadioButton) (string, error) {
		return h.Label(ctx)
	})
	harness.AddStringOption(p, "value", f.Value, func(ctx context.Context, h *RadioButton) (string, error) {
		return h.Value(ctx)
	})
	return p
}

func (h *RadioButton) input(ctx context.Context) (harness.TestElement, error) {
	return h.Locator().Find(ctx, "input.gw-radio-input")
}

// IsChecked reports whether this button is the group's selected one.
func (h *RadioButton) IsChecked(ctx context.Context) (bool, error) {
	input, err := h.input(ctx)
	if err != nil {
		return false, err
	}
	return boolProp(ctx, input, "checked")
}

// IsDisabled reports whether the button rejects interaction.
func (h *RadioButton) IsDisabled(ctx context.Context) (bool, error) {
	input, err := h.input(ctx)
	if err != nil {
		return false, err
	}
	return disabledState(ctx, input)
}

// Label returns the button's label text.
func (h *RadioButton) Label(ctx context.Context) (string, error) {
	label, err := h.Locator().Find(ctx, ".gw-radio-label")
	if err != nil {
		return "", err
	}
	return label.Text(ctx)
}

// Value returns the button's form value.
func (h *RadioButton) Value(ctx context.Context) (string, error) {
	input, err := h.input(ctx)
	if err != nil {
		return "", err
	}
	return stringProp(ctx, input, "value")
}

// Name returns the group name the button participates in.
func (h *RadioButton) Name(ctx context.Context) (string, error) {
	input, err := h.input(ctx)
	if err != nil {
		return "", err
	}
	return attrValue(ctx, input, "name")
}

// Check selects this button by clicking its input; a no-op when it is
// already selected.
func (h *RadioButton) Check(ctx context.Context) error {
	checked, err := h.IsChecked(ctx)
	if err != nil {
		return err
	}
	if checked {
		return nil
	}
	input, err := h.input(ctx)
	if err != nil {
		return err
	}
	return input.Click(ctx)
}

// RadioGroup drives a group of radio buttons sharing one control name.
type RadioGroup struct {
	harness.ComponentHarnessBase
}

// NewRadioGroup binds a radio group harness to its scoped environment.
func NewRadioGroup(env harness.Environment) *RadioGroup {
	return &RadioGroup{harness.NewComponentHarnessBase(env)}
}

// RadioGroupFilters narrow a radio group predicate.
type RadioGroupFilters struct {
	Name *harness.StringFilter
}

// RadioGroupWith returns a predicate selecting radio groups that satisfy
// the filters.
func RadioGroupWith(f RadioGroupFilters) *harness.Predicate[*RadioGroup] {
	p := harness.NewPredicate(RadioGroupHostSelector, NewRadioGroup)
	harness.AddStringOption(p, "name", f.Name, func(ctx context.Context, h *RadioGroup) (string, error) {
		return h.Name(ctx)
	})
	return p
}

// Buttons returns the group's buttons passing the filters, in document
// order.
func (h *RadioGroup) Buttons(ctx context.Context, f RadioButtonFilters) ([]*RadioButton, error) {
	return harness.GetAll(ctx, h.Locator(), RadioButtonWith(f))
}

// Name returns the control name shared by the group's buttons. Buttons
// carrying different names indicate a malformed group and fail loudly
// instead of reporting an arbitrary one.
func (h *RadioGroup) Name(ctx context.Context) (string, error) {
	buttons, err := h.Buttons(ctx, RadioButtonFilters{})
	if err != nil {
		return "", err
	}
	name := ""
	for _, b := range buttons {
		n, err := b.Name(ctx)
		if err != nil {
			return "", err
		}
		if n == "" {
			continue
		}
		if name == "" {
			name = n
			continue
		}
		if n != name {
			return "", fmt.Errorf("radio group contains mixed names %q and %q", name, n)
		}
	}
	return name, nil
}

// CheckedButton returns the selected button, or nil when none is
// selected.
func (h *RadioGroup) CheckedButton(ctx context.Context) (*RadioButton, error) {
	buttons, err := h.Buttons(ctx, RadioButtonFilters{})
	if err != nil {
		return nil, err
	}
	for _, b := range buttons {
		checked, err := b.IsChecked(ctx)
		if err != nil {
			return nil, err
		}
		if checked {
			return b, nil
		}
	}
	return nil, nil
}

// CheckedValue returns the selected button's form value, or the empty
// string when none is selected.
func (h *RadioGroup) CheckedValue(ctx context.Context) (string, error) {
	checked, err := h.CheckedButton(ctx)
	if err != nil || checked == nil {
		return "", err
	}
	return checked.Value(ctx)
}

// CheckRadioButton selects the first button matching the filters. No
// matching button fails with a NotFoundError naming the active filters.
func (h *RadioGroup) CheckRadioButton(ctx context.Context, f RadioButtonFilters) error {
	button, err := harness.Get(ctx, h.Locator(), RadioButtonWith(f))
	if err != nil {
		return err
	}
	return button.Check(ctx)
}
