package widgets

import (
	"context"

	"github.com/glasswing-ui/glasswing/harness"
)

// Host selectors of the stepper widgets.
const (
	StepperHostSelector         = ".gw-stepper"
	StepHostSelector            = ".gw-step"
	StepperNextHostSelector     = ".gw-stepper-next"
	StepperPreviousHostSelector = ".gw-stepper-previous"
)

// Step drives one step of a stepper: a header plus its state flags.
// Interaction state rides aria-selected; completed, invalid and optional
// ride state classes on the host.
type Step struct {
	harness.ComponentHarnessBase
}

// NewStep binds a step harness to its scoped environment.
func NewStep(env harness.Environment) *Step {
	return &Step{harness.NewComponentHarnessBase(env)}
}

// StepFilters narrow a step predicate.
type StepFilters struct {
	Label    *harness.StringFilter
	Selected *bool
	Complete *bool
	Invalid  *bool
}

// StepWith returns a predicate selecting steps that satisfy the filters.
func StepWith(f StepFilters) *harness.Predicate[*Step] {
	p := harness.NewPredicate(StepHostSelector, NewStep)
	harness.AddStringOption(p, "label", f.Label, func(ctx context.Context, h *Step) (string, error) {
		return h.Label(ctx)
	})
	harness.AddOption(p, "selected", f.Selected, func(ctx context.Context, h *Step, want bool) (bool, error) {
		selected, err := h.IsSelected(ctx)
		return selected == want, err
	})
	harness.AddOption(p, "complete", f.Complete, func(ctx context.Context, h *Step, want bool) (bool, error) {
		complete, err := h.IsCompleted(ctx)
		return complete == want, err
	})
	harness.AddOption(p, "invalid", f.Invalid, func(ctx context.Context, h *Step, want bool) (bool, error) {
		invalid, err := h.IsInvalid(ctx)
		return invalid == want, err
	})
	return p
}

// Label returns the step's header label text.
func (h *Step) Label(ctx context.Context) (string, error) {
	label, err := h.Locator().Find(ctx, ".gw-step-label")
	if err != nil {
		return "", err
	}
	return label.Text(ctx)
}

// IsSelected reports whether the step is the stepper's active one.
func (h *Step) IsSelected(ctx context.Context) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	return attrIs(ctx, host, "aria-selected", "true")
}

func (h *Step) hostHasClass(ctx context.Context, class string) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	return host.HasClass(ctx, class)
}

// IsCompleted reports whether the step has been completed.
func (h *Step) IsCompleted(ctx context.Context) (bool, error) {
	return h.hostHasClass(ctx, "gw-step-completed")
}

// IsInvalid reports whether the step's form state is invalid.
func (h *Step) IsInvalid(ctx context.Context) (bool, error) {
	return h.hostHasClass(ctx, "gw-step-invalid")
}

// IsOptional reports whether the step may be skipped.
func (h *Step) IsOptional(ctx context.Context) (bool, error) {
	return h.hostHasClass(ctx, "gw-step-optional")
}

// Select activates the step by clicking its header. In linear mode the
// stepper itself decides whether the jump is allowed.
func (h *Step) Select(ctx context.Context) error {
	header, err := h.Locator().Find(ctx, ".gw-step-header")
	if err != nil {
		return err
	}
	return header.Click(ctx)
}

// StepperButton drives a stepper's next or previous navigation button.
type StepperButton struct {
	harness.ComponentHarnessBase
}

// NewStepperButton binds a navigation button harness to its scoped
// environment.
func NewStepperButton(env harness.Environment) *StepperButton {
	return &StepperButton{harness.NewComponentHarnessBase(env)}
}

// StepperNextWith returns a predicate selecting next-navigation buttons.
func StepperNextWith() *harness.Predicate[*StepperButton] {
	return harness.NewPredicate(StepperNextHostSelector, NewStepperButton)
}

// StepperPreviousWith returns a predicate selecting previous-navigation
// buttons.
func StepperPreviousWith() *harness.Predicate[*StepperButton] {
	return harness.NewPredicate(StepperPreviousHostSelector, NewStepperButton)
}

// IsDisabled reports whether the button rejects interaction.
func (h *StepperButton) IsDisabled(ctx context.Context) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	return disabledState(ctx, host)
}

// Click presses the button.
func (h *StepperButton) Click(ctx context.Context) error {
	host, err := h.Host(ctx)
	if err != nil {
		return err
	}
	return host.Click(ctx)
}

// Stepper drives a multi-step workflow widget.
type Stepper struct {
	harness.ComponentHarnessBase
}

// NewStepper binds a stepper harness to its scoped environment.
func NewStepper(env harness.Environment) *Stepper {
	return &Stepper{harness.NewComponentHarnessBase(env)}
}

// StepperFilters narrow a stepper predicate.
type StepperFilters struct {
	Orientation *string
}

// StepperWith returns a predicate selecting steppers that satisfy the
// filters.
func StepperWith(f StepperFilters) *harness.Predicate[*Stepper] {
	p := harness.NewPredicate(StepperHostSelector, NewStepper)
	harness.AddOption(p, "orientation", f.Orientation, func(ctx context.Context, h *Stepper, want string) (bool, error) {
		got, err := h.Orientation(ctx)
		return got == want, err
	})
	return p
}

// Orientation returns "horizontal" or "vertical" from the host's
// aria-orientation attribute.
func (h *Stepper) Orientation(ctx context.Context) (string, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return "", err
	}
	return attrValue(ctx, host, "aria-orientation")
}

// IsLinear reports whether the stepper enforces in-order completion.
func (h *Stepper) IsLinear(ctx context.Context) (bool, error) {
	host, err := h.Host(ctx)
	if err != nil {
		return false, err
	}
	return attrIs(ctx, host, "data-linear", "true")
}

// Steps returns the stepper's steps passing the filters, in document
// order.
func (h *Stepper) Steps(ctx context.Context, f StepFilters) ([]*Step, error) {
	return harness.GetAll(ctx, h.Locator(), StepWith(f))
}

// SelectedStep returns the stepper's active step.
func (h *Stepper) SelectedStep(ctx context.Context) (*Step, error) {
	selected := true
	return harness.Get(ctx, h.Locator(), StepWith(StepFilters{Selected: &selected}))
}

// SelectStep activates the first step matching the filters. No matching
// step fails with a NotFoundError naming the active filters.
func (h *Stepper) SelectStep(ctx context.Context, f StepFilters) error {
	step, err := harness.Get(ctx, h.Locator(), StepWith(f))
	if err != nil {
		return err
	}
	return step.Select(ctx)
}

// NextButton resolves the stepper's next-navigation button.
func (h *Stepper) NextButton(ctx context.Context) (*StepperButton, error) {
	return harness.Get(ctx, h.Locator(), StepperNextWith())
}

// PreviousButton resolves the stepper's previous-navigation button.
func (h *Stepper) PreviousButton(ctx context.Context) (*StepperButton, error) {
	return harness.Get(ctx, h.Locator(), StepperPreviousWith())
}

// Next advances the workflow by clicking the next button.
func (h *Stepper) Next(ctx context.Context) error {
	button, err := h.NextButton(ctx)
	if err != nil {
		return err
	}
	return button.Click(ctx)
}

// Previous rewinds the workflow by clicking the previous button.
func (h *Stepper) Previous(ctx context.Context) error {
	button, err := h.PreviousButton(ctx)
	if err != nil {
		return err
	}
	return button.Click(ctx)
}
