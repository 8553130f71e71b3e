package widgets

import (
	"context"
	"fmt"
	"strconv"

	"github.com/glasswing-ui/glasswing/harness"
)

// boolProp reads a form-control property as a bool. Non-boolean values
// (including an absent property reported as nil) read as false.
func boolProp(ctx context.Context, el harness.TestElement, name string) (bool, error) {
	v, err := el.Property(ctx, name)
	if err != nil {
		return false, err
	}
	b, _ := v.(bool)
	return b, nil
}

// stringProp reads a form-control property as a string.
func stringProp(ctx context.Context, el harness.TestElement, name string) (string, error) {
	v, err := el.Property(ctx, name)
	if err != nil {
		return "", err
	}
	s, _ := v.(string)
	return s, nil
}

// attrValue reads an attribute, mapping absence to the empty string.
func attrValue(ctx context.Context, el harness.TestElement, name string) (string, error) {
	v, err := el.Attribute(ctx, name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// attrIs reports whether the attribute is present with exactly the given
// value.
func attrIs(ctx context.Context, el harness.TestElement, name, want string) (bool, error) {
	v, err := el.Attribute(ctx, name)
	if err != nil {
		return false, err
	}
	return v != nil && *v == want, nil
}

// attrInt parses an integer-valued attribute, mapping absence to zero.
func attrInt(ctx context.Context, el harness.TestElement, name string) (int, error) {
	v, err := el.Attribute(ctx, name)
	if err != nil {
		return 0, err
	}
	if v == nil || *v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(*v)
	if err != nil {
		return 0, fmt.Errorf("attribute %s=%q is not an integer: %w", name, *v, err)
	}
	return n, nil
}

// disabledState covers both native disabling and the aria-disabled
// convention used by non-form hosts.
func disabledState(ctx context.Context, el harness.TestElement) (bool, error) {
	if disabled, err := boolProp(ctx, el, "disabled"); err != nil || disabled {
		return disabled, err
	}
	return attrIs(ctx, el, "aria-disabled", "true")
}
