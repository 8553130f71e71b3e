package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glasswing-ui/glasswing/cdpdriver"
	"github.com/glasswing-ui/glasswing/harness"
	"github.com/glasswing-ui/glasswing/internal/observability"
	"github.com/glasswing-ui/glasswing/widgets"
)

// widgetReport summarizes the instances of one widget kind on a page.
type widgetReport struct {
	Kind      string           `json:"kind"`
	Count     int              `json:"count"`
	Instances []map[string]any `json:"instances,omitempty"`
}

// probeReport is the probe command's JSON output.
type probeReport struct {
	URL     string         `json:"url"`
	Session string         `json:"session"`
	Widgets []widgetReport `json:"widgets"`
}

// probeFunc inspects all instances of one widget kind under the locator.
type probeFunc func(ctx context.Context, loc *harness.Locator) ([]map[string]any, error)

var probeFuncs = map[string]probeFunc{
	"checkbox":     probeCheckboxes,
	"radio-group":  probeRadioGroups,
	"tab-group":    probeTabGroups,
	"stepper":      probeSteppers,
	"drawer":       probeDrawers,
	"autocomplete": probeAutocompletes,
	"tooltip":      probeTooltips,
	"autosize":     probeAutosizes,
}

var probeCmd = &cobra.Command{
	Use:   "probe <url>",
	Short: "Open a page in a headless browser and report its widgets as JSON.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		logger := observability.GetLogger().Named("probe")
		ctx := cmd.Context()

		kinds := appConfig.Probe.Widgets
		if len(probeWidgets) > 0 {
			kinds = probeWidgets
		}
		if len(kinds) == 0 {
			for kind := range probeFuncs {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
		}
		for _, kind := range kinds {
			if _, ok := probeFuncs[kind]; !ok {
				return fmt.Errorf("unknown widget kind %q", kind)
			}
		}

		driver, err := cdpdriver.New(ctx, appConfig.Browser, logger)
		if err != nil {
			return fmt.Errorf("starting browser: %w", err)
		}
		defer driver.Close()

		if err := driver.Navigate(ctx, url); err != nil {
			return fmt.Errorf("navigating to %s: %w", url, err)
		}

		loc := harness.NewLocator(driver.Environment())
		report := probeReport{URL: url, Session: driver.SessionID()}
		for _, kind := range kinds {
			instances, err := probeFuncs[kind](ctx, loc)
			if err != nil {
				return fmt.Errorf("probing %s widgets: %w", kind, err)
			}
			report.Widgets = append(report.Widgets, widgetReport{
				Kind:      kind,
				Count:     len(instances),
				Instances: instances,
			})
			logger.Debug("probed widget kind", zap.String("kind", kind), zap.Int("count", len(instances)))
		}

		output := appConfig.Probe.Output
		if probeOutput != "" {
			output = probeOutput
		}
		return writeReport(output, &report)
	},
}

var (
	probeWidgets []string
	probeOutput  string
)

func init() {
	probeCmd.Flags().StringSliceVar(&probeWidgets, "widgets", nil, "widget kinds to probe (default all)")
	probeCmd.Flags().StringVarP(&probeOutput, "output", "o", "", `report destination ("-" for stdout)`)
	rootCmd.AddCommand(probeCmd)
}

// writeReport emits the report as indented JSON to the configured
// destination.
func writeReport(dest string, report *probeReport) error {
	out, err := jsoniter.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	out = append(out, '\n')
	if dest == "" || dest == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(dest, out, 0o644)
}

func probeCheckboxes(ctx context.Context, loc *harness.Locator) ([]map[string]any, error) {
	found, err := harness.GetAll(ctx, loc, widgets.CheckboxWith(widgets.CheckboxFilters{}))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(found))
	for _, h := range found {
		label, err := h.Label(ctx)
		if err != nil {
			return nil, err
		}
		checked, err := h.IsChecked(ctx)
		if err != nil {
			return nil, err
		}
		disabled, err := h.IsDisabled(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"label": label, "checked": checked, "disabled": disabled})
	}
	return out, nil
}

func probeRadioGroups(ctx context.Context, loc *harness.Locator) ([]map[string]any, error) {
	found, err := harness.GetAll(ctx, loc, widgets.RadioGroupWith(widgets.RadioGroupFilters{}))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(found))
	for _, h := range found {
		name, err := h.Name(ctx)
		if err != nil {
			return nil, err
		}
		value, err := h.CheckedValue(ctx)
		if err != nil {
			return nil, err
		}
		buttons, err := h.Buttons(ctx, widgets.RadioButtonFilters{})
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"name": name, "checked_value": value, "buttons": len(buttons)})
	}
	return out, nil
}

func probeTabGroups(ctx context.Context, loc *harness.Locator) ([]map[string]any, error) {
	found, err := harness.GetAll(ctx, loc, widgets.TabGroupWith(widgets.TabGroupFilters{}))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(found))
	for _, h := range found {
		labels, err := h.Labels(ctx)
		if err != nil {
			return nil, err
		}
		instance := map[string]any{"labels": labels}
		if selected, err := h.SelectedTab(ctx); err == nil {
			if label, err := selected.Label(ctx); err == nil {
				instance["selected"] = label
			}
		}
		out = append(out, instance)
	}
	return out, nil
}

func probeSteppers(ctx context.Context, loc *harness.Locator) ([]map[string]any, error) {
	found, err := harness.GetAll(ctx, loc, widgets.StepperWith(widgets.StepperFilters{}))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(found))
	for _, h := range found {
		orientation, err := h.Orientation(ctx)
		if err != nil {
			return nil, err
		}
		linear, err := h.IsLinear(ctx)
		if err != nil {
			return nil, err
		}
		steps, err := h.Steps(ctx, widgets.StepFilters{})
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"orientation": orientation, "linear": linear, "steps": len(steps)})
	}
	return out, nil
}

func probeDrawers(ctx context.Context, loc *harness.Locator) ([]map[string]any, error) {
	found, err := harness.GetAll(ctx, loc, widgets.DrawerWith(widgets.DrawerFilters{}))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(found))
	for _, h := range found {
		open, err := h.IsOpen(ctx)
		if err != nil {
			return nil, err
		}
		position, err := h.Position(ctx)
		if err != nil {
			return nil, err
		}
		mode, err := h.Mode(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"open": open, "position": position, "mode": mode})
	}
	return out, nil
}

func probeAutocompletes(ctx context.Context, loc *harness.Locator) ([]map[string]any, error) {
	found, err := harness.GetAll(ctx, loc, widgets.AutocompleteWith(widgets.AutocompleteFilters{}))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(found))
	for _, h := range found {
		value, err := h.Value(ctx)
		if err != nil {
			return nil, err
		}
		open, err := h.IsOpen(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"value": value, "open": open})
	}
	return out, nil
}

func probeTooltips(ctx context.Context, loc *harness.Locator) ([]map[string]any, error) {
	found, err := harness.GetAll(ctx, loc, widgets.TooltipWith(widgets.TooltipFilters{}))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(found))
	for _, h := range found {
		host, err := h.Host(ctx)
		if err != nil {
			return nil, err
		}
		trigger, err := host.Text(ctx)
		if err != nil {
			return nil, err
		}
		open, err := h.IsOpen(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"trigger": trigger, "open": open})
	}
	return out, nil
}

func probeAutosizes(ctx context.Context, loc *harness.Locator) ([]map[string]any, error) {
	found, err := harness.GetAll(ctx, loc, widgets.InputAutosizeWith(widgets.InputAutosizeFilters{}))
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(found))
	for _, h := range found {
		enabled, err := h.IsEnabled(ctx)
		if err != nil {
			return nil, err
		}
		minRows, err := h.MinRows(ctx)
		if err != nil {
			return nil, err
		}
		maxRows, err := h.MaxRows(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, map[string]any{"enabled": enabled, "min_rows": minRows, "max_rows": maxRows})
	}
	return out, nil
}
