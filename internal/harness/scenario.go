package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario. Scenarios validate the
// rerun model by alternating script runs with client reports and
// asserting on the final committed state.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// SessionID is an optional fixed session identifier. If empty it
	// defaults to "session-<name>" for deterministic golden comparison.
	SessionID string `yaml:"session_id,omitempty"`

	// Steps are executed in order. Each step is either a script run or
	// a client report.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace and the final committed state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one scenario step: exactly one of Run or Report is set.
type Step struct {
	// Run declares the widgets of one script run, in declaration order.
	Run []Declaration `yaml:"run,omitempty"`

	// Report delivers client value updates as a single snapshot.
	Report []ReportEntry `yaml:"report,omitempty"`
}

// Declaration is one widget declaration inside a run.
type Declaration struct {
	// As is the alias later steps use to reference this widget.
	As string `yaml:"as"`

	// Type is the element kind (e.g. "button", "text_input").
	Type string `yaml:"type"`

	// Config is the declared configuration; it feeds identity derivation.
	Config map[string]interface{} `yaml:"config,omitempty"`

	// Key is the optional user-supplied key.
	Key string `yaml:"key,omitempty"`

	// Name overrides the display name used in duplicate errors.
	Name string `yaml:"name,omitempty"`
}

// ReportEntry is one widget value inside a reported snapshot. The value
// slot is resolved from the referenced widget's element kind.
type ReportEntry struct {
	// Widget is the alias of a previously declared widget.
	Widget string `yaml:"widget"`

	// Value is the reported payload, shaped for the widget's slot.
	Value interface{} `yaml:"value"`
}

// Assertion validates the trace or the final committed state.
type Assertion struct {
	// Type is one of final_value, value_changed, register_error.
	Type string `yaml:"type"`

	// Widget is the alias under test (final_value, value_changed).
	Widget string `yaml:"widget,omitempty"`

	// Value is the expected final payload (final_value).
	Value interface{} `yaml:"value,omitempty"`

	// Changed is the expected ValueChanged flag of the widget's last
	// registration (value_changed).
	Changed bool `yaml:"changed,omitempty"`

	// Contains is a substring the registration error must carry
	// (register_error).
	Contains string `yaml:"contains,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalValue    = "final_value"
	AssertValueChanged  = "value_changed"
	AssertRegisterError = "register_error"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos fail loudly instead of silently dropping steps.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks required fields and step shape.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	declared := make(map[string]bool)
	for i, step := range s.Steps {
		hasRun := len(step.Run) > 0
		hasReport := len(step.Report) > 0
		if hasRun == hasReport {
			return fmt.Errorf("steps[%d]: exactly one of run or report is required", i)
		}

		for j, decl := range step.Run {
			if decl.As == "" {
				return fmt.Errorf("steps[%d].run[%d]: as is required", i, j)
			}
			if decl.Type == "" {
				return fmt.Errorf("steps[%d].run[%d]: type is required", i, j)
			}
			declared[decl.As] = true
		}
		for j, entry := range step.Report {
			if entry.Widget == "" {
				return fmt.Errorf("steps[%d].report[%d]: widget is required", i, j)
			}
			if !declared[entry.Widget] {
				return fmt.Errorf("steps[%d].report[%d]: widget %q not declared by an earlier run", i, j, entry.Widget)
			}
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a, declared); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion, declared map[string]bool) error {
	switch a.Type {
	case AssertFinalValue, AssertValueChanged:
		if a.Widget == "" {
			return fmt.Errorf("assertions[%d]: widget is required for %s", index, a.Type)
		}
		if !declared[a.Widget] {
			return fmt.Errorf("assertions[%d]: widget %q not declared by any run", index, a.Widget)
		}
	case AssertRegisterError:
		if a.Contains == "" {
			return fmt.Errorf("assertions[%d]: contains is required for register_error", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
