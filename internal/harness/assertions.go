package harness

import (
	"fmt"
	"reflect"
	"strings"
)

// EvaluateAssertions checks every assertion against the result, recording
// failures. All assertions are evaluated; the first failure does not stop
// the rest.
func EvaluateAssertions(result *Result, assertions []Assertion) {
	for i, a := range assertions {
		switch a.Type {
		case AssertFinalValue:
			assertFinalValue(result, i, &a)
		case AssertValueChanged:
			assertValueChanged(result, i, &a)
		case AssertRegisterError:
			assertRegisterError(result, i, &a)
		}
	}
}

// assertFinalValue checks the committed payload of a widget after the
// last step. YAML integers are widened so `value: 3` matches an int64
// payload.
func assertFinalValue(result *Result, index int, a *Assertion) {
	id, ok := result.WidgetID(a.Widget)
	if !ok {
		result.AddError(fmt.Sprintf("assertions[%d]: widget %q never registered", index, a.Widget))
		return
	}

	for _, entry := range result.Final {
		if entry.ID != id {
			continue
		}
		if !payloadEqual(a.Value, entry.Value) {
			result.AddError(fmt.Sprintf(
				"assertions[%d]: widget %q final value = %v, want %v",
				index, a.Widget, entry.Value, a.Value))
		}
		return
	}
	result.AddError(fmt.Sprintf("assertions[%d]: widget %q has no committed value", index, a.Widget))
}

// assertValueChanged checks the ValueChanged flag of the widget's last
// registration.
func assertValueChanged(result *Result, index int, a *Assertion) {
	for i := len(result.Trace) - 1; i >= 0; i-- {
		ev := result.Trace[i]
		if ev.Type != "register" || ev.Widget != a.Widget {
			continue
		}
		if ev.Changed != a.Changed {
			result.AddError(fmt.Sprintf(
				"assertions[%d]: widget %q value_changed = %v, want %v",
				index, a.Widget, ev.Changed, a.Changed))
		}
		return
	}
	result.AddError(fmt.Sprintf("assertions[%d]: widget %q never registered", index, a.Widget))
}

// assertRegisterError checks that some registration failed with a message
// containing the expected substring.
func assertRegisterError(result *Result, index int, a *Assertion) {
	for _, ev := range result.Trace {
		if ev.Type == "register_error" && strings.Contains(ev.Error, a.Contains) {
			return
		}
	}
	result.AddError(fmt.Sprintf(
		"assertions[%d]: no registration error containing %q", index, a.Contains))
}

// payloadEqual compares a YAML-parsed expectation against a trace
// payload. Numbers compare across int/int64/float64 so scenario authors
// can write literals naturally.
func payloadEqual(want, got interface{}) bool {
	if wn, ok := toFloat64(want); ok {
		gn, ok := toFloat64(got)
		return ok && wn == gn
	}
	if warr, ok := want.([]interface{}); ok {
		garr, ok := got.([]interface{})
		if !ok || len(warr) != len(garr) {
			return false
		}
		for i := range warr {
			if !payloadEqual(warr[i], garr[i]) {
				return false
			}
		}
		return true
	}
	return reflect.DeepEqual(want, got)
}
