package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/reprise-ui/reprise/internal/wire"
)

// toCanonicalMap converts a result to plain maps for canonical JSON
// serialization. Empty optional fields are omitted so golden files stay
// minimal.
func (r *Result) toCanonicalMap() map[string]interface{} {
	trace := make([]interface{}, len(r.Trace))
	for i, ev := range r.Trace {
		m := map[string]interface{}{
			"type": ev.Type,
			"step": int64(ev.Step),
		}
		if ev.Widget != "" {
			m["widget"] = ev.Widget
		}
		if ev.WidgetID != "" {
			m["widget_id"] = ev.WidgetID
		}
		if ev.Value != nil {
			m["value"] = ev.Value
		}
		if ev.Changed {
			m["changed"] = true
		}
		if ev.Error != "" {
			m["error"] = ev.Error
		}
		trace[i] = m
	}

	final := make([]interface{}, len(r.Final))
	for i, entry := range r.Final {
		final[i] = map[string]interface{}{
			"id":    entry.ID,
			"slot":  entry.Slot,
			"value": entry.Value,
		}
	}

	return map[string]interface{}{
		"session_id": r.SessionID,
		"pass":       r.Pass,
		"trace":      trace,
		"final":      final,
	}
}

// RunWithGolden executes a scenario and compares the serialized result
// against testdata/golden/<name>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	data, err := wire.MarshalCanonical(result.toCanonicalMap())
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
