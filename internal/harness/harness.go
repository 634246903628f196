package harness

import (
	"context"
	"fmt"

	"github.com/reprise-ui/reprise/internal/catalog"
	"github.com/reprise-ui/reprise/internal/session"
	"github.com/reprise-ui/reprise/internal/store"
	"github.com/reprise-ui/reprise/internal/widget"
	"github.com/reprise-ui/reprise/internal/wire"
)

// Harness drives one scenario through a real session.
type Harness struct {
	session *session.Session
	catalog *catalog.Catalog

	// aliasTypes maps declaration aliases to element kinds so report
	// steps can resolve the value slot.
	aliasTypes map[string]widget.ElementType
}

// Run executes a scenario and returns its result.
//
// Each scenario runs against a fresh in-memory SQLite event log and a
// fixed session ID, so the produced trace is reproducible byte for byte.
//
// Execution flow:
//  1. Open a fresh in-memory store and create the session.
//  2. Execute steps in order: runs register widgets against a new claim
//     context, reports coalesce into the pending snapshot.
//  3. Capture the final committed snapshot.
//  4. Evaluate assertions against trace and final state.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	defer st.Close()

	sessionID := scenario.SessionID
	if sessionID == "" {
		sessionID = "session-" + scenario.Name
	}

	ctx := context.Background()
	sess, err := session.New(ctx,
		session.WithIDGenerator(session.NewFixedGenerator(sessionID)),
		session.WithStore(st),
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("load default catalog: %w", err)
	}

	h := &Harness{
		session:    sess,
		catalog:    cat,
		aliasTypes: make(map[string]widget.ElementType),
	}

	result := NewResult(sessionID)
	for i, step := range scenario.Steps {
		if len(step.Run) > 0 {
			if err := h.executeRun(ctx, i, step.Run, result); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			continue
		}
		if err := h.executeReport(ctx, i, step.Report, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	result.Final = h.finalEntries()
	EvaluateAssertions(result, scenario.Assertions)
	return result, nil
}

// executeRun plays one script run: every declaration registers against a
// fresh claim context. A duplicate identity is fatal to the run; the run
// is abandoned without finishing, exactly as a raised error aborts a
// script, and the consumed trigger pulses stay committed.
func (h *Harness) executeRun(ctx context.Context, step int, decls []Declaration, result *Result) error {
	rctx := h.session.BeginRun()

	for _, decl := range decls {
		elem := widget.ElementType(decl.Type)
		if err := h.catalog.ValidateConfig(elem, decl.Config); err != nil {
			return fmt.Errorf("declaration %q: %w", decl.As, err)
		}

		slot, ok := widget.ValueSlotFor(elem)
		if !ok {
			return fmt.Errorf("declaration %q: unknown element type %q", decl.As, decl.Type)
		}
		deserialize, serialize := widget.DefaultCodec(slot)

		var opts []widget.RegisterOption
		if decl.Key != "" {
			opts = append(opts, widget.WithKey(decl.Key))
		}
		if decl.Name != "" {
			opts = append(opts, widget.WithDisplayName(decl.Name))
		}

		desc := widget.NewDescriptor(elem, decl.Config)
		res, err := widget.Register(desc, deserialize, serialize, rctx, opts...)
		if err != nil {
			result.Trace = append(result.Trace, TraceEvent{
				Type:   "register_error",
				Step:   step,
				Widget: decl.As,
				Error:  err.Error(),
			})
			return nil
		}

		h.aliasTypes[decl.As] = elem
		result.widgetIDs[decl.As] = desc.ID
		result.Trace = append(result.Trace, TraceEvent{
			Type:     "register",
			Step:     step,
			Widget:   decl.As,
			WidgetID: desc.ID,
			Value:    normalizeTrace(res.Value),
			Changed:  res.ValueChanged,
		})
	}

	if err := h.session.FinishRun(ctx); err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	result.Trace = append(result.Trace, TraceEvent{Type: "run_finished", Step: step})
	return nil
}

// executeReport delivers one client snapshot: entries are shaped into
// wire values by the declared element's slot and coalesced as a unit.
func (h *Harness) executeReport(ctx context.Context, step int, entries []ReportEntry, result *Result) error {
	states := make([]wire.WidgetState, 0, len(entries))
	for _, entry := range entries {
		id, ok := result.widgetIDs[entry.Widget]
		if !ok {
			return fmt.Errorf("report references widget %q before any run declared it", entry.Widget)
		}
		slot, _ := widget.ValueSlotFor(h.aliasTypes[entry.Widget])

		v, err := convertToValue(slot, entry.Value)
		if err != nil {
			return fmt.Errorf("report for %q: %w", entry.Widget, err)
		}
		states = append(states, wire.WidgetState{ID: id, Value: v})

		result.Trace = append(result.Trace, TraceEvent{
			Type:     "report",
			Step:     step,
			Widget:   entry.Widget,
			WidgetID: id,
			Value:    valueToTrace(v),
		})
	}

	if err := h.session.HandleReport(ctx, wire.NewSnapshot(states...)); err != nil {
		return fmt.Errorf("handle report: %w", err)
	}
	return nil
}

// finalEntries captures the committed snapshot ordered by identity.
func (h *Harness) finalEntries() []FinalEntry {
	snap := h.session.State().Snapshot()
	entries := make([]FinalEntry, 0, snap.Len())
	for _, ws := range snap.Widgets {
		entries = append(entries, FinalEntry{
			ID:    ws.ID,
			Slot:  string(ws.Value.Slot()),
			Value: valueToTrace(ws.Value),
		})
	}
	return entries
}
