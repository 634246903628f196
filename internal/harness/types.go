package harness

// TraceEvent records one observable action during scenario execution.
type TraceEvent struct {
	// Type is "register", "register_error", "report", or "run_finished".
	Type string `json:"type"`

	// Step is the zero-based index of the scenario step.
	Step int `json:"step"`

	// Widget is the declaration alias, when the event concerns one widget.
	Widget string `json:"widget,omitempty"`

	// WidgetID is the derived identity.
	WidgetID string `json:"widget_id,omitempty"`

	// Value is the payload the script observed (register) or the client
	// reported (report), normalized for canonical serialization.
	Value interface{} `json:"value,omitempty"`

	// Changed is set on register events when the store refreshed the
	// client's copy.
	Changed bool `json:"changed,omitempty"`

	// Error carries the registration error message (register_error).
	Error string `json:"error,omitempty"`
}

// FinalEntry is one widget in the final committed snapshot.
type FinalEntry struct {
	ID    string      `json:"id"`
	Slot  string      `json:"slot"`
	Value interface{} `json:"value"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when all assertions hold.
	Pass bool `json:"pass"`

	// SessionID is the fixed session identifier the scenario ran under.
	SessionID string `json:"session_id"`

	// Trace contains all events in execution order.
	Trace []TraceEvent `json:"trace"`

	// Final is the committed snapshot after the last step, ordered by
	// identity.
	Final []FinalEntry `json:"final"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// widgetIDs maps declaration aliases to derived identities. Internal
	// bookkeeping for assertions; not serialized.
	widgetIDs map[string]string
}

// NewResult creates a passing result for a session.
func NewResult(sessionID string) *Result {
	return &Result{
		Pass:      true,
		SessionID: sessionID,
		Trace:     []TraceEvent{},
		widgetIDs: make(map[string]string),
	}
}

// AddError records an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// WidgetID returns the derived identity for a declaration alias.
func (r *Result) WidgetID(alias string) (string, bool) {
	id, ok := r.widgetIDs[alias]
	return id, ok
}
