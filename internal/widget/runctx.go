package widget

// RunContext is the per-run claim state: the identities and user keys
// already claimed during one script execution, plus the session store
// widgets commit to.
//
// A RunContext is created at run start and discarded at run end. Claims
// are append-only within the run; an abandoned run's claims simply vanish
// with it. Presence or absence of a RunContext is the sole environmental
// signal distinguishing a live interactive run from bare execution.
//
// Not safe for concurrent use: declarations happen in source order within
// one run.
type RunContext struct {
	// WidgetIDsThisRun holds every derived identity claimed this run.
	WidgetIDsThisRun map[string]struct{}

	// WidgetUserKeysThisRun holds every explicit user key claimed this run.
	WidgetUserKeysThisRun map[string]struct{}

	// Store is the session store committed widgets are handed to.
	Store SessionStore
}

// NewRunContext creates an empty claim state for one run.
func NewRunContext(store SessionStore) *RunContext {
	return &RunContext{
		WidgetIDsThisRun:      make(map[string]struct{}),
		WidgetUserKeysThisRun: make(map[string]struct{}),
		Store:                 store,
	}
}
