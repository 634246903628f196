package wire

import "sort"

// WidgetState is a client-reported value for one widget identity.
type WidgetState struct {
	ID    string
	Value Value
}

// Snapshot is a collection of WidgetState keyed by identity.
// Identities are unique on construction; ByID indexes, it does not merge.
type Snapshot struct {
	Widgets []WidgetState
}

// NewSnapshot builds a snapshot from the given states.
func NewSnapshot(states ...WidgetState) *Snapshot {
	return &Snapshot{Widgets: states}
}

// ByID indexes the snapshot by widget identity. Later entries for the
// same identity overwrite earlier ones.
func (s *Snapshot) ByID() map[string]WidgetState {
	if s == nil {
		return map[string]WidgetState{}
	}
	byID := make(map[string]WidgetState, len(s.Widgets))
	for _, ws := range s.Widgets {
		byID[ws.ID] = ws
	}
	return byID
}

// Get returns the state for the given identity, if present.
func (s *Snapshot) Get(id string) (WidgetState, bool) {
	if s == nil {
		return WidgetState{}, false
	}
	for _, ws := range s.Widgets {
		if ws.ID == id {
			return ws, true
		}
	}
	return WidgetState{}, false
}

// Len returns the number of widget states in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Widgets)
}

// FromIndex rebuilds a snapshot from an identity index with widgets in
// lexical ID order, so downstream serialization is deterministic.
func FromIndex(byID map[string]WidgetState) *Snapshot {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	widgets := make([]WidgetState, 0, len(ids))
	for _, id := range ids {
		widgets = append(widgets, byID[id])
	}
	return &Snapshot{Widgets: widgets}
}
