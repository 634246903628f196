package session

import (
	"fmt"
	"log/slog"
	"reflect"

	"github.com/reprise-ui/reprise/internal/widget"
	"github.com/reprise-ui/reprise/internal/wire"
)

// State holds one session's committed widget metadata and values across
// runs. It is the session store the per-run registrar commits to.
//
// Metadata for an identity is superseded, never merged, by each new
// registration. Values arrive from client reports via Apply and from the
// script via Set (programmatic overrides).
type State struct {
	metadata  map[string]widget.Metadata
	values    map[string]wire.Value
	keyToID   map[string]string
	idToKey   map[string]string
	overrides map[string]any
}

// NewState creates an empty session state.
func NewState() *State {
	return &State{
		metadata:  make(map[string]widget.Metadata),
		values:    make(map[string]wire.Value),
		keyToID:   make(map[string]string),
		idToKey:   make(map[string]string),
		overrides: make(map[string]any),
	}
}

// RegisterWidget implements widget.SessionStore.
//
// Value resolution, in order:
//  1. A programmatic override set before this run reaches the widget:
//     serialized, committed, and returned with ValueChanged=true so the
//     client's copy is refreshed.
//  2. The committed value from the latest client report, provided it
//     still occupies the widget's slot. A slot mismatch means the code
//     changed between runs; the stale value is discarded.
//  3. The deserializer's default.
func (s *State) RegisterWidget(meta widget.Metadata, userKey string) (widget.RegisterResult, error) {
	s.metadata[meta.ID] = meta
	if userKey != "" {
		s.keyToID[userKey] = meta.ID
		s.idToKey[meta.ID] = userKey
	}

	if override, ok := s.takeOverride(meta.ID, userKey); ok {
		wv, err := meta.Serialize(override)
		if err != nil {
			return widget.RegisterResult{}, fmt.Errorf("serialize override for %s: %w", meta.ID, err)
		}
		s.values[meta.ID] = wv
		return widget.RegisterResult{Value: override, ValueChanged: true}, nil
	}

	if wv, ok := s.values[meta.ID]; ok && wv.Slot() == meta.Slot {
		return widget.RegisterResult{Value: meta.Deserialize(wv, meta.ID)}, nil
	}
	return widget.FallbackResult(meta.Deserialize, meta.ID), nil
}

func (s *State) takeOverride(widgetID, userKey string) (any, bool) {
	if userKey != "" {
		if v, ok := s.overrides[userKey]; ok {
			delete(s.overrides, userKey)
			return v, true
		}
	}
	if v, ok := s.overrides[widgetID]; ok {
		delete(s.overrides, widgetID)
		return v, true
	}
	return nil, false
}

// Set records a programmatic value for a widget, addressed by user key or
// widget identity. The value is picked up by the widget's next
// registration and reported back to the client.
func (s *State) Set(keyOrID string, value any) {
	s.overrides[keyOrID] = value
}

// Apply commits a reported snapshot: every reported value replaces the
// committed value for its identity. Change callbacks bound at
// registration fire for values that actually changed; a trigger callback
// fires on every true pulse.
func (s *State) Apply(snap *wire.Snapshot) {
	if snap == nil {
		return
	}
	for _, ws := range snap.Widgets {
		prev, had := s.values[ws.ID]
		s.values[ws.ID] = ws.Value

		meta, ok := s.metadata[ws.ID]
		if !ok || meta.Callback == nil || meta.Callback.Fn == nil {
			continue
		}
		if shouldFireCallback(prev, had, ws.Value) {
			slog.Debug("widget callback firing", "id", ws.ID, "slot", ws.Value.Slot())
			meta.Callback.Fn(meta.Callback.Args, meta.Callback.Kwargs)
		}
	}
}

// shouldFireCallback decides whether a committed value change invokes the
// widget's callback. Trigger pulses fire on true; other slots fire when
// the value differs from the previously committed one.
func shouldFireCallback(prev wire.Value, had bool, next wire.Value) bool {
	if pulse, ok := next.(wire.Trigger); ok {
		return bool(pulse)
	}
	if !had {
		return false
	}
	return !reflect.DeepEqual(prev, next)
}

// ResetTriggers flips every committed true trigger back to false and
// returns the identities that were reset, in no particular order.
// Called after a run completes so a pulse is observed by exactly one run.
func (s *State) ResetTriggers() []string {
	var reset []string
	for id, v := range s.values {
		if pulse, ok := v.(wire.Trigger); ok && bool(pulse) {
			s.values[id] = wire.Trigger(false)
			reset = append(reset, id)
		}
	}
	return reset
}

// userKeyFor resolves an identity back to the user key that claimed it.
func (s *State) userKeyFor(id string) (string, bool) {
	key, ok := s.idToKey[id]
	return key, ok
}

// Get returns the committed wire value for an identity.
func (s *State) Get(id string) (wire.Value, bool) {
	v, ok := s.values[id]
	return v, ok
}

// IDForKey resolves a user key to the identity that claimed it.
func (s *State) IDForKey(key string) (string, bool) {
	id, ok := s.keyToID[key]
	return id, ok
}

// Metadata returns the committed metadata for an identity.
func (s *State) Metadata(id string) (widget.Metadata, bool) {
	m, ok := s.metadata[id]
	return m, ok
}

// Snapshot returns the committed values as a wire snapshot ordered by
// identity.
func (s *State) Snapshot() *wire.Snapshot {
	byID := make(map[string]wire.WidgetState, len(s.values))
	for id, v := range s.values {
		byID[id] = wire.WidgetState{ID: id, Value: v}
	}
	return wire.FromIndex(byID)
}
