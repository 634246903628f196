package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reprise-ui/reprise/internal/wire"
)

func TestCoalescePreservesPendingPulse(t *testing.T) {
	old := wire.NewSnapshot(wire.WidgetState{ID: "btn", Value: wire.Trigger(true)})
	new := wire.NewSnapshot(wire.WidgetState{ID: "btn", Value: wire.Trigger(false)})

	merged := Coalesce(old, new)
	state, ok := merged.Get("btn")
	require.True(t, ok)
	assert.Equal(t, wire.Trigger(true), state.Value)
}

func TestCoalesceNewerValueWinsForNonTriggers(t *testing.T) {
	old := wire.NewSnapshot(
		wire.WidgetState{ID: "txt", Value: wire.String("old")},
		wire.WidgetState{ID: "n", Value: wire.Double(1)},
	)
	new := wire.NewSnapshot(
		wire.WidgetState{ID: "txt", Value: wire.String("new")},
		wire.WidgetState{ID: "n", Value: wire.Double(2)},
	)

	merged := Coalesce(old, new)
	txt, _ := merged.Get("txt")
	assert.Equal(t, wire.String("new"), txt.Value)
	n, _ := merged.Get("n")
	assert.Equal(t, wire.Double(2), n.Value)
}

func TestCoalesceFalsePulseNotReasserted(t *testing.T) {
	old := wire.NewSnapshot(wire.WidgetState{ID: "btn", Value: wire.Trigger(false)})
	new := wire.NewSnapshot(wire.WidgetState{ID: "btn", Value: wire.Trigger(false)})

	merged := Coalesce(old, new)
	state, _ := merged.Get("btn")
	assert.Equal(t, wire.Trigger(false), state.Value)
}

func TestCoalesceAbsentIdentityStaysAbsent(t *testing.T) {
	old := wire.NewSnapshot(wire.WidgetState{ID: "gone", Value: wire.Trigger(true)})
	new := wire.NewSnapshot(wire.WidgetState{ID: "other", Value: wire.Bool(true)})

	merged := Coalesce(old, new)
	_, ok := merged.Get("gone")
	assert.False(t, ok)
	assert.Equal(t, 1, merged.Len())
}

func TestCoalescePulseNotLeakedAcrossSlotChange(t *testing.T) {
	// The identity used to be a button; the client now reports it as a
	// checkbox. The stale pulse must not overwrite the bool value.
	old := wire.NewSnapshot(wire.WidgetState{ID: "w", Value: wire.Trigger(true)})
	new := wire.NewSnapshot(wire.WidgetState{ID: "w", Value: wire.Bool(false)})

	merged := Coalesce(old, new)
	state, _ := merged.Get("w")
	assert.Equal(t, wire.Bool(false), state.Value)
}

func TestCoalesceNilSnapshots(t *testing.T) {
	new := wire.NewSnapshot(wire.WidgetState{ID: "a", Value: wire.Int(1)})

	merged := Coalesce(nil, new)
	assert.Equal(t, 1, merged.Len())

	merged = Coalesce(new, nil)
	assert.Equal(t, 0, merged.Len())

	merged = Coalesce(nil, nil)
	assert.Equal(t, 0, merged.Len())
}

func TestCoalesceIdempotentWithoutPulses(t *testing.T) {
	old := wire.NewSnapshot(
		wire.WidgetState{ID: "a", Value: wire.String("x")},
		wire.WidgetState{ID: "b", Value: wire.IntArray{1, 2}},
	)
	new := wire.NewSnapshot(
		wire.WidgetState{ID: "a", Value: wire.String("y")},
	)

	once := Coalesce(old, new)
	twice := Coalesce(old, once)
	assert.Equal(t, once, twice)
}

func TestCoalesceOutputOrderedByIdentity(t *testing.T) {
	new := wire.NewSnapshot(
		wire.WidgetState{ID: "z", Value: wire.Int(1)},
		wire.WidgetState{ID: "a", Value: wire.Int(2)},
		wire.WidgetState{ID: "m", Value: wire.Int(3)},
	)

	merged := Coalesce(nil, new)
	ids := make([]string, 0, merged.Len())
	for _, ws := range merged.Widgets {
		ids = append(ids, ws.ID)
	}
	assert.Equal(t, []string{"a", "m", "z"}, ids)
}
