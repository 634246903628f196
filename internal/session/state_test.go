package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reprise-ui/reprise/internal/widget"
	"github.com/reprise-ui/reprise/internal/wire"
)

func boolMeta(id string, opts ...func(*widget.Metadata)) widget.Metadata {
	deserialize, serialize := widget.DefaultCodec(wire.SlotBool)
	meta := widget.Metadata{
		ID:          id,
		Type:        widget.ElementCheckbox,
		Slot:        wire.SlotBool,
		Deserialize: deserialize,
		Serialize:   serialize,
	}
	for _, opt := range opts {
		opt(&meta)
	}
	return meta
}

func TestRegisterWidgetReturnsDefault(t *testing.T) {
	state := NewState()

	res, err := state.RegisterWidget(boolMeta("w1"), "")
	require.NoError(t, err)
	assert.Equal(t, false, res.Value)
	assert.False(t, res.ValueChanged)
}

func TestRegisterWidgetReturnsCommittedValue(t *testing.T) {
	state := NewState()
	state.Apply(wire.NewSnapshot(wire.WidgetState{ID: "w1", Value: wire.Bool(true)}))

	res, err := state.RegisterWidget(boolMeta("w1"), "")
	require.NoError(t, err)
	assert.Equal(t, true, res.Value)
	assert.False(t, res.ValueChanged)
}

func TestRegisterWidgetDiscardsStaleSlot(t *testing.T) {
	// The committed value came from a run where this identity was a text
	// input; the code changed and the slot no longer matches.
	state := NewState()
	state.Apply(wire.NewSnapshot(wire.WidgetState{ID: "w1", Value: wire.String("old")}))

	res, err := state.RegisterWidget(boolMeta("w1"), "")
	require.NoError(t, err)
	assert.Equal(t, false, res.Value)
}

func TestRegisterWidgetConsumesOverrideByKey(t *testing.T) {
	state := NewState()
	state.Set("agree", true)

	res, err := state.RegisterWidget(boolMeta("w1"), "agree")
	require.NoError(t, err)
	assert.Equal(t, true, res.Value)
	assert.True(t, res.ValueChanged, "programmatic value must refresh the client copy")

	// The override is consumed: the next registration sees the committed
	// value it produced, not a second override.
	res, err = state.RegisterWidget(boolMeta("w1"), "agree")
	require.NoError(t, err)
	assert.Equal(t, true, res.Value)
	assert.False(t, res.ValueChanged)
}

func TestRegisterWidgetConsumesOverrideByIdentity(t *testing.T) {
	state := NewState()
	state.Set("w1", true)

	res, err := state.RegisterWidget(boolMeta("w1"), "")
	require.NoError(t, err)
	assert.Equal(t, true, res.Value)
	assert.True(t, res.ValueChanged)
}

func TestRegisterWidgetOverrideSerializationError(t *testing.T) {
	state := NewState()
	state.Set("w1", "not a bool")

	_, err := state.RegisterWidget(boolMeta("w1"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "serialize override")
}

func TestKeyMappingTracksLatestRegistration(t *testing.T) {
	state := NewState()

	_, err := state.RegisterWidget(boolMeta("w1"), "agree")
	require.NoError(t, err)

	id, ok := state.IDForKey("agree")
	require.True(t, ok)
	assert.Equal(t, "w1", id)

	// The key moves when a differently configured widget claims it.
	_, err = state.RegisterWidget(boolMeta("w2"), "agree")
	require.NoError(t, err)
	id, _ = state.IDForKey("agree")
	assert.Equal(t, "w2", id)
}

func TestApplyFiresCallbackOnValueChange(t *testing.T) {
	state := NewState()

	var fired int
	meta := boolMeta("w1", func(m *widget.Metadata) {
		m.Callback = &widget.CallbackBundle{
			Fn: func(args []any, kwargs map[string]any) { fired++ },
		}
	})
	_, err := state.RegisterWidget(meta, "")
	require.NoError(t, err)

	// First report: no previous value, no callback.
	state.Apply(wire.NewSnapshot(wire.WidgetState{ID: "w1", Value: wire.Bool(true)}))
	assert.Equal(t, 0, fired)

	// Unchanged value: no callback.
	state.Apply(wire.NewSnapshot(wire.WidgetState{ID: "w1", Value: wire.Bool(true)}))
	assert.Equal(t, 0, fired)

	// Changed value: callback fires.
	state.Apply(wire.NewSnapshot(wire.WidgetState{ID: "w1", Value: wire.Bool(false)}))
	assert.Equal(t, 1, fired)
}

func TestApplyFiresTriggerCallbackOnEveryPulse(t *testing.T) {
	state := NewState()

	var fired int
	deserialize, serialize := widget.DefaultCodec(wire.SlotTrigger)
	meta := widget.Metadata{
		ID:          "btn",
		Type:        widget.ElementButton,
		Slot:        wire.SlotTrigger,
		Deserialize: deserialize,
		Serialize:   serialize,
		Callback: &widget.CallbackBundle{
			Fn: func(args []any, kwargs map[string]any) { fired++ },
		},
	}
	_, err := state.RegisterWidget(meta, "")
	require.NoError(t, err)

	state.Apply(wire.NewSnapshot(wire.WidgetState{ID: "btn", Value: wire.Trigger(true)}))
	assert.Equal(t, 1, fired)

	// A false pulse never fires.
	state.Apply(wire.NewSnapshot(wire.WidgetState{ID: "btn", Value: wire.Trigger(false)}))
	assert.Equal(t, 1, fired)

	// A second press fires again even though true == true last time.
	state.Apply(wire.NewSnapshot(wire.WidgetState{ID: "btn", Value: wire.Trigger(true)}))
	assert.Equal(t, 2, fired)
}

func TestResetTriggers(t *testing.T) {
	state := NewState()
	state.Apply(wire.NewSnapshot(
		wire.WidgetState{ID: "btn1", Value: wire.Trigger(true)},
		wire.WidgetState{ID: "btn2", Value: wire.Trigger(false)},
		wire.WidgetState{ID: "chk", Value: wire.Bool(true)},
	))

	reset := state.ResetTriggers()
	assert.ElementsMatch(t, []string{"btn1"}, reset)

	v, _ := state.Get("btn1")
	assert.Equal(t, wire.Trigger(false), v)

	// Non-trigger values are untouched.
	v, _ = state.Get("chk")
	assert.Equal(t, wire.Bool(true), v)

	// Idempotent once everything is false.
	assert.Empty(t, state.ResetTriggers())
}

func TestSnapshotOrderedByIdentity(t *testing.T) {
	state := NewState()
	state.Apply(wire.NewSnapshot(
		wire.WidgetState{ID: "z", Value: wire.Int(1)},
		wire.WidgetState{ID: "a", Value: wire.Int(2)},
	))

	snap := state.Snapshot()
	require.Equal(t, 2, snap.Len())
	assert.Equal(t, "a", snap.Widgets[0].ID)
	assert.Equal(t, "z", snap.Widgets[1].ID)
}
