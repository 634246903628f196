package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotByIDNilSafe(t *testing.T) {
	var snap *Snapshot
	assert.Empty(t, snap.ByID())
	assert.Equal(t, 0, snap.Len())

	_, ok := snap.Get("anything")
	assert.False(t, ok)
}

func TestSnapshotGet(t *testing.T) {
	snap := NewSnapshot(
		WidgetState{ID: "a", Value: Int(1)},
		WidgetState{ID: "b", Value: Int(2)},
	)

	state, ok := snap.Get("b")
	require.True(t, ok)
	assert.Equal(t, Int(2), state.Value)

	_, ok = snap.Get("missing")
	assert.False(t, ok)
}

func TestFromIndexOrdersByID(t *testing.T) {
	index := map[string]WidgetState{
		"z": {ID: "z", Value: Int(1)},
		"a": {ID: "a", Value: Int(2)},
		"m": {ID: "m", Value: Int(3)},
	}
	snap := FromIndex(index)

	ids := make([]string, 0, snap.Len())
	for _, ws := range snap.Widgets {
		ids = append(ids, ws.ID)
	}
	assert.Equal(t, []string{"a", "m", "z"}, ids)
}

func TestValidSlot(t *testing.T) {
	for _, slot := range []Slot{
		SlotTrigger, SlotBool, SlotInt, SlotDouble, SlotString,
		SlotIntArray, SlotDoubleArray, SlotStringArray, SlotJSON, SlotFile,
	} {
		assert.True(t, ValidSlot(slot), "slot %s", slot)
	}
	assert.False(t, ValidSlot(Slot("mystery_value")))
	assert.False(t, ValidSlot(Slot("")))
}
