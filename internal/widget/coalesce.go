package widget

import "github.com/reprise-ui/reprise/internal/wire"

// Coalesce merges an older snapshot into a newer one and returns the
// result. Nil snapshots are treated as empty.
//
// For most widget values the newer version wins. However, any trigger
// pulse that is true in old is re-asserted onto the result, so that
// button presses don't go missing: a rerun triggered for any other reason
// would otherwise present the pulse as already consumed before the server
// ever observed it.
//
// A stale trigger is only re-asserted when the same identity still
// occupies the trigger slot in new. A widget that was previously a button
// but no longer is must not receive a trigger value, and an identity
// absent from new stays absent.
//
// The result is ordered by identity; order is not significant for
// correctness but keeps serialization deterministic.
func Coalesce(old, new *wire.Snapshot) *wire.Snapshot {
	byID := new.ByID()

	if old != nil {
		for _, oldState := range old.Widgets {
			pulse, isTrigger := oldState.Value.(wire.Trigger)
			if !isTrigger || !bool(pulse) {
				continue
			}
			newState, present := byID[oldState.ID]
			if !present {
				continue
			}
			if _, stillTrigger := newState.Value.(wire.Trigger); stillTrigger {
				byID[oldState.ID] = oldState
			}
		}
	}

	return wire.FromIndex(byID)
}
