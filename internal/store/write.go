package store

import (
	"context"
	"fmt"

	"github.com/reprise-ui/reprise/internal/wire"
)

// CreateSession registers a session row. Idempotent: re-creating an
// existing session is a no-op.
func (s *Store) CreateSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id) VALUES (?) ON CONFLICT (id) DO NOTHING`, id)
	if err != nil {
		return fmt.Errorf("create session %s: %w", id, err)
	}
	return nil
}

// AppendState appends one reported widget state to a session's event log.
// seq comes from the session's logical clock and must be unique within
// the session; duplicate (session, seq) pairs are rejected by the schema.
func (s *Store) AppendState(ctx context.Context, sessionID string, seq int64, userKey string, ws wire.WidgetState) error {
	if ws.Value == nil {
		return fmt.Errorf("widget state %s has no value", ws.ID)
	}

	stateJSON, err := ws.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal state %s: %w", ws.ID, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO widget_events (session_id, seq, widget_id, user_key, value_slot, state_json)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, seq, ws.ID, userKey, string(ws.Value.Slot()), string(stateJSON))
	if err != nil {
		return fmt.Errorf("append state %s seq %d: %w", ws.ID, seq, err)
	}
	return nil
}
