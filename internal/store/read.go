package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reprise-ui/reprise/internal/wire"
)

// Event is one row of a session's widget event log.
type Event struct {
	Seq     int64
	UserKey string
	Slot    wire.Slot
	State   wire.WidgetState
}

// SessionInfo describes one persisted session.
type SessionInfo struct {
	ID        string
	CreatedAt string
	Events    int64
}

// LoadSnapshot reconstructs a session's committed snapshot: the
// highest-seq state per widget identity, ordered by identity.
func (s *Store) LoadSnapshot(ctx context.Context, sessionID string) (*wire.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT state_json FROM widget_events
		 WHERE session_id = ?
		 ORDER BY seq ASC, widget_id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", sessionID, err)
	}
	defer rows.Close()

	byID := make(map[string]wire.WidgetState)
	for rows.Next() {
		var stateJSON string
		if err := rows.Scan(&stateJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		var ws wire.WidgetState
		if err := json.Unmarshal([]byte(stateJSON), &ws); err != nil {
			return nil, fmt.Errorf("unmarshal event: %w", err)
		}
		byID[ws.ID] = ws
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return wire.FromIndex(byID), nil
}

// MaxSeq returns the highest persisted sequence number for a session,
// zero when the session has no events.
func (s *Store) MaxSeq(ctx context.Context, sessionID string) (int64, error) {
	var maxSeq int64
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) FROM widget_events WHERE session_id = ?`,
		sessionID).Scan(&maxSeq)
	if err != nil {
		return 0, fmt.Errorf("max seq for %s: %w", sessionID, err)
	}
	return maxSeq, nil
}

// ReadEvents returns a session's full event log in deterministic order.
func (s *Store) ReadEvents(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, user_key, value_slot, state_json FROM widget_events
		 WHERE session_id = ?
		 ORDER BY seq ASC, widget_id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("read events for %s: %w", sessionID, err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			ev        Event
			slot      string
			stateJSON string
		)
		if err := rows.Scan(&ev.Seq, &ev.UserKey, &slot, &stateJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Slot = wire.Slot(slot)
		if err := json.Unmarshal([]byte(stateJSON), &ev.State); err != nil {
			return nil, fmt.Errorf("unmarshal event seq %d: %w", ev.Seq, err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// ListSessions returns all persisted sessions with their event counts,
// ordered by session ID (UUIDv7 IDs sort by creation time).
func (s *Store) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.created_at, COUNT(e.id)
		 FROM sessions s
		 LEFT JOIN widget_events e ON e.session_id = s.id
		 GROUP BY s.id, s.created_at
		 ORDER BY s.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.CreatedAt, &info.Events); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}
