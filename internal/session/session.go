// Package session implements the per-client session runtime: one session
// owns one State, one logical clock, and one coalescing pipeline, fully
// isolated from every other session.
//
// Scheduling model: one script run executes to completion before the next
// begins. Client reports may arrive from a transport goroutine at any
// time; they are coalesced into a pending snapshot under the session lock
// and consumed at the next run start. Widget declarations within a run
// are sequential and need no locking.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/reprise-ui/reprise/internal/store"
	"github.com/reprise-ui/reprise/internal/widget"
	"github.com/reprise-ui/reprise/internal/wire"
)

// Session is one interactive client session.
type Session struct {
	id    string
	state *State
	clock *Clock
	log   *store.Store // optional durable event log

	mu      sync.Mutex
	pending *wire.Snapshot
}

// Option configures session construction.
type Option func(*config)

type config struct {
	gen IDGenerator
	log *store.Store
}

// WithIDGenerator overrides the session ID generator. Tests use
// FixedGenerator for deterministic golden traces.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *config) { c.gen = gen }
}

// WithStore attaches a durable widget event log. Reported states are
// appended to it so committed values survive restarts.
func WithStore(log *store.Store) Option {
	return func(c *config) { c.log = log }
}

// New creates a session with a fresh state.
func New(ctx context.Context, opts ...Option) (*Session, error) {
	cfg := config{gen: UUIDv7Generator{}}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Session{
		id:    cfg.gen.Generate(),
		state: NewState(),
		clock: NewClock(),
		log:   cfg.log,
	}

	if s.log != nil {
		if err := s.log.CreateSession(ctx, s.id); err != nil {
			return nil, fmt.Errorf("create session %s: %w", s.id, err)
		}
	}

	slog.Info("session created", "id", s.id, "durable", s.log != nil)
	return s, nil
}

// Resume rebuilds a session from its persisted event log: the committed
// snapshot is replayed into a fresh state and the clock resumes past the
// last persisted sequence number.
func Resume(ctx context.Context, log *store.Store, id string) (*Session, error) {
	snap, err := log.LoadSnapshot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load snapshot for %s: %w", id, err)
	}
	maxSeq, err := log.MaxSeq(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("max seq for %s: %w", id, err)
	}

	s := &Session{
		id:    id,
		state: NewState(),
		clock: NewClockAt(maxSeq),
		log:   log,
	}
	s.state.Apply(snap)

	slog.Info("session resumed", "id", id, "widgets", snap.Len(), "seq", maxSeq)
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State exposes the session store for direct inspection and programmatic
// value access.
func (s *Session) State() *State {
	return s.state
}

// Pending returns the coalesced snapshot awaiting the next run.
func (s *Session) Pending() *wire.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// HandleReport coalesces a freshly reported client snapshot into the
// pending snapshot. Pending trigger pulses survive until a run consumes
// them. Safe to call from a transport goroutine.
func (s *Session) HandleReport(ctx context.Context, snap *wire.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pending = widget.Coalesce(s.pending, snap)

	if s.log != nil && snap != nil {
		for _, ws := range snap.Widgets {
			userKey, _ := s.state.userKeyFor(ws.ID)
			if err := s.log.AppendState(ctx, s.id, s.clock.Next(), userKey, ws); err != nil {
				return fmt.Errorf("append state %s: %w", ws.ID, err)
			}
		}
	}

	slog.Debug("report coalesced", "session", s.id, "reported", snap.Len(), "pending", s.pending.Len())
	return nil
}

// BeginRun consumes the pending snapshot into committed state and returns
// a fresh claim context for the run. If the run is abandoned midway, drop
// the context: nothing claimed in an aborted run is committed beyond what
// the state already persisted.
func (s *Session) BeginRun() *widget.RunContext {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending != nil {
		s.state.Apply(s.pending)
		s.pending = nil
	}
	return widget.NewRunContext(s.state)
}

// FinishRun completes a run: consumed trigger pulses reset to false so a
// press is observed by exactly one run, and the resets are persisted.
func (s *Session) FinishRun(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reset := s.state.ResetTriggers()
	if s.log != nil {
		for _, id := range reset {
			ws := wire.WidgetState{ID: id, Value: wire.Trigger(false)}
			userKey, _ := s.state.userKeyFor(id)
			if err := s.log.AppendState(ctx, s.id, s.clock.Next(), userKey, ws); err != nil {
				return fmt.Errorf("append trigger reset %s: %w", id, err)
			}
		}
	}
	return nil
}

// Set records a programmatic widget value, addressed by user key or
// widget identity, to be picked up at the widget's next registration.
func (s *Session) Set(keyOrID string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Set(keyOrID, value)
}
