package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reprise-ui/reprise/internal/store"
	"github.com/reprise-ui/reprise/internal/widget"
	"github.com/reprise-ui/reprise/internal/wire"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithIDGenerator(NewFixedGenerator("session-1"))}, opts...)
	s, err := New(context.Background(), opts...)
	require.NoError(t, err)
	return s
}

func registerButton(t *testing.T, rctx *widget.RunContext, key string) *widget.Descriptor {
	t.Helper()
	deserialize, serialize := widget.DefaultCodec(wire.SlotTrigger)
	desc := widget.NewDescriptor(widget.ElementButton, map[string]any{"label": "Go"})
	_, err := widget.Register(desc, deserialize, serialize, rctx, widget.WithKey(key))
	require.NoError(t, err)
	return desc
}

func TestNewSessionUsesGenerator(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "session-1", s.ID())
}

func TestHandleReportCoalescesIntoPending(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.HandleReport(ctx, wire.NewSnapshot(
		wire.WidgetState{ID: "btn", Value: wire.Trigger(true)},
	)))
	require.NoError(t, s.HandleReport(ctx, wire.NewSnapshot(
		wire.WidgetState{ID: "btn", Value: wire.Trigger(false)},
		wire.WidgetState{ID: "txt", Value: wire.String("hi")},
	)))

	pending := s.Pending()
	require.NotNil(t, pending)

	// The unconsumed pulse survives the second report.
	state, ok := pending.Get("btn")
	require.True(t, ok)
	assert.Equal(t, wire.Trigger(true), state.Value)

	state, ok = pending.Get("txt")
	require.True(t, ok)
	assert.Equal(t, wire.String("hi"), state.Value)
}

func TestBeginRunConsumesPending(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, s.HandleReport(ctx, wire.NewSnapshot(
		wire.WidgetState{ID: "txt", Value: wire.String("hello")},
	)))

	rctx := s.BeginRun()
	require.NotNil(t, rctx)
	assert.Nil(t, s.Pending())

	v, ok := s.State().Get("txt")
	require.True(t, ok)
	assert.Equal(t, wire.String("hello"), v)
}

func TestPulseObservedByExactlyOneRun(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	// Run 1: the button registers and reads false.
	rctx := s.BeginRun()
	desc := registerButton(t, rctx, "go")
	require.NoError(t, s.FinishRun(ctx))

	// The client presses the button.
	require.NoError(t, s.HandleReport(ctx, wire.NewSnapshot(
		wire.WidgetState{ID: desc.ID, Value: wire.Trigger(true)},
	)))

	// Run 2 observes the pulse.
	rctx = s.BeginRun()
	deserialize, serialize := widget.DefaultCodec(wire.SlotTrigger)
	desc2 := widget.NewDescriptor(widget.ElementButton, map[string]any{"label": "Go"})
	res, err := widget.Register(desc2, deserialize, serialize, rctx, widget.WithKey("go"))
	require.NoError(t, err)
	assert.Equal(t, true, res.Value)
	require.NoError(t, s.FinishRun(ctx))

	// Run 3 must not observe it again.
	rctx = s.BeginRun()
	desc3 := widget.NewDescriptor(widget.ElementButton, map[string]any{"label": "Go"})
	res, err = widget.Register(desc3, deserialize, serialize, rctx, widget.WithKey("go"))
	require.NoError(t, err)
	assert.Equal(t, false, res.Value)
}

func TestSetOverrideReachesNextRegistration(t *testing.T) {
	s := newTestSession(t)
	ctx := context.Background()

	rctx := s.BeginRun()
	deserialize, serialize := widget.DefaultCodec(wire.SlotString)
	desc := widget.NewDescriptor(widget.ElementTextInput, map[string]any{"label": "Name"})
	_, err := widget.Register(desc, deserialize, serialize, rctx, widget.WithKey("name"))
	require.NoError(t, err)
	require.NoError(t, s.FinishRun(ctx))

	s.Set("name", "Ada")

	rctx = s.BeginRun()
	desc2 := widget.NewDescriptor(widget.ElementTextInput, map[string]any{"label": "Name"})
	res, err := widget.Register(desc2, deserialize, serialize, rctx, widget.WithKey("name"))
	require.NoError(t, err)
	assert.Equal(t, "Ada", res.Value)
	assert.True(t, res.ValueChanged)
}

func TestDurableSessionResume(t *testing.T) {
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	s := newTestSession(t, WithStore(st))

	// Register so the event log can attribute user keys, then report.
	rctx := s.BeginRun()
	desc := registerButton(t, rctx, "go")
	deserialize, serialize := widget.DefaultCodec(wire.SlotBool)
	chk := widget.NewDescriptor(widget.ElementCheckbox, map[string]any{"label": "OK"})
	_, err = widget.Register(chk, deserialize, serialize, rctx, widget.WithKey("ok"))
	require.NoError(t, err)
	require.NoError(t, s.FinishRun(ctx))

	require.NoError(t, s.HandleReport(ctx, wire.NewSnapshot(
		wire.WidgetState{ID: desc.ID, Value: wire.Trigger(true)},
		wire.WidgetState{ID: chk.ID, Value: wire.Bool(true)},
	)))
	s.BeginRun()
	require.NoError(t, s.FinishRun(ctx))

	// Resume replays the log: the pulse was consumed and reset, the bool
	// value survives.
	resumed, err := Resume(ctx, st, s.ID())
	require.NoError(t, err)
	assert.Equal(t, s.ID(), resumed.ID())

	v, ok := resumed.State().Get(desc.ID)
	require.True(t, ok)
	assert.Equal(t, wire.Trigger(false), v)

	v, ok = resumed.State().Get(chk.ID)
	require.True(t, ok)
	assert.Equal(t, wire.Bool(true), v)
}

func TestClockMonotonic(t *testing.T) {
	c := NewClock()
	first := c.Next()
	second := c.Next()
	assert.Greater(t, second, first)
	assert.Equal(t, second, c.Current())

	resumed := NewClockAt(41)
	assert.Equal(t, int64(42), resumed.Next())
}

func TestFixedGeneratorExhaustionPanics(t *testing.T) {
	gen := NewFixedGenerator("only")
	assert.Equal(t, "only", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7GeneratorUnique(t *testing.T) {
	gen := UUIDv7Generator{}
	a := gen.Generate()
	b := gen.Generate()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}
