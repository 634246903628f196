package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reprise-ui/reprise/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string
}

// TraceEventOut is one event row in the trace output.
type TraceEventOut struct {
	Seq      int64           `json:"seq"`
	WidgetID string          `json:"widget_id"`
	UserKey  string          `json:"user_key,omitempty"`
	Slot     string          `json:"slot"`
	State    json.RawMessage `json:"state"`
}

// TraceResult holds the complete trace output for one session.
type TraceResult struct {
	SessionID string          `json:"session_id"`
	Events    []TraceEventOut `json:"events"`
	MaxSeq    int64           `json:"max_seq"`
}

// SessionListResult lists persisted sessions.
type SessionListResult struct {
	Sessions []store.SessionInfo `json:"sessions"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect a session's widget event log",
		Long: `Read the persisted widget event log for a session: every reported
value and trigger reset in sequence order. Without --session, lists all
persisted sessions with their event counts.

Examples:
  reprise trace --db ./reprise.db
  reprise trace --db ./reprise.db --session 0190-ab...
  reprise trace --db ./reprise.db --session 0190-ab... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite event log (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session ID to trace")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		_ = formatter.Error("E001", "cannot open event log", err.Error())
		return WrapExitError(ExitCommandError, "open event log", err)
	}
	defer st.Close()

	ctx := context.Background()

	if opts.Session == "" {
		return listSessions(ctx, st, formatter)
	}
	return traceSession(ctx, st, opts.Session, formatter)
}

func listSessions(ctx context.Context, st *store.Store, formatter *OutputFormatter) error {
	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "list sessions", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(SessionListResult{Sessions: sessions})
	}

	if len(sessions) == 0 {
		fmt.Fprintln(formatter.Writer, "no sessions")
		return nil
	}
	for _, info := range sessions {
		fmt.Fprintf(formatter.Writer, "%s  created %s  %d event(s)\n",
			info.ID, info.CreatedAt, info.Events)
	}
	return nil
}

func traceSession(ctx context.Context, st *store.Store, sessionID string, formatter *OutputFormatter) error {
	events, err := st.ReadEvents(ctx, sessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "read events", err)
	}
	if len(events) == 0 {
		_ = formatter.Error("E002", fmt.Sprintf("session %q has no events", sessionID), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("session %q has no events", sessionID))
	}

	maxSeq, err := st.MaxSeq(ctx, sessionID)
	if err != nil {
		return WrapExitError(ExitCommandError, "max seq", err)
	}

	out := make([]TraceEventOut, 0, len(events))
	for _, ev := range events {
		stateJSON, err := json.Marshal(ev.State)
		if err != nil {
			return WrapExitError(ExitCommandError, "marshal state", err)
		}
		out = append(out, TraceEventOut{
			Seq:      ev.Seq,
			WidgetID: ev.State.ID,
			UserKey:  ev.UserKey,
			Slot:     string(ev.Slot),
			State:    stateJSON,
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(TraceResult{
			SessionID: sessionID,
			Events:    out,
			MaxSeq:    maxSeq,
		})
	}

	fmt.Fprintf(formatter.Writer, "session %s (%d event(s), max seq %d)\n",
		sessionID, len(out), maxSeq)
	for _, ev := range out {
		key := ev.UserKey
		if key == "" {
			key = "-"
		}
		fmt.Fprintf(formatter.Writer, "  %4d  %-26s key=%-10s %s\n", ev.Seq, ev.Slot, key, ev.State)
	}
	return nil
}
