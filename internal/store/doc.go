// Package store provides SQLite-backed durable storage for widget event
// logs.
//
// The store is an append-only log of reported widget states, one row per
// (session, seq, widget). The committed value of a widget is the row with
// the highest seq for its identity; replaying the log for a session
// rebuilds its committed snapshot exactly.
//
// Ordering uses the session's logical clock (seq INTEGER), never wall
// time, and every read that feeds state reconstruction orders by
// seq ASC, widget_id ASC so results are deterministic across replays.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
