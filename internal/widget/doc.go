// Package widget implements the widget registration and state
// reconciliation core of the reprise runtime.
//
// Execution model:
//
// The runtime re-executes an entire script on every user interaction.
// Each execution is a "run". Widgets declared during a run must keep a
// stable identity across runs so their values survive the rerun, and so
// the display client can report interactions against the right widget.
//
// Registration flow:
//  1. Each declaration derives a content-addressed identity from the
//     widget's element type, canonical configuration bytes, and optional
//     user key (internal/identity).
//  2. Register checks the identity and key against the per-run claim sets
//     on the RunContext. A collision is a programming error in the calling
//     script and is fatal to the run.
//  3. On success the widget's metadata (identity, value slot, codec,
//     callback bundle) is committed to the session store, which returns
//     the value the caller observes this run.
//
// Coalescing:
// Client reports arrive as wire snapshots. Coalesce merges the snapshot
// held before a rerun with the freshly reported one, re-asserting pending
// trigger pulses (button presses) that a non-firing report would
// otherwise silently overwrite.
//
// CRITICAL PATTERNS:
//
// Per-run claim sets live on an explicit RunContext passed into every
// registration call, never in package-level mutable state. Sessions and
// runs stay independently testable and parallel-safe.
//
// Declarations happen in source order during one run, so claim-set
// mutation needs no internal locking; a RunContext must not be shared
// across goroutines.
package widget
