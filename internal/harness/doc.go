// Package harness runs YAML conformance scenarios against a real session.
//
// A scenario alternates script runs (widget declarations) with client
// reports (value updates). Each scenario runs against a fresh session
// backed by an in-memory SQLite event log, with a fixed session ID so the
// produced trace is fully deterministic.
//
// The trace plus the final committed snapshot are serialized as canonical
// JSON and compared against golden files, making regressions in identity
// derivation, claim tracking, coalescing, and trigger reset visible as
// byte-level diffs.
package harness
