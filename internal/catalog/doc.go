// Package catalog compiles CUE widget catalogs.
//
// A catalog declares the known widget element kinds, the value slot each
// kind occupies, and a CUE schema for each kind's configuration. The
// runtime's static element table remains the source of truth for slot
// resolution; the catalog serves validation (is this declaration's config
// well formed?) and tooling (the validate CLI command). The embedded
// default catalog mirrors the static table and is tested for agreement.
package catalog
