// Package manifest reads, edits, and validates Cargo manifests (Cargo.toml).
//
// Edits are applied to the original bytes: only the value being changed is
// rewritten, so comments, ordering, and formatting elsewhere survive a
// round trip. Validation checks the library subset of the manifest against
// an embedded JSON Schema.
package manifest
