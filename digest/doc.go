// Package digest holds small, dependency-bearing helpers shared by flux and
// its satellite packages: reference-identity checks, a diagnostic structural
// fingerprint, humanized path rendering, case-folded key lookup and instance
// ID generation.
//
// Nothing here participates in flux's correctness: Fingerprint in particular
// is explicitly non-authoritative. Snapshot identity always comes from Go
// pointer/slice-header comparison (see Identical), never from a hash.
package digest
