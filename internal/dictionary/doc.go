// Package dictionary provides exact word-to-IPA lookup tables built from
// pronunciation datasets. It includes a pluggable dataset adapter contract,
// a swappable disambiguation policy for multi-pronunciation entries, IPA
// symbol validation, and both in-memory and SQLite-backed stores with
// reverse (IPA-to-word) lookup.
package dictionary
