// Package domain defines the core business entities for Ankify.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Token: A morpheme produced by the tokenizer
//   - RawDictRecord: A dictionary record as returned by a backend
//   - NormalizedEntry: A record reduced to headword, reading and senses
//   - GroupedEntry: Entries merged by written (kanji) form
//   - Resolution: A snapshot of the resolution state
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
