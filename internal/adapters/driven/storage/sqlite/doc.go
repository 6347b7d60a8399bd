// Package sqlite provides the offline dictionary backed by SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO. Each term maps to the JSON-encoded records a dictionary
// returned for it, so imported Jisho responses are served unchanged.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/
// directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.ankify/data/dictionary.db
//
// # Thread Safety
//
// All operations are safe for concurrent use. SQLite runs in WAL mode so
// lookups proceed while an import writes.
package sqlite
