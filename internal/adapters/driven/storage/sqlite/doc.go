// Package sqlite provides the SQLite-backed import ledger.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO. Each import batch is stored with its orders and items in relational tables;
// item specifications and parsed components are kept as JSON columns.
//
// # Schema
//
// The schema is managed through versioned migrations in the migrations/ directory.
// Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.ordersnap/data/ledger.db
package sqlite
