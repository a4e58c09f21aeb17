// Package sqlite provides the SQLite-backed dataset store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. One database holds three tables:
//
//   - github_issues: normalized issues keyed by issue id
//   - joss_submissions: extracted submissions keyed by issue number
//   - ingest_runs: one row per collection run
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory and embedded at compile time. Applied versions are
// recorded in schema_migrations.
//
// # Data Location
//
// By default, the database is stored at ~/.joss/data/joss.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
