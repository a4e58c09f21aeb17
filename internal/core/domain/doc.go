// Package domain defines the core entities of the JOSS dataset toolkit.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawIssue: an untyped issue payload as returned by the issue tracker
//   - NormalizedIssue: a fixed-shape issue record with sentinel defaults
//   - Submission: review metadata extracted from an issue body
//   - Settings: typed runtime configuration
//   - IngestRun and Summary: bookkeeping for a single pipeline run
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
