// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - IssueSource: paginated issue collection from the tracker
//   - IssueNormaliser: raw payload to fixed-shape record
//   - SubmissionExtractor: review metadata from an issue body
//   - ArtifactStore: JSON artifacts on disk
//   - DatasetStore: relational persistence of issues, submissions and runs
//   - SubmissionEncoder: dataset export formats
//   - ConfigStore: application configuration
//   - TokenProvider: API bearer credential
//
// # Optional Interfaces
//
//   - URLResolver: redirect following for publication URLs. Without it,
//     the badge URL is kept as found.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
