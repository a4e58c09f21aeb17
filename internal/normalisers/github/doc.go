// Package github turns GitHub issue payloads into dataset records.
//
// Normalise maps an arbitrary JSON value onto a fixed-shape
// domain.NormalizedIssue, substituting sentinel defaults for anything
// missing or malformed. SubmissionExtractor reads the HTML-comment
// sentinels JOSS embeds in review issue bodies and classifies each issue
// with a domain.ExtractionState.
package github
