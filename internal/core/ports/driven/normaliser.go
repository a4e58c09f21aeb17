package driven

import (
	"context"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// IssueNormaliser converts raw payloads into fixed-shape records.
// Normalisation is total: malformed input yields defaults, never an error.
type IssueNormaliser interface {
	Normalise(raw domain.RawIssue) domain.NormaliseResult

	// UsedDefaults reports whether a required field holds its sentinel.
	UsedDefaults(issue domain.NormalizedIssue) bool
}

// SubmissionExtractor derives review metadata from a normalized issue.
type SubmissionExtractor interface {
	// Extract returns the populated submission and its classification.
	Extract(ctx context.Context, in domain.ExtractInput) (domain.Submission, domain.ExtractionState)

	// RedirectFailures returns how many publication URLs could not be
	// resolved since the extractor was created.
	RedirectFailures() int
}

// URLResolver finds the final location of a URL.
type URLResolver interface {
	// Resolve returns the URL reached after following redirects. On failure
	// it returns the input unchanged together with the error.
	Resolve(ctx context.Context, url string) (string, error)
}
