package domain

// AcceptedLabel marks a review issue whose paper has been published.
const AcceptedLabel = "accepted"

// Submission is the review metadata extracted from a JOSS review issue body.
// String fields default to "" and list fields to an empty slice, never nil.
// JSON keys follow the published dataset column names.
type Submission struct {
	IssueNumber      int64    `json:"Issue Number" yaml:"Issue Number"`
	SubmittingAuthor string   `json:"Submitting Author" yaml:"Submitting Author"`
	AuthorName       string   `json:"Author Name" yaml:"Author Name"`
	ORCID            string   `json:"ORCID" yaml:"ORCID"`
	Repository       string   `json:"Repository" yaml:"Repository"`
	Branch           string   `json:"Branch" yaml:"Branch"`
	Version          string   `json:"Version" yaml:"Version"`
	Editor           string   `json:"Editor" yaml:"Editor"`
	ManagingEiC      string   `json:"Managing EiC" yaml:"Managing EiC"`
	Reviewers        []string `json:"Reviewers" yaml:"Reviewers"`
	Archive          string   `json:"Archive" yaml:"Archive"`
	JOSSURL          string   `json:"JOSS URL" yaml:"JOSS URL"`
	Labels           []string `json:"Labels" yaml:"Labels"`

	// Opened is the creation time in epoch seconds.
	Opened int64 `json:"Opened" yaml:"Opened"`

	// Closed is the close time in epoch seconds; 0 if open or unknown.
	Closed int64 `json:"Closed" yaml:"Closed"`

	// JSONStr is the canonical serialization of every other field.
	JSONStr string `json:"JSON_str" yaml:"JSON_str"`
}

// IsOpen reports whether the submission has no known close time.
func (s Submission) IsOpen() bool {
	return s.Closed == 0
}

// HasLabel reports whether the submission carries the named label.
func (s Submission) HasLabel(name string) bool {
	return containsLabel(s.Labels, name)
}

// ExtractionState classifies the outcome of extracting one issue.
// It drives metrics and emission, not control flow inside the extractor.
type ExtractionState string

// Extraction outcomes, in evaluation order.
const (
	StateSkippedNoBody            ExtractionState = "skipped_no_body"
	StateSkippedNotReview         ExtractionState = "skipped_not_review_submission"
	StateSkippedPullRequest       ExtractionState = "skipped_pull_request"
	StateSkippedMissingRepository ExtractionState = "skipped_missing_repository"
	StateSkippedMissingAccepted   ExtractionState = "skipped_missing_accepted_label"
	StateSkippedAcceptedNoURL     ExtractionState = "skipped_accepted_no_url"
	StateNormalized               ExtractionState = "normalized"
)

// AllExtractionStates returns every state in evaluation order.
func AllExtractionStates() []ExtractionState {
	return []ExtractionState{
		StateSkippedNoBody,
		StateSkippedNotReview,
		StateSkippedPullRequest,
		StateSkippedMissingRepository,
		StateSkippedMissingAccepted,
		StateSkippedAcceptedNoURL,
		StateNormalized,
	}
}

// Emitted reports whether a record in this state is written to the dataset.
func (s ExtractionState) Emitted() bool {
	return s == StateNormalized
}

// IsReviewSubmission reports whether the issue was recognised as a valid
// review submission with a repository, even if it is not yet published.
func (s ExtractionState) IsReviewSubmission() bool {
	switch s {
	case StateSkippedMissingAccepted, StateSkippedAcceptedNoURL, StateNormalized:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the state.
func (s ExtractionState) Description() string {
	switch s {
	case StateSkippedNoBody:
		return "Skipped (no body)"
	case StateSkippedNotReview:
		return "Skipped (not a review submission)"
	case StateSkippedPullRequest:
		return "Skipped (pull request)"
	case StateSkippedMissingRepository:
		return "Skipped (missing repository URL)"
	case StateSkippedMissingAccepted:
		return "Skipped (missing accepted label)"
	case StateSkippedAcceptedNoURL:
		return "Skipped (accepted but no publication URL)"
	case StateNormalized:
		return "Normalized"
	default:
		return "Unknown"
	}
}

// ExtractInput is the subset of a normalized issue the extractor reads.
type ExtractInput struct {
	Number        int64
	Body          string
	CreatedAt     int64
	ClosedAt      int64
	Labels        []string
	IsPullRequest bool
}

// InputFromIssue builds extractor input from a normalized issue.
func InputFromIssue(issue NormalizedIssue) ExtractInput {
	return ExtractInput{
		Number:        issue.Number,
		Body:          issue.Body,
		CreatedAt:     issue.CreatedAt,
		ClosedAt:      issue.ClosedAt,
		Labels:        issue.Labels,
		IsPullRequest: issue.IsPullRequest,
	}
}
