package driven

import (
	"io"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// ArtifactStore reads and writes pipeline artifacts: JSON arrays named
// <kind>_<timestamp>.json.
type ArtifactStore interface {
	// ReadRawIssues reads an array of raw issues. Errors wrap domain.ErrInvalidInput.
	ReadRawIssues(path string) ([]domain.RawIssue, error)

	// ReadIssues reads an array of normalized issues.
	ReadIssues(path string) ([]domain.NormalizedIssue, error)

	// ReadSubmissions reads an array of submissions.
	ReadSubmissions(path string) ([]domain.Submission, error)

	// Write serialises v to <dir>/<kind>_<timestamp>.json and returns the path.
	Write(kind domain.ArtifactKind, timestamp int64, v any) (string, error)
}

// SubmissionEncoder serialises submissions for export.
type SubmissionEncoder interface {
	Encode(w io.Writer, format domain.ExportFormat, subs []domain.Submission) error
}
