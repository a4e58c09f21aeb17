package driven

import (
	"context"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// DatasetStore persists the dataset tables.
type DatasetStore interface {
	// SaveIssues replaces the stored issues with issues, keeping every record.
	SaveIssues(ctx context.Context, issues []domain.NormalizedIssue) error

	// ListIssues returns stored issues ordered by number.
	ListIssues(ctx context.Context) ([]domain.NormalizedIssue, error)

	// SaveSubmissions replaces the stored submissions with subs.
	SaveSubmissions(ctx context.Context, subs []domain.Submission) error

	// ListSubmissions returns stored submissions ordered by issue number.
	ListSubmissions(ctx context.Context) ([]domain.Submission, error)

	// SaveRun records an ingest run.
	SaveRun(ctx context.Context, run domain.IngestRun) error

	// ListRuns returns ingest runs, most recent first.
	ListRuns(ctx context.Context) ([]domain.IngestRun, error)
}
