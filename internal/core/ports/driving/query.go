package driving

import (
	"context"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// DatasetStats summarises the stored dataset.
type DatasetStats struct {
	Submissions int
	Published   int
	Open        int
	Editors     int
	Reviewers   int

	// LastRun is the most recent ingest run, nil if none was recorded.
	LastRun *domain.IngestRun
}

// QueryService reads the stored dataset for interactive surfaces.
type QueryService interface {
	// Submissions returns stored submissions matching filter, ordered by
	// issue number.
	Submissions(ctx context.Context, filter domain.SubmissionFilter) ([]domain.Submission, error)

	// Submission returns one submission by issue number, or an error
	// wrapping domain.ErrNotFound.
	Submission(ctx context.Context, number int64) (*domain.Submission, error)

	// Runs returns recorded ingest runs, most recent first.
	Runs(ctx context.Context) ([]domain.IngestRun, error)

	// Stats summarises the stored dataset.
	Stats(ctx context.Context) (*DatasetStats, error)
}
