package driving

import (
	"context"
	"io"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// IngestRequest parameterises one collection run.
type IngestRequest struct {
	Target    domain.RepoTarget
	PerPage   int
	MaxPages  int
	Direction domain.Direction
}

// IngestService collects raw issues and writes them as an artifact.
type IngestService interface {
	Ingest(ctx context.Context, req IngestRequest) (*domain.IngestRun, error)
}

// StepResult describes the artifact produced by a pipeline step.
type StepResult struct {
	// OutputPath is the written artifact.
	OutputPath string

	// Summary holds per-record quality counters.
	Summary *domain.Summary
}

// TransformService normalizes a raw issue artifact.
type TransformService interface {
	Transform(ctx context.Context, inputPath string) (*StepResult, error)
}

// ParseRequest parameterises submission extraction.
type ParseRequest struct {
	// InputPath is a normalized issue artifact.
	InputPath string

	// IncludeUnpublished also emits review submissions that are not yet
	// accepted or lack a publication URL.
	IncludeUnpublished bool
}

// ParseService extracts submissions from a normalized issue artifact.
type ParseService interface {
	Parse(ctx context.Context, req ParseRequest) (*StepResult, error)
}

// LoadResult reports what was written to the dataset store.
type LoadResult struct {
	Kind    domain.ArtifactKind
	Records int
}

// LoadService copies an artifact into the dataset store.
type LoadService interface {
	Load(ctx context.Context, inputPath string) (*LoadResult, error)
}

// ExportService writes stored submissions in a portable format.
type ExportService interface {
	Export(ctx context.Context, w io.Writer, format domain.ExportFormat) (int, error)
}
