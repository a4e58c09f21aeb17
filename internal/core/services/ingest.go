package services

import (
	"context"
	"fmt"
	"time"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService collects a repository's issues into a raw artifact.
type IngestService struct {
	source    driven.IssueSource
	artifacts driven.ArtifactStore
	dataset   driven.DatasetStore
	now       func() time.Time
	newID     func() string
}

// NewIngestService creates an ingest service. The dataset store is
// optional; when set, every successful run is recorded in it.
func NewIngestService(
	source driven.IssueSource,
	artifacts driven.ArtifactStore,
	dataset driven.DatasetStore,
	now func() time.Time,
	newID func() string,
) *IngestService {
	if now == nil {
		now = time.Now
	}
	if newID == nil {
		newID = func() string { return fmt.Sprintf("run-%d", time.Now().UnixNano()) }
	}
	return &IngestService{
		source:    source,
		artifacts: artifacts,
		dataset:   dataset,
		now:       now,
		newID:     newID,
	}
}

// Ingest fetches every issue of the target and writes them, unmodified,
// to github_issues_<timestamp>.json. A failed page aborts the run and
// nothing is written.
func (s *IngestService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.IngestRun, error) {
	started := s.now()
	run := &domain.IngestRun{
		ID:         s.newID(),
		Repository: req.Target.FullName(),
		StartedAt:  started.Unix(),
	}

	logger.Section("Ingest")
	logger.Info("Run %s: collecting %s (per_page=%d, max_pages=%d)",
		run.ID, run.Repository, req.PerPage, req.MaxPages)

	issues, pages, err := s.source.Collect(ctx, req.Target, req.PerPage, req.MaxPages)
	if err != nil {
		return nil, fmt.Errorf("collect issues: %w", err)
	}

	path, err := s.artifacts.Write(domain.ArtifactRawIssues, started.Unix(), issues)
	if err != nil {
		return nil, fmt.Errorf("write issues: %w", err)
	}

	run.FinishedAt = s.now().Unix()
	run.Issues = len(issues)
	run.Pages = pages
	run.OutputPath = path

	logger.Info("Wrote %d issues to %s", run.Issues, path)

	if s.dataset != nil {
		if err := s.dataset.SaveRun(ctx, *run); err != nil {
			return nil, fmt.Errorf("record run: %w", err)
		}
	}
	return run, nil
}
