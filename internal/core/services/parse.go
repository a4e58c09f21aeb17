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

// Ensure ParseService implements the interface.
var _ driving.ParseService = (*ParseService)(nil)

// ParseService extracts JOSS submissions from normalized issues.
type ParseService struct {
	extractor driven.SubmissionExtractor
	artifacts driven.ArtifactStore
	now       func() time.Time
}

// NewParseService creates a parse service.
func NewParseService(extractor driven.SubmissionExtractor, artifacts driven.ArtifactStore, now func() time.Time) *ParseService {
	if now == nil {
		now = time.Now
	}
	return &ParseService{extractor: extractor, artifacts: artifacts, now: now}
}

// Parse classifies every issue and writes the emitted submissions to
// joss_submissions_<timestamp>.json in input order.
func (s *ParseService) Parse(ctx context.Context, req driving.ParseRequest) (*driving.StepResult, error) {
	logger.Section("Parse")
	logger.Info("Loading normalized issues from %s", req.InputPath)

	issues, err := s.artifacts.ReadIssues(req.InputPath)
	if err != nil {
		return nil, err
	}

	summary := domain.NewSummary()
	failuresBefore := s.extractor.RedirectFailures()
	subs := make([]domain.Submission, 0)

	for _, issue := range issues {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		sub, state := s.extractor.Extract(ctx, domain.InputFromIssue(issue))
		summary.Records++
		summary.Record(state)

		if emit(state, req.IncludeUnpublished) {
			subs = append(subs, sub)
		}
	}
	summary.RedirectFailures = s.extractor.RedirectFailures() - failuresBefore
	summary.Emitted = len(subs)

	path, err := s.artifacts.Write(domain.ArtifactSubmissions, outputStamp(req.InputPath, s.now), subs)
	if err != nil {
		return nil, fmt.Errorf("write submissions: %w", err)
	}

	for _, sc := range summary.StateCounts() {
		logger.Info("%s: %d", sc.State.Description(), sc.Count)
	}
	logger.Info("Wrote %d submissions to %s (redirect_failures=%d).", len(subs), path, summary.RedirectFailures)
	return &driving.StepResult{OutputPath: path, Summary: summary}, nil
}

func emit(state domain.ExtractionState, includeUnpublished bool) bool {
	if state.Emitted() {
		return true
	}
	return includeUnpublished && state.IsReviewSubmission()
}
