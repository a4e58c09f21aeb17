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

// Ensure TransformService implements the interface.
var _ driving.TransformService = (*TransformService)(nil)

// TransformService normalizes raw issue artifacts.
type TransformService struct {
	normaliser driven.IssueNormaliser
	artifacts  driven.ArtifactStore
	now        func() time.Time
}

// NewTransformService creates a transform service.
func NewTransformService(normaliser driven.IssueNormaliser, artifacts driven.ArtifactStore, now func() time.Time) *TransformService {
	if now == nil {
		now = time.Now
	}
	return &TransformService{normaliser: normaliser, artifacts: artifacts, now: now}
}

// Transform normalizes every record of a raw artifact into
// github_issues_normalized_<timestamp>.json, reusing the input's timestamp. One output record is written
// per input element, including elements that are not objects.
func (s *TransformService) Transform(ctx context.Context, inputPath string) (*driving.StepResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	logger.Section("Transform")
	logger.Info("Loading issues from %s", inputPath)

	raws, err := s.artifacts.ReadRawIssues(inputPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Found %d issues to normalize", len(raws))

	summary := domain.NewSummary()
	issues := make([]domain.NormalizedIssue, 0, len(raws))
	for i, raw := range raws {
		res := s.normaliser.Normalise(raw)
		summary.Records++
		if s.normaliser.UsedDefaults(res.Issue) {
			summary.Defaulted++
		}
		if res.UsedDefaults() {
			logger.Debug("Record %d (issue #%d): defaulted %v", i, res.Issue.Number, res.Defaulted)
		}
		issues = append(issues, res.Issue)
	}

	path, err := s.artifacts.Write(domain.ArtifactNormalizedIssues, outputStamp(inputPath, s.now), issues)
	if err != nil {
		return nil, fmt.Errorf("write normalized issues: %w", err)
	}
	summary.Emitted = len(issues)

	logger.Info("Wrote %d normalized issues to %s (defaults_used=%d).", len(issues), path, summary.Defaulted)
	return &driving.StepResult{OutputPath: path, Summary: summary}, nil
}

// outputStamp returns the timestamp of the input artifact's name so that one
// run's artifacts share a stamp. Inputs without one fall back to now.
func outputStamp(inputPath string, now func() time.Time) int64 {
	if ts, ok := domain.TimestampFromFilename(inputPath); ok {
		return ts
	}
	return now().Unix()
}
