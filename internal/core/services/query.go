package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService answers read-only questions about the stored dataset.
type QueryService struct {
	dataset driven.DatasetStore
}

// NewQueryService creates a query service over dataset.
func NewQueryService(dataset driven.DatasetStore) *QueryService {
	return &QueryService{dataset: dataset}
}

// Submissions returns the stored submissions matching filter.
func (s *QueryService) Submissions(ctx context.Context, filter domain.SubmissionFilter) ([]domain.Submission, error) {
	subs, err := s.dataset.ListSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return filter.Apply(subs), nil
}

// Submission returns the submission for one review issue.
func (s *QueryService) Submission(ctx context.Context, number int64) (*domain.Submission, error) {
	subs, err := s.dataset.ListSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	for i := range subs {
		if subs[i].IssueNumber == number {
			return &subs[i], nil
		}
	}
	return nil, fmt.Errorf("submission #%d: %w", number, domain.ErrNotFound)
}

// Runs returns recorded ingest runs.
func (s *QueryService) Runs(ctx context.Context) ([]domain.IngestRun, error) {
	runs, err := s.dataset.ListRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// Stats counts submissions and distinct editors and reviewers.
func (s *QueryService) Stats(ctx context.Context) (*driving.DatasetStats, error) {
	subs, err := s.dataset.ListSubmissions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	runs, err := s.Runs(ctx)
	if err != nil {
		return nil, err
	}

	stats := &driving.DatasetStats{Submissions: len(subs)}
	editors := map[string]struct{}{}
	reviewers := map[string]struct{}{}
	for _, sub := range subs {
		if sub.JOSSURL != "" {
			stats.Published++
		}
		if sub.IsOpen() {
			stats.Open++
		}
		if sub.Editor != "" {
			editors[handleKey(sub.Editor)] = struct{}{}
		}
		for _, r := range sub.Reviewers {
			reviewers[handleKey(r)] = struct{}{}
		}
	}
	stats.Editors = len(editors)
	stats.Reviewers = len(reviewers)
	if len(runs) > 0 {
		stats.LastRun = &runs[0]
	}
	return stats, nil
}

func handleKey(h string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(h), "@"))
}
