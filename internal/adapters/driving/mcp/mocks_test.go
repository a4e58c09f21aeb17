package mcp

import (
	"context"
	"fmt"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	submissions []domain.Submission
	runs        []domain.IngestRun
	stats       *driving.DatasetStats
	err         error

	gotFilter domain.SubmissionFilter
}

func (m *mockQueryService) Submissions(_ context.Context, f domain.SubmissionFilter) ([]domain.Submission, error) {
	m.gotFilter = f
	if m.err != nil {
		return nil, m.err
	}
	return f.Apply(m.submissions), nil
}

func (m *mockQueryService) Submission(_ context.Context, number int64) (*domain.Submission, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.submissions {
		if m.submissions[i].IssueNumber == number {
			return &m.submissions[i], nil
		}
	}
	return nil, fmt.Errorf("submission #%d: %w", number, domain.ErrNotFound)
}

func (m *mockQueryService) Runs(_ context.Context) ([]domain.IngestRun, error) {
	return m.runs, m.err
}

func (m *mockQueryService) Stats(_ context.Context) (*driving.DatasetStats, error) {
	return m.stats, m.err
}

func sampleSubmissions() []domain.Submission {
	return []domain.Submission{
		{
			IssueNumber:      2001,
			SubmittingAuthor: "@alice",
			AuthorName:       "Alice Example",
			Repository:       "https://github.com/alice/tool",
			Editor:           "@bob",
			Reviewers:        []string{"@dan"},
			JOSSURL:          "https://joss.theoj.org/papers/10.21105/joss.02001",
			Labels:           []string{"accepted"},
			Opened:           1577836800,
			Closed:           1580515200,
		},
		{
			IssueNumber:      2002,
			SubmittingAuthor: "@carol",
			Repository:       "https://gitlab.com/carol/lib",
			Opened:           1577923200,
		},
	}
}
