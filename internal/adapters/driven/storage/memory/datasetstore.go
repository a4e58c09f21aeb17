package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
)

// Ensure DatasetStore implements the interface.
var _ driven.DatasetStore = (*DatasetStore)(nil)

// DatasetStore is an in-memory implementation of driven.DatasetStore.
type DatasetStore struct {
	mu          sync.RWMutex
	issues      []domain.NormalizedIssue
	submissions []domain.Submission
	runs        []domain.IngestRun
}

// NewDatasetStore creates a new in-memory dataset store.
func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// SaveIssues replaces the stored issues.
func (s *DatasetStore) SaveIssues(_ context.Context, issues []domain.NormalizedIssue) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issues = append([]domain.NormalizedIssue(nil), issues...)
	return nil
}

// ListIssues returns issues ordered by number.
func (s *DatasetStore) ListIssues(_ context.Context) ([]domain.NormalizedIssue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append(make([]domain.NormalizedIssue, 0, len(s.issues)), s.issues...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// SaveSubmissions replaces the stored submissions.
func (s *DatasetStore) SaveSubmissions(_ context.Context, subs []domain.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submissions = append([]domain.Submission(nil), subs...)
	return nil
}

// ListSubmissions returns submissions ordered by issue number.
func (s *DatasetStore) ListSubmissions(_ context.Context) ([]domain.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append(make([]domain.Submission, 0, len(s.submissions)), s.submissions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssueNumber < out[j].IssueNumber })
	return out, nil
}

// SaveRun records an ingest run.
func (s *DatasetStore) SaveRun(_ context.Context, run domain.IngestRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.runs {
		if r.ID == run.ID {
			s.runs[i] = run
			return nil
		}
	}
	s.runs = append(s.runs, run)
	return nil
}

// ListRuns returns runs, most recent first.
func (s *DatasetStore) ListRuns(_ context.Context) ([]domain.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := append([]domain.IngestRun(nil), s.runs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt > out[j].StartedAt })
	return out, nil
}
