package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// --- Mock implementations shared by service tests ---

var errMock = errors.New("mock failure")

func fixedNow() time.Time {
	return time.Unix(1700000000, 0)
}

// mockArtifacts keeps artifacts in memory, keyed by path.
type mockArtifacts struct {
	raw         map[string][]domain.RawIssue
	issues      map[string][]domain.NormalizedIssue
	submissions map[string][]domain.Submission
	written     map[string]any
	writeErr    error
}

func newMockArtifacts() *mockArtifacts {
	return &mockArtifacts{
		raw:         make(map[string][]domain.RawIssue),
		issues:      make(map[string][]domain.NormalizedIssue),
		submissions: make(map[string][]domain.Submission),
		written:     make(map[string]any),
	}
}

func (m *mockArtifacts) ReadRawIssues(path string) ([]domain.RawIssue, error) {
	v, ok := m.raw[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, path)
	}
	return v, nil
}

func (m *mockArtifacts) ReadIssues(path string) ([]domain.NormalizedIssue, error) {
	v, ok := m.issues[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, path)
	}
	return v, nil
}

func (m *mockArtifacts) ReadSubmissions(path string) ([]domain.Submission, error) {
	v, ok := m.submissions[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, path)
	}
	return v, nil
}

func (m *mockArtifacts) Write(kind domain.ArtifactKind, ts int64, v any) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	path := "/out/" + domain.ArtifactFileName(kind, ts)
	m.written[path] = v
	return path, nil
}

// mockSource returns canned issues.
type mockSource struct {
	issues []domain.RawIssue
	pages  int
	err    error

	gotTarget   domain.RepoTarget
	gotPerPage  int
	gotMaxPages int
}

func (m *mockSource) Collect(_ context.Context, target domain.RepoTarget, perPage, maxPages int) ([]domain.RawIssue, int, error) {
	m.gotTarget, m.gotPerPage, m.gotMaxPages = target, perPage, maxPages
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.issues, m.pages, nil
}

// mockNormaliser decodes {"number": N} and defaults everything else.
type mockNormaliser struct{}

func (mockNormaliser) Normalise(raw domain.RawIssue) domain.NormaliseResult {
	issue := domain.DefaultIssue()
	var v struct {
		Number *int64 `json:"number"`
		Login  string `json:"login"`
	}
	if err := json.Unmarshal(raw, &v); err != nil || v.Number == nil {
		return domain.NormaliseResult{Issue: issue, Defaulted: []string{"number"}}
	}
	issue.Number = *v.Number
	issue.UserLogin = v.Login
	return domain.NormaliseResult{Issue: issue}
}

func (mockNormaliser) UsedDefaults(issue domain.NormalizedIssue) bool {
	return issue.Number == domain.UnknownID || issue.UserLogin == ""
}

// mockExtractor returns a preset state per issue number.
type mockExtractor struct {
	states   map[int64]domain.ExtractionState
	failures int
}

func (m *mockExtractor) Extract(_ context.Context, in domain.ExtractInput) (domain.Submission, domain.ExtractionState) {
	state, ok := m.states[in.Number]
	if !ok {
		state = domain.StateSkippedNotReview
	}
	if state == domain.StateNormalized {
		m.failures++
	}
	return domain.Submission{IssueNumber: in.Number, Reviewers: []string{}, Labels: in.Labels}, state
}

func (m *mockExtractor) RedirectFailures() int {
	return m.failures
}

// mockEncoder writes one line per submission.
type mockEncoder struct {
	err error
}

func (m *mockEncoder) Encode(w io.Writer, format domain.ExportFormat, subs []domain.Submission) error {
	if m.err != nil {
		return m.err
	}
	for _, s := range subs {
		if _, err := fmt.Fprintf(w, "%s:%d\n", format, s.IssueNumber); err != nil {
			return err
		}
	}
	return nil
}

// failingDataset fails every write.
type failingDataset struct{}

func (failingDataset) SaveIssues(context.Context, []domain.NormalizedIssue) error { return errMock }
func (failingDataset) ListIssues(context.Context) ([]domain.NormalizedIssue, error) {
	return nil, errMock
}
func (failingDataset) SaveSubmissions(context.Context, []domain.Submission) error { return errMock }
func (failingDataset) ListSubmissions(context.Context) ([]domain.Submission, error) {
	return nil, errMock
}
func (failingDataset) SaveRun(context.Context, domain.IngestRun) error { return errMock }
func (failingDataset) ListRuns(context.Context) ([]domain.IngestRun, error) {
	return nil, errMock
}
