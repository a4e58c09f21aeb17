package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driving"
	"github.com/NicholasSynovic/joss-dataset/internal/core/services"
)

// mockIngestService records the request and returns a canned run.
type mockIngestService struct {
	got driving.IngestRequest
	err error
}

func (m *mockIngestService) Ingest(_ context.Context, req driving.IngestRequest) (*domain.IngestRun, error) {
	m.got = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestRun{
		ID:         "run-1",
		Repository: req.Target.FullName(),
		Pages:      1,
		Issues:     3,
		OutputPath: "github_issues_1.json",
	}, nil
}

func stubIngest(t *testing.T, svc driving.IngestService) {
	t.Helper()
	orig := newIngestService
	newIngestService = func(context.Context, domain.Settings, func(driven.PageProgress)) (driving.IngestService, func(), error) {
		return svc, noop, nil
	}
	t.Cleanup(func() { newIngestService = orig })
}

const reviewBody = "**Submitting author:** <a href=\"https://orcid.org/0000-0002-1825-0097\">Alice Example</a>\n" +
	"<!--author-handle-->@alice<!--end-author-handle-->\n" +
	"**Repository:** <!--target-repository-->https://github.com/alice/tool<!--end-target-repository-->\n" +
	"<!--reviewers-list-->@dan, @erin<!--end-reviewers-list-->\n"

func writeRawArtifact(t *testing.T, dir string) string {
	t.Helper()
	raw := []map[string]any{{
		"id":         101,
		"number":     7,
		"user":       map[string]any{"id": 1, "login": "editorialbot"},
		"labels":     []map[string]any{{"name": "review"}},
		"state":      "open",
		"created_at": "2020-01-01T00:00:00Z",
		"updated_at": "2020-01-02T00:00:00Z",
		"closed_at":  nil,
		"body":       reviewBody,
	}, {
		"id":     102,
		"number": 8,
	}}
	data, err := json.Marshal(raw)
	require.NoError(t, err)
	path := filepath.Join(dir, "github_issues_1577836800.json")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

// artifactPath returns the single artifact of kind in dir.
func artifactPath(t *testing.T, dir string, kind domain.ArtifactKind) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, string(kind)+"_*.json"))
	require.NoError(t, err)
	var out []string
	for _, m := range matches {
		if k, ok := domain.ArtifactKindFromFilename(m); ok && k == kind {
			out = append(out, m)
		}
	}
	require.Len(t, out, 1, "artifacts of kind %s", kind)
	return out[0]
}

func TestIngestCmd(t *testing.T) {
	t.Run("uses configured settings", func(t *testing.T) {
		newTestConfig(t)
		svc := &mockIngestService{}
		stubIngest(t, svc)

		out, err := execute(t, "ingest")
		require.NoError(t, err)

		assert.Equal(t, "openjournals/joss-reviews", svc.got.Target.FullName())
		assert.Equal(t, 100, svc.got.PerPage)
		assert.Equal(t, 0, svc.got.MaxPages)
		assert.Equal(t, domain.DirectionAsc, svc.got.Direction)
		assert.Contains(t, out, "Collected 3 issues from openjournals/joss-reviews in 1 pages.")
	})

	t.Run("flags override settings", func(t *testing.T) {
		newTestConfig(t)
		svc := &mockIngestService{}
		stubIngest(t, svc)

		_, err := execute(t, "ingest", "--repo", "acme/reviews", "--per-page", "50", "--max-pages", "2", "--direction", "desc")
		require.NoError(t, err)

		assert.Equal(t, "acme/reviews", svc.got.Target.FullName())
		assert.Equal(t, 50, svc.got.PerPage)
		assert.Equal(t, 2, svc.got.MaxPages)
		assert.Equal(t, domain.DirectionDesc, svc.got.Direction)
	})

	t.Run("invalid flag is a configuration error", func(t *testing.T) {
		newTestConfig(t)
		stubIngest(t, &mockIngestService{})

		_, err := execute(t, "ingest", "--per-page", "500")
		assert.Equal(t, ExitConfiguration, ExitCode(err))

		_, err = execute(t, "ingest", "--repo", "noslash")
		assert.Equal(t, ExitConfiguration, ExitCode(err))
	})

	t.Run("remote failure", func(t *testing.T) {
		newTestConfig(t)
		stubIngest(t, &mockIngestService{err: domain.ErrRemoteAPI})

		_, err := execute(t, "ingest")
		assert.ErrorIs(t, err, domain.ErrRemoteAPI)
		assert.Equal(t, ExitFailure, ExitCode(err))
	})

	t.Run("missing token fails before any file is written", func(t *testing.T) {
		dir := newTestConfig(t)
		require.NoError(t, testStore.Set(services.KeyTokenEnv, "JOSS_TEST_TOKEN_THAT_IS_NEVER_SET"))

		_, err := execute(t, "ingest")
		assert.Equal(t, ExitConfiguration, ExitCode(err))
		assert.ErrorIs(t, err, domain.ErrMissingCredential)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestPipeline_EndToEnd(t *testing.T) {
	dir := newTestConfig(t)
	rawPath := writeRawArtifact(t, dir)

	out, err := execute(t, "transform", "-i", rawPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Normalized 2 issues (1 with defaults).")
	normPath := artifactPath(t, dir, domain.ArtifactNormalizedIssues)

	out, err = execute(t, "parse", "-i", normPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped (missing accepted label)")
	assert.Contains(t, out, "Wrote 0 submissions")

	require.NoError(t, removeArtifacts(dir, domain.ArtifactSubmissions))
	out, err = execute(t, "parse", "-i", normPath, "--all-submissions")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 1 submissions")
	subsPath := artifactPath(t, dir, domain.ArtifactSubmissions)

	out, err = execute(t, "load", "-i", subsPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 1 joss_submissions records.")

	out, err = execute(t, "load", "-i", normPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Loaded 2 github_issues_normalized records.")

	out, err = execute(t, "export", "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "Issue Number: 7")
	assert.Contains(t, out, "Repository: https://github.com/alice/tool")
	assert.Contains(t, out, "ORCID: 0000-0002-1825-0097")

	exportPath := filepath.Join(dir, "export.json")
	_, err = execute(t, "export", "-o", exportPath)
	require.NoError(t, err)
	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	var subs []domain.Submission
	require.NoError(t, json.Unmarshal(data, &subs))
	require.Len(t, subs, 1)
	assert.Equal(t, []string{"@dan", "@erin"}, subs[0].Reviewers)
	assert.Equal(t, int64(1577836800), subs[0].Opened)
	assert.Equal(t, int64(0), subs[0].Closed)
}

func removeArtifacts(dir string, kind domain.ArtifactKind) error {
	matches, err := filepath.Glob(filepath.Join(dir, string(kind)+"_*.json"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil {
			return err
		}
	}
	return nil
}

func TestTransformCmd_Errors(t *testing.T) {
	t.Run("input is required", func(t *testing.T) {
		newTestConfig(t)
		_, err := execute(t, "transform")
		assert.Error(t, err)
	})

	t.Run("missing input file", func(t *testing.T) {
		dir := newTestConfig(t)
		_, err := execute(t, "transform", "-i", filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, ExitFailure, ExitCode(err))
	})

	t.Run("writes a log file", func(t *testing.T) {
		dir := newTestConfig(t)
		rawPath := writeRawArtifact(t, dir)

		_, err := execute(t, "transform", "-i", rawPath)
		require.NoError(t, err)

		logs, err := filepath.Glob(filepath.Join(dir, "transform_*.log"))
		require.NoError(t, err)
		assert.Len(t, logs, 1)
	})
}

func TestLoadCmd_RejectsRawArtifacts(t *testing.T) {
	dir := newTestConfig(t)
	rawPath := writeRawArtifact(t, dir)

	_, err := execute(t, "load", "-i", rawPath)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportCmd_BadFormat(t *testing.T) {
	newTestConfig(t)
	_, err := execute(t, "export", "--format", "csv")
	assert.Equal(t, ExitConfiguration, ExitCode(err))
}

func TestRunsCmd(t *testing.T) {
	dir := newTestConfig(t)

	out, err := execute(t, "runs")
	require.NoError(t, err)
	assert.Contains(t, out, "No ingest runs recorded.")

	dataset, closeDataset, err := newDatasetStore(domain.Settings{StorageDir: dir})
	require.NoError(t, err)
	require.NoError(t, dataset.SaveRun(context.Background(), domain.IngestRun{
		ID: "run-9", Repository: "openjournals/joss-reviews", StartedAt: 1577836800, Pages: 2, Issues: 150,
	}))
	closeDataset()

	out, err = execute(t, "runs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "run-9  2020-01-01T00:00:00Z  openjournals/joss-reviews  pages=2 issues=150"))
}
