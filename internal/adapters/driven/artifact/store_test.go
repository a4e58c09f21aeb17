package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStore_ReadRawIssues(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	t.Run("array", func(t *testing.T) {
		path := writeFile(t, dir, "github_issues_1.json", `[{"id":1},"x",null]`)
		issues, err := store.ReadRawIssues(path)
		require.NoError(t, err)
		assert.Len(t, issues, 3)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := store.ReadRawIssues(filepath.Join(dir, "nope.json"))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("object", func(t *testing.T) {
		path := writeFile(t, dir, "obj.json", `{"message":"Not Found"}`)
		_, err := store.ReadRawIssues(path)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("null", func(t *testing.T) {
		path := writeFile(t, dir, "null.json", `null`)
		_, err := store.ReadRawIssues(path)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestStore_ReadIssues(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	path := writeFile(t, dir, "norm.json", `[{"id":5,"number":2,"labels":null,"state":"open","created_at":10}]`)
	issues, err := store.ReadIssues(path)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, int64(5), issues[0].ID)
	assert.Equal(t, []string{}, issues[0].Labels)

	path = writeFile(t, dir, "bad.json", `{"id":5}`)
	_, err = store.ReadIssues(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	path = writeFile(t, dir, "broken.json", `[{"id":"five"}]`)
	_, err = store.ReadIssues(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_ReadSubmissions(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	path := writeFile(t, dir, "subs.json", `[{"Issue Number":9,"Reviewers":["@a"],"JOSS URL":"https://joss.theoj.org/x"}]`)
	subs, err := store.ReadSubmissions(path)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, int64(9), subs[0].IssueNumber)
	assert.Equal(t, []string{"@a"}, subs[0].Reviewers)
	assert.Equal(t, []string{}, subs[0].Labels)
	assert.Equal(t, "https://joss.theoj.org/x", subs[0].JOSSURL)
}

func TestStore_Write(t *testing.T) {
	t.Run("raw issues are written unmodified", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(filepath.Join(dir, "out"))

		raw := []domain.RawIssue{domain.RawIssue(`{"z":1,"a":"<b>"}`)}
		path, err := store.Write(domain.ArtifactRawIssues, 1700000000, raw)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "out", "github_issues_1700000000.json"), path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		text := string(data)
		assert.Less(t, strings.Index(text, `"z"`), strings.Index(text, `"a"`))
		assert.Contains(t, text, `"<b>"`)
		assert.True(t, strings.HasSuffix(text, "]\n"))

		back, err := store.ReadRawIssues(path)
		require.NoError(t, err)
		require.Len(t, back, 1)
		assert.JSONEq(t, string(raw[0]), string(back[0]))
	})

	t.Run("other artifacts have sorted keys", func(t *testing.T) {
		store := NewStore(t.TempDir())

		subs := []domain.Submission{{IssueNumber: 1, Reviewers: []string{}, Labels: []string{}, Opened: 1577836800}}
		path, err := store.Write(domain.ArtifactSubmissions, 5, subs)
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		text := string(data)
		assert.Less(t, strings.Index(text, `"Archive"`), strings.Index(text, `"Issue Number"`))
		assert.Contains(t, text, `"Opened": 1577836800`)
		assert.Contains(t, text, "\n  {\n    \"Archive\"")

		back, err := store.ReadSubmissions(path)
		require.NoError(t, err)
		assert.Equal(t, subs, back)
	})

	t.Run("empty slice", func(t *testing.T) {
		store := NewStore(t.TempDir())
		path, err := store.Write(domain.ArtifactSubmissions, 5, []domain.Submission{})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	})

	t.Run("no temp files left behind", func(t *testing.T) {
		dir := t.TempDir()
		store := NewStore(dir)
		_, err := store.Write(domain.ArtifactNormalizedIssues, 5, []domain.NormalizedIssue{domain.DefaultIssue()})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "github_issues_normalized_5.json", entries[0].Name())
	})
}

func TestNewStore_DefaultDir(t *testing.T) {
	assert.Equal(t, ".", NewStore("").Dir())
}
