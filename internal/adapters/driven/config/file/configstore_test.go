package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*ConfigStore, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	return store, dir
}

func TestNewConfigStore(t *testing.T) {
	t.Run("creates nested config dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "joss", "conf")
		store, err := NewConfigStore(dir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, ConfigFileName), store.Path())

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
	})

	tests := []struct {
		name    string
		content *string
		wantErr bool
	}{
		{name: "missing file starts empty"},
		{name: "empty file", content: ptr("")},
		{name: "comment only", content: ptr("# joss settings\n\n")},
		{name: "corrupt file", content: ptr("[github\nowner = "), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(*tt.content), 0600))
			}

			store, err := NewConfigStore(dir)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, store)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, store.Keys())
		})
	}
}

func ptr(s string) *string { return &s }

func TestConfigStore_TypedGetters(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("github.owner", "openjournals"))
	require.NoError(t, store.Set("github.per_page", 50))
	require.NoError(t, store.Set("github.requests_per_second", 1.5))
	require.NoError(t, store.Set("watch.chain", true))

	t.Run("matching types", func(t *testing.T) {
		assert.Equal(t, "openjournals", store.GetString("github.owner"))
		assert.Equal(t, 50, store.GetInt("github.per_page"))
		assert.InDelta(t, 1.5, store.GetFloat("github.requests_per_second"), 1e-9)
		assert.InDelta(t, 50.0, store.GetFloat("github.per_page"), 1e-9, "ints widen to float")
		assert.True(t, store.GetBool("watch.chain"))
	})

	t.Run("wrong type or missing yields zero", func(t *testing.T) {
		assert.Empty(t, store.GetString("github.per_page"))
		assert.Zero(t, store.GetInt("github.owner"))
		assert.Zero(t, store.GetFloat("watch.chain"))
		assert.False(t, store.GetBool("github.owner"))

		val, ok := store.Get("github.token")
		assert.False(t, ok)
		assert.Nil(t, val)
	})
}

func TestConfigStore_NestedTables(t *testing.T) {
	store, dir := newStore(t)
	require.NoError(t, store.Set("github.owner", "openjournals"))
	require.NoError(t, store.Set("github.repo", "joss-reviews"))
	require.NoError(t, store.Set("github.per_page", 100))
	require.NoError(t, store.Set("output.dir", "/tmp/out"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[github]")
	assert.Contains(t, string(raw), "[output]")
	assert.NotContains(t, string(raw), "github.owner")

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, "openjournals", reloaded.GetString("github.owner"))
	assert.Equal(t, "joss-reviews", reloaded.GetString("github.repo"))
	assert.Equal(t, 100, reloaded.GetInt("github.per_page"), "TOML ints come back as int64")
	assert.Equal(t, "/tmp/out", reloaded.GetString("output.dir"))
	assert.Equal(t, []string{"github.owner", "github.per_page", "github.repo", "output.dir"}, reloaded.Keys())
}

func TestConfigStore_LoadsHandWrittenTables(t *testing.T) {
	dir := t.TempDir()
	content := "[github]\nowner = \"acme\"\nper_page = 50\n\n[log]\ndir = \"logs\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "acme", store.GetString("github.owner"))
	assert.Equal(t, 50, store.GetInt("github.per_page"))
	assert.Equal(t, "logs", store.GetString("log.dir"))

	t.Run("reload picks up edits", func(t *testing.T) {
		require.NoError(t, os.WriteFile(store.Path(), []byte("[github]\nowner = \"other\"\n"), 0600))
		require.NoError(t, store.Load())
		assert.Equal(t, "other", store.GetString("github.owner"))
		_, ok := store.Get("log.dir")
		assert.False(t, ok)
	})

	t.Run("reload of corrupt file fails", func(t *testing.T) {
		require.NoError(t, os.WriteFile(store.Path(), []byte("owner = ]["), 0600))
		assert.Error(t, store.Load())
	})
}

func TestConfigStore_ConflictingKeys(t *testing.T) {
	store, _ := newStore(t)

	require.NoError(t, store.Set("github", "scalar"))
	err := store.Set("github.owner", "acme")
	assert.Error(t, err)

	// Failed write is rolled back.
	_, ok := store.Get("github.owner")
	assert.False(t, ok)
	assert.Equal(t, "scalar", store.GetString("github"))
}

func TestConfigStore_SetRollsBackOnWriteError(t *testing.T) {
	store, _ := newStore(t)
	require.NoError(t, store.Set("github.owner", "acme"))

	// A directory in place of the file makes every write fail.
	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, os.Mkdir(store.Path(), 0700))

	assert.Error(t, store.Set("github.owner", "other"))
	assert.Equal(t, "acme", store.GetString("github.owner"))
	assert.Error(t, store.Set("github.repo", "joss-reviews"))
	_, ok := store.Get("github.repo")
	assert.False(t, ok)
}

func TestConfigStore_Unset(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, store.Set("github.owner", "acme"))
	require.NoError(t, store.Set("github.repo", "joss-reviews"))
	require.NoError(t, store.Unset("github.owner"))
	require.NoError(t, store.Unset("never.set"))

	reloaded, err := NewConfigStore(dir)
	require.NoError(t, err)
	_, ok := reloaded.Get("github.owner")
	assert.False(t, ok)
	assert.Equal(t, []string{"github.repo"}, reloaded.Keys())
}

func TestNestMap(t *testing.T) {
	flat := map[string]any{
		"a.b":   1,
		"a.c.d": "x",
		"e":     true,
	}
	nested, err := nestMap(flat)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": map[string]any{
			"b": 1,
			"c": map[string]any{"d": "x"},
		},
		"e": true,
	}, nested)

	assert.Equal(t, flat, flattenMap(nested, ""))

	t.Run("value under a scalar", func(t *testing.T) {
		_, err := nestMap(map[string]any{"a": 1, "a.b": 2})
		assert.Error(t, err)
	})
}
