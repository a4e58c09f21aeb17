package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirection_IsValid(t *testing.T) {
	tests := []struct {
		dir  Direction
		want bool
	}{
		{DirectionAsc, true},
		{DirectionDesc, true},
		{"", false},
		{"ASC", false},
		{"sideways", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.dir.IsValid())
		})
	}
}

func TestParseRepoTarget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		target, err := ParseRepoTarget(" openjournals/joss-reviews ")
		require.NoError(t, err)
		assert.Equal(t, RepoTarget{Owner: "openjournals", Repo: "joss-reviews"}, target)
		assert.Equal(t, "openjournals/joss-reviews", target.FullName())
	})

	for _, in := range []string{"", "owner", "/repo", "owner/", "a/b/c"} {
		t.Run("invalid "+in, func(t *testing.T) {
			_, err := ParseRepoTarget(in)
			assert.True(t, IsConfigurationError(err))
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "openjournals/joss-reviews", s.Target.FullName())
	assert.Equal(t, 100, s.PerPage)
	assert.Equal(t, 0, s.MaxPages)
	assert.Equal(t, DirectionAsc, s.Direction)
	assert.Equal(t, "GITHUB_TOKEN", s.TokenEnv)
	assert.Equal(t, "https://api.github.com/", s.APIURL)
	assert.NoError(t, s.Validate())
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Settings)
		setting string
	}{
		{"missing owner", func(s *Settings) { s.Target.Owner = "" }, "github.owner/github.repo"},
		{"per page zero", func(s *Settings) { s.PerPage = 0 }, "github.per_page"},
		{"per page too large", func(s *Settings) { s.PerPage = 101 }, "github.per_page"},
		{"negative max pages", func(s *Settings) { s.MaxPages = -1 }, "github.max_pages"},
		{"bad direction", func(s *Settings) { s.Direction = "up" }, "github.direction"},
		{"blank token env", func(s *Settings) { s.TokenEnv = "  " }, "github.token_env"},
		{"negative rps", func(s *Settings) { s.RequestsPerSecond = -2 }, "github.requests_per_second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.mutate(&s)

			err := s.Validate()
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.setting, cfgErr.Setting)
		})
	}
}
