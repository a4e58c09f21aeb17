package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArtifactFileName(t *testing.T) {
	assert.Equal(t, "github_issues_1700000000.json", ArtifactFileName(ArtifactRawIssues, 1700000000))
	assert.Equal(t, "joss_submissions_5.json", ArtifactFileName(ArtifactSubmissions, 5))
}

func TestArtifactKindFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want ArtifactKind
		ok   bool
	}{
		{"github_issues_1700000000.json", ArtifactRawIssues, true},
		{"/data/github_issues_normalized_1700000000.json", ArtifactNormalizedIssues, true},
		{"joss_submissions_1.json", ArtifactSubmissions, true},
		{"issues.json", "", false},
		{"github_issues.json", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ArtifactKindFromFilename(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseExportFormat(t *testing.T) {
	for in, want := range map[string]ExportFormat{"json": FormatJSON, "YAML": FormatYAML, " yml ": FormatYAML} {
		got, err := ParseExportFormat(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseExportFormat("csv")
	assert.True(t, IsConfigurationError(err))
}
