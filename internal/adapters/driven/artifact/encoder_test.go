package artifact

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

var sample = []domain.Submission{{
	IssueNumber: 2001,
	Repository:  "https://github.com/alice/tool",
	Reviewers:   []string{"@dan", "@erin"},
	Labels:      []string{"accepted"},
	JOSSURL:     "https://joss.theoj.org/papers/10.21105/joss.02001",
	Opened:      1577836800,
}}

func TestEncoder_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder().Encode(&buf, domain.FormatJSON, sample))

	var back []domain.Submission
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample, back)
	assert.Contains(t, buf.String(), `"Issue Number": 2001`)
}

func TestEncoder_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder().Encode(&buf, domain.FormatYAML, sample))

	assert.Contains(t, buf.String(), "Issue Number: 2001")
	assert.Contains(t, buf.String(), "JOSS URL: https://joss.theoj.org/papers/10.21105/joss.02001")

	var back []domain.Submission
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, sample, back)
}

func TestEncoder_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewEncoder().Encode(&buf, domain.FormatJSON, nil))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, NewEncoder().Encode(&buf, domain.FormatYAML, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEncoder_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewEncoder().Encode(&buf, domain.ExportFormat("csv"), sample))
}
