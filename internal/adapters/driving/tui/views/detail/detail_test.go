package detail

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/messages"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

func sample() domain.Submission {
	return domain.Submission{
		IssueNumber:      2001,
		SubmittingAuthor: "@alice",
		AuthorName:       "Alice Example",
		Repository:       "https://github.com/alice/tool",
		Editor:           "@bob",
		Reviewers:        []string{"@dan", "@erin"},
		Labels:           []string{"accepted", "published"},
		Opened:           1577836800,
		Closed:           1580515200,
	}
}

func TestView_Empty(t *testing.T) {
	v := NewView(nil)

	assert.Nil(t, v.Submission())
	assert.Nil(t, v.Init())
	assert.Contains(t, v.View(), "No submission selected")
}

func TestView_Render(t *testing.T) {
	v := NewView(nil)
	v.SetSubmission(sample())
	out := v.View()

	assert.Contains(t, out, "Review #2001")
	assert.Contains(t, out, "https://github.com/alice/tool")
	assert.Contains(t, out, "Alice Example")
	assert.Contains(t, out, "2020-02-01T00:00:00Z")
	assert.Contains(t, out, "accepted, published")
	assert.Contains(t, out, "Reviewers (2):")
	assert.Contains(t, out, "@erin")
}

func TestView_BuildContent(t *testing.T) {
	v := NewView(nil)
	sub := sample()
	sub.Closed = 0
	v.SetSubmission(sub)

	lines := v.buildContent()
	assert.Contains(t, lines, "Closed:       open")
	assert.Contains(t, lines, "ORCID:        -")
}

func TestView_Scroll(t *testing.T) {
	v := NewView(nil)
	v.SetDimensions(80, 10)
	v.SetSubmission(sample())
	maxOffset := v.maxScrollOffset()
	require.Positive(t, maxOffset)

	v.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, v.scrollOffset)

	for i := 0; i < maxOffset+3; i++ {
		v.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	assert.Equal(t, maxOffset, v.scrollOffset)
	assert.Contains(t, v.View(), "[Line")

	v.SetSubmission(sample())
	assert.Equal(t, 0, v.scrollOffset, "a new submission scrolls to the top")
}

func TestView_EscReturnsToList(t *testing.T) {
	v := NewView(nil)
	v.SetSubmission(sample())

	_, cmd := v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, messages.ViewChanged{View: messages.ViewList}, cmd())

	_, cmd = v.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Nil(t, cmd)
}
