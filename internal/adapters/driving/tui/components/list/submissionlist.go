// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/styles"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// SubmissionList displays submissions in a navigable list, one line each.
type SubmissionList struct {
	submissions []domain.Submission
	selected    int
	styles      *styles.Styles
	width       int
	height      int
}

// NewSubmissionList creates a new submission list component.
func NewSubmissionList(s *styles.Styles) *SubmissionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SubmissionList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the list.
func (l *SubmissionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation keys.
func (l *SubmissionList) Update(msg tea.Msg) (*SubmissionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.submissions) > 0 {
				l.selected = len(l.submissions) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of the list.
func (l *SubmissionList) View() string {
	if len(l.submissions) == 0 {
		return l.styles.Muted.Render("No submissions")
	}

	lines := make([]string, 0, l.visibleCount()+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Submissions (%d)", len(l.submissions))), "")

	start, end := l.window()
	for i := start; i < end; i++ {
		lines = append(lines, l.renderRow(i, &l.submissions[i]))
	}
	return strings.Join(lines, "\n")
}

// visibleCount is the number of rows that fit below the header.
func (l *SubmissionList) visibleCount() int {
	n := l.height - 2
	if n < 1 {
		n = 1
	}
	return n
}

// window returns the [start, end) range of rows that keeps the selection visible.
func (l *SubmissionList) window() (int, int) {
	visible := l.visibleCount()
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.submissions) {
		end = len(l.submissions)
	}
	return start, end
}

func (l *SubmissionList) renderRow(index int, sub *domain.Submission) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	repo := strings.TrimPrefix(strings.TrimPrefix(sub.Repository, "https://"), "http://")
	if repo == "" {
		repo = "(no repository)"
	}
	maxRepo := l.width - 30
	if maxRepo < 10 {
		maxRepo = 10
	}
	repo = truncate(repo, maxRepo)

	text := fmt.Sprintf("%s#%-5d %-*s %s", indicator, sub.IssueNumber, maxRepo, repo, sub.SubmittingAuthor)
	if index == l.selected {
		return l.styles.Selected.Render(text) + " " + l.badge(sub)
	}
	return l.styles.Normal.Render(text) + " " + l.badge(sub)
}

// badge marks a row as published or pending.
func (l *SubmissionList) badge(sub *domain.Submission) string {
	if sub.JOSSURL != "" {
		return l.styles.Published.Render("published")
	}
	return l.styles.Pending.Render("pending")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// SetSubmissions replaces the list contents and resets the selection.
func (l *SubmissionList) SetSubmissions(subs []domain.Submission) {
	l.submissions = subs
	l.selected = 0
}

// Submissions returns the current list contents.
func (l *SubmissionList) Submissions() []domain.Submission {
	return l.submissions
}

// Selected returns the index of the selected row.
func (l *SubmissionList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index; out of range values are ignored.
func (l *SubmissionList) SetSelected(index int) {
	if index >= 0 && index < len(l.submissions) {
		l.selected = index
	}
}

// SelectedSubmission returns the selected submission, or nil if the list is empty.
func (l *SubmissionList) SelectedSubmission() *domain.Submission {
	if len(l.submissions) == 0 || l.selected < 0 || l.selected >= len(l.submissions) {
		return nil
	}
	return &l.submissions[l.selected]
}

// MoveUp moves selection up.
func (l *SubmissionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SubmissionList) MoveDown() {
	if l.selected < len(l.submissions)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SubmissionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of submissions.
func (l *SubmissionList) Count() int {
	return len(l.submissions)
}
