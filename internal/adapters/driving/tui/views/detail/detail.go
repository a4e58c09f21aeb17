// Package detail provides the submission detail view for the TUI.
package detail

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/messages"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/styles"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// View shows every extracted field of one submission.
type View struct {
	styles *styles.Styles

	submission   *domain.Submission
	scrollOffset int
	width        int
	height       int
}

// NewView creates a new detail view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{styles: s, width: 80, height: 24}
}

// SetSubmission sets the submission to display and scrolls to the top.
func (v *View) SetSubmission(sub domain.Submission) {
	v.submission = &sub
	v.scrollOffset = 0
}

// Submission returns the displayed submission, or nil.
func (v *View) Submission() *domain.Submission {
	return v.submission
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and leaving the view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch km.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "esc", "backspace":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewList}
		}
	}
	return v, nil
}

func (v *View) visibleLines() int {
	available := v.height - 6
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	n := len(v.buildContent()) - v.visibleLines()
	if n < 0 {
		return 0
	}
	return n
}

// buildContent returns one "Label: value" line per field. Empty fields
// are shown as a dash so the layout does not shift between submissions.
func (v *View) buildContent() []string {
	sub := v.submission
	if sub == nil {
		return nil
	}

	closed := "open"
	if !sub.IsOpen() {
		closed = domain.UnixToISO(sub.Closed)
	}

	lines := []string{
		field("Repository", sub.Repository),
		field("Branch", sub.Branch),
		field("Version", sub.Version),
		field("Author", sub.SubmittingAuthor),
		field("Name", sub.AuthorName),
		field("ORCID", sub.ORCID),
		field("Editor", sub.Editor),
		field("Managing EiC", sub.ManagingEiC),
		field("Archive", sub.Archive),
		field("JOSS URL", sub.JOSSURL),
		field("Opened", domain.UnixToISO(sub.Opened)),
		field("Closed", closed),
		field("Labels", strings.Join(sub.Labels, ", ")),
		"",
		fmt.Sprintf("Reviewers (%d):", len(sub.Reviewers)),
	}
	for _, r := range sub.Reviewers {
		lines = append(lines, "  "+r)
	}
	return lines
}

func field(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%-13s %s", label+":", value)
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	if v.submission == nil {
		b.WriteString(v.styles.Muted.Render("No submission selected"))
		b.WriteString("\n\n")
		b.WriteString(v.renderHelp())
		return b.String()
	}

	b.WriteString(v.styles.Title.Render(fmt.Sprintf("Review #%d", v.submission.IssueNumber)))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	lines := v.buildContent()
	visible := v.visibleLines()
	for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
		b.WriteString(v.renderLine(lines[i]))
		b.WriteString("\n")
	}

	if len(lines) > visible {
		b.WriteString("\n")
		b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
			v.scrollOffset+1, minInt(v.scrollOffset+visible, len(lines)), len(lines))))
	}

	b.WriteString("\n\n")
	b.WriteString(v.renderHelp())
	return b.String()
}

func (v *View) renderLine(line string) string {
	if strings.HasPrefix(line, "  ") || line == "" {
		return v.styles.Normal.Render(line)
	}
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return v.styles.Normal.Render(line)
	}
	return v.styles.Subtitle.Render(parts[0]+":") + v.styles.Normal.Render(parts[1])
}

func (v *View) renderHelp() string {
	return v.styles.Help.Render("[↑/↓] scroll  [esc] back")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
