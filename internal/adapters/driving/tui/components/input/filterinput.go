// Package input provides text input components for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/styles"
)

// FilterInput wraps a bubbles textinput for the submission filter.
type FilterInput struct {
	textinput textinput.Model
	styles    *styles.Styles
}

// NewFilterInput creates an unfocused filter input.
func NewFilterInput(s *styles.Styles) *FilterInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "repository, author or editor"
	ti.CharLimit = 128
	ti.Width = 40

	return &FilterInput{textinput: ti, styles: s}
}

// Update forwards messages to the text input.
func (f *FilterInput) Update(msg tea.Msg) (*FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	return f, cmd
}

// View renders the label and the input box.
func (f *FilterInput) View() string {
	label := f.styles.Title.Render("Filter: ")
	box := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, box)
}

// Value returns the current input value.
func (f *FilterInput) Value() string {
	return f.textinput.Value()
}

// SetValue sets the input value.
func (f *FilterInput) SetValue(value string) {
	f.textinput.SetValue(value)
}

// Focus sets focus on the input.
func (f *FilterInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FilterInput) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FilterInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sizes the input to the terminal width.
func (f *FilterInput) SetWidth(width int) {
	w := width - 14
	if w < 20 {
		w = 20
	}
	f.textinput.Width = w
}
