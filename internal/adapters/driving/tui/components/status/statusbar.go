// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/keymap"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/styles"
)

// State represents the current application state for display.
type State string

// Bar states.
const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateDetail  State = "detail"
	StateError   State = "error"
)

// Bar displays the submission count, the active filter and key hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
	count   int
	filter  string
	width   int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateLoading,
		width:  80,
	}
}

// View renders the status bar.
func (b *Bar) View() string {
	left := b.renderLeft()
	right := b.renderRight()

	// Width includes the style's horizontal padding.
	inner := b.width - b.styles.StatusBar.GetHorizontalFrameSize()
	padding := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return b.styles.StatusBar.Width(b.width).Render(left + strings.Repeat(" ", padding) + right)
}

func (b *Bar) renderLeft() string {
	switch b.state {
	case StateLoading:
		return b.styles.Muted.Render("Loading...")
	case StateError:
		if b.message != "" {
			return b.styles.Error.Render("Error: " + b.message)
		}
		return b.styles.Error.Render("Error")
	case StateDetail:
		return b.styles.Normal.Render(b.message)
	case StateReady:
	}

	text := fmt.Sprintf("%d submissions", b.count)
	if b.filter != "" {
		text += fmt.Sprintf(" matching %q", b.filter)
	}
	return b.styles.Normal.Render(text)
}

func (b *Bar) renderRight() string {
	bindings := b.keymap.ListHelp()
	if b.state == StateDetail {
		bindings = b.keymap.DetailHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return b.styles.Muted.Render(strings.Join(hints, " | "))
}

// Hints returns the key bindings currently advertised.
func (b *Bar) Hints() []key.Binding {
	if b.state == StateDetail {
		return b.keymap.DetailHelp()
	}
	return b.keymap.ListHelp()
}

// SetState sets the current state.
func (b *Bar) SetState(state State) {
	b.state = state
}

// State returns the current state.
func (b *Bar) State() State {
	return b.state
}

// SetMessage sets the error or detail message.
func (b *Bar) SetMessage(message string) {
	b.message = message
}

// SetCount sets the number of listed submissions.
func (b *Bar) SetCount(count int) {
	b.count = count
}

// SetFilter sets the active filter text.
func (b *Bar) SetFilter(filter string) {
	b.filter = filter
}

// SetWidth sets the status bar width.
func (b *Bar) SetWidth(width int) {
	b.width = width
}
