package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFilterInput(t *testing.T) {
	f := NewFilterInput(nil)

	require.NotNil(t, f)
	assert.False(t, f.Focused())
	assert.Empty(t, f.Value())
	assert.Contains(t, f.View(), "Filter:")
}

func TestFilterInput_Typing(t *testing.T) {
	f := NewFilterInput(nil)
	f.Focus()

	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("astro")})
	assert.Equal(t, "astro", f.Value())

	f.Blur()
	assert.False(t, f.Focused())
	f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Equal(t, "astro", f.Value(), "blurred input ignores keys")
}

func TestFilterInput_SetValueAndWidth(t *testing.T) {
	f := NewFilterInput(nil)

	f.SetValue("@bob")
	assert.Equal(t, "@bob", f.Value())

	f.SetWidth(10)
	assert.Equal(t, 20, f.textinput.Width)
	f.SetWidth(100)
	assert.Equal(t, 86, f.textinput.Width)
}
