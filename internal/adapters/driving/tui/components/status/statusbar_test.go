package status

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/keymap"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Equal(t, StateLoading, bar.State())
	assert.Contains(t, bar.View(), "Loading...")
}

func TestBar_View(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(b *Bar)
		contains []string
	}{
		{
			name: "ready with count",
			setup: func(b *Bar) {
				b.SetState(StateReady)
				b.SetCount(42)
			},
			contains: []string{"42 submissions", "/: filter"},
		},
		{
			name: "ready with filter",
			setup: func(b *Bar) {
				b.SetState(StateReady)
				b.SetCount(2)
				b.SetFilter("astro")
			},
			contains: []string{`2 submissions matching "astro"`},
		},
		{
			name: "error message",
			setup: func(b *Bar) {
				b.SetState(StateError)
				b.SetMessage("database is locked")
			},
			contains: []string{"Error: database is locked"},
		},
		{
			name:     "error without message",
			setup:    func(b *Bar) { b.SetState(StateError) },
			contains: []string{"Error"},
		},
		{
			name: "detail",
			setup: func(b *Bar) {
				b.SetState(StateDetail)
				b.SetMessage("#2001")
			},
			contains: []string{"#2001", "esc: back"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			tt.setup(bar)
			view := bar.View()
			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestBar_ViewSingleLine(t *testing.T) {
	for _, width := range []int{80, 120, 200} {
		t.Run(fmt.Sprint(width), func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(width)
			bar.SetState(StateDetail)
			bar.SetMessage("#2001 @alice")

			view := bar.View()
			assert.NotContains(t, view, "\n")
			assert.Equal(t, width, lipgloss.Width(view))
		})
	}
}

func TestBar_Hints(t *testing.T) {
	km := keymap.DefaultKeyMap()
	bar := NewBar(nil, km)

	assert.Equal(t, km.ListHelp(), bar.Hints())
	bar.SetState(StateDetail)
	assert.Equal(t, km.DetailHelp(), bar.Hints())
}
