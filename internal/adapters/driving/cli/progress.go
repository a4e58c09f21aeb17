package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
)

// isTerminal reports whether w is an interactive terminal.
var isTerminal = func(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var (
	progressLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED")).Bold(true)
	progressMuted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
)

// pageProgress draws a single self-overwriting status line while issues
// are collected. With a known last page it shows a bar, otherwise a
// spinner frame per page.
type pageProgress struct {
	w       io.Writer
	bar     progress.Model
	frames  []string
	enabled bool
	drawn   bool
}

// newPageProgress renders to w only when w is a terminal and verbose
// logging is off, since log lines would tear the status line.
func newPageProgress(w io.Writer, quiet bool) *pageProgress {
	return &pageProgress{
		w:       w,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		frames:  spinner.MiniDot.Frames,
		enabled: !quiet && isTerminal(w),
	}
}

// Update redraws the line for one fetched page.
func (p *pageProgress) Update(pp driven.PageProgress) {
	if !p.enabled {
		return
	}
	fmt.Fprint(p.w, "\r\x1b[2K"+p.render(pp))
	p.drawn = true
}

func (p *pageProgress) render(pp driven.PageProgress) string {
	counts := progressMuted.Render(fmt.Sprintf("%d issues", pp.Collected))
	if pp.LastPage > 0 {
		pct := float64(pp.Page) / float64(pp.LastPage)
		if pct > 1 {
			pct = 1
		}
		return fmt.Sprintf("%s %s page %d/%d  %s",
			progressLabel.Render("Collecting"), p.bar.ViewAs(pct), pp.Page, pp.LastPage, counts)
	}
	frame := p.frames[pp.Page%len(p.frames)]
	return fmt.Sprintf("%s %s page %d  %s", frame, progressLabel.Render("Collecting"), pp.Page, counts)
}

// Done ends the status line.
func (p *pageProgress) Done() {
	if p.drawn {
		fmt.Fprintln(p.w)
		p.drawn = false
	}
}
