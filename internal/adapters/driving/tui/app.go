package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/components/input"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/components/list"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/components/status"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/keymap"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/messages"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/styles"
	"github.com/NicholasSynovic/joss-dataset/internal/adapters/driving/tui/views/detail"
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// App is the submission browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keys   *keymap.KeyMap

	list       *list.SubmissionList
	filter     *input.FilterInput
	bar        *status.Bar
	detailView *detail.View

	currentView messages.ViewType

	// query is the filter sent to the query service.
	query domain.SubmissionFilter

	err    error
	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new browser with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keys:        km,
		list:        list.NewSubmissionList(s),
		filter:      input.NewFilterInput(s),
		bar:         status.NewBar(s, km),
		detailView:  detail.NewView(s),
		currentView: messages.ViewList,
	}, nil
}

// WithContext sets the context passed to the query service.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithFilter sets the initial filter.
func (a *App) WithFilter(f domain.SubmissionFilter) *App {
	a.query = f
	a.filter.SetValue(f.Text)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("joss - submissions"),
		a.load(),
	)
}

// load queries the dataset with the current filter.
func (a *App) load() tea.Cmd {
	query := a.ports.Query
	ctx := a.ctx
	f := a.query
	a.bar.SetState(status.StateLoading)
	return func() tea.Msg {
		subs, err := query.Submissions(ctx, f)
		return messages.SubmissionsLoaded{Submissions: subs, Err: err}
	}
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a.handleKey(msg)

	case messages.SubmissionsLoaded:
		if msg.Err != nil {
			a.err = msg.Err
			a.bar.SetState(status.StateError)
			a.bar.SetMessage(msg.Err.Error())
			return a, nil
		}
		a.err = nil
		a.list.SetSubmissions(msg.Submissions)
		a.bar.SetState(status.StateReady)
		a.bar.SetCount(len(msg.Submissions))
		a.bar.SetFilter(a.query.Text)
		return a, nil

	case messages.SubmissionSelected:
		a.detailView.SetSubmission(msg.Submission)
		a.currentView = messages.ViewDetail
		a.bar.SetState(status.StateDetail)
		a.bar.SetMessage(fmt.Sprintf("#%d %s", msg.Submission.IssueNumber, msg.Submission.SubmittingAuthor))
		return a, nil

	case messages.FilterApplied:
		a.query.Text = strings.TrimSpace(msg.Text)
		return a, a.load()

	case messages.ViewChanged:
		a.currentView = msg.View
		if msg.View == messages.ViewList {
			a.bar.SetState(status.StateReady)
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.bar.SetState(status.StateError)
		a.bar.SetMessage(msg.Err.Error())
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch a.currentView {
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
		return a, cmd

	case messages.ViewHelp:
		if keymap.Matches(msg.String(), a.keys.Back) || keymap.Matches(msg.String(), a.keys.Help) {
			a.currentView = messages.ViewList
		}
		return a, nil

	case messages.ViewList:
	}

	if a.filter.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			a.filter.Blur()
			text := a.filter.Value()
			return a, func() tea.Msg { return messages.FilterApplied{Text: text} }
		case tea.KeyEsc:
			a.filter.Blur()
			return a, nil
		default:
			a.filter, cmd = a.filter.Update(msg)
			return a, cmd
		}
	}

	key := msg.String()
	switch {
	case keymap.Matches(key, a.keys.Quit):
		return a, tea.Quit
	case keymap.Matches(key, a.keys.Help):
		a.currentView = messages.ViewHelp
		return a, nil
	case keymap.Matches(key, a.keys.Filter):
		return a, a.filter.Focus()
	case keymap.Matches(key, a.keys.Published):
		a.query.PublishedOnly = !a.query.PublishedOnly
		return a, a.load()
	case keymap.Matches(key, a.keys.Reload):
		return a, a.load()
	case keymap.Matches(key, a.keys.Back):
		if a.query.Text != "" {
			a.filter.SetValue("")
			return a, func() tea.Msg { return messages.FilterApplied{} }
		}
		return a, nil
	case keymap.Matches(key, a.keys.Open):
		if sub := a.list.SelectedSubmission(); sub != nil {
			selected := *sub
			return a, func() tea.Msg { return messages.SubmissionSelected{Submission: selected} }
		}
		return a, nil
	}

	a.list, cmd = a.list.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewDetail:
		return a.detailView.View() + "\n" + a.bar.View()
	case messages.ViewHelp:
		return a.viewHelp()
	case messages.ViewList:
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("JOSS review submissions"))
	if a.query.PublishedOnly {
		b.WriteString(a.styles.Muted.Render("  (published only)"))
	}
	b.WriteString("\n\n")
	if a.filter.Focused() || a.query.Text != "" {
		b.WriteString(a.filter.View())
		b.WriteString("\n\n")
	}
	b.WriteString(a.list.View())
	b.WriteString("\n\n")
	b.WriteString(a.bar.View())
	return b.String()
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Help"))
	b.WriteString("\n\n")
	for _, group := range a.keys.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-10s %s\n", h.Key, h.Desc))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[esc] back"))
	return b.String()
}

// Run starts the browser in the alternate screen.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Filter returns the active query filter.
func (a *App) Filter() domain.SubmissionFilter {
	return a.query
}

// Submissions returns the listed submissions.
func (a *App) Submissions() []domain.Submission {
	return a.list.Submissions()
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// SetDimensions sizes every component to the terminal.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.list.SetDimensions(width, height-8)
	a.filter.SetWidth(width)
	a.bar.SetWidth(width)
	a.detailView.SetDimensions(width, height-1)
}
