// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewList is the filterable submission list.
	ViewList ViewType = iota
	// ViewDetail shows one submission.
	ViewDetail
	// ViewHelp lists the keybindings.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// SubmissionsLoaded carries query results back to the model.
type SubmissionsLoaded struct {
	Submissions []domain.Submission
	Err         error
}

// SubmissionSelected opens one submission in the detail view.
type SubmissionSelected struct {
	Submission domain.Submission
}

// FilterApplied is sent when the filter input is submitted.
type FilterApplied struct {
	Text string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
