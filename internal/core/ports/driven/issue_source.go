package driven

import (
	"context"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// IssueSource collects raw issues from an issue tracker.
type IssueSource interface {
	// Collect fetches every issue of target page by page, in request order.
	// It stops after a short page or once maxPages pages were fetched
	// (maxPages == 0 means unbounded), and reports how many pages it
	// requested. Any failed page aborts the run.
	Collect(ctx context.Context, target domain.RepoTarget, perPage, maxPages int) ([]domain.RawIssue, int, error)
}

// PageProgress is reported after every fetched page.
type PageProgress struct {
	Page int

	// LastPage is the final page announced by the API, or 0 if unknown.
	LastPage int

	// Fetched is the number of items on this page.
	Fetched int

	// Collected is the running total.
	Collected int
}
