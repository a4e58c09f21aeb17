package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
	"github.com/NicholasSynovic/joss-dataset/internal/core/ports/driven"
	"github.com/NicholasSynovic/joss-dataset/internal/logger"
)

// Ensure Paginator implements the interface.
var _ driven.IssueSource = (*Paginator)(nil)

// Requester performs a single API request. *Client satisfies it.
type Requester interface {
	Request(ctx context.Context, method, endpoint string, params url.Values) (*Response, error)
}

// Paginator walks the issues listing of one repository page by page.
type Paginator struct {
	client    Requester
	direction domain.Direction
	progress  func(driven.PageProgress)
}

// NewPaginator creates a paginator ordering by creation time in direction.
func NewPaginator(client Requester, direction domain.Direction) *Paginator {
	if !direction.IsValid() {
		direction = domain.DefaultDirection
	}
	return &Paginator{client: client, direction: direction}
}

// OnPage registers a callback invoked after every fetched page.
func (p *Paginator) OnPage(fn func(driven.PageProgress)) {
	p.progress = fn
}

// issuesEndpoint returns the issues listing path for target.
func issuesEndpoint(target domain.RepoTarget) string {
	return fmt.Sprintf("repos/%s/%s/issues", url.PathEscape(target.Owner), url.PathEscape(target.Repo))
}

// Collect fetches issues (and pull requests, which share the endpoint)
// starting at page 1. It stops after a page shorter than perPage, or once
// maxPages pages have been fetched when maxPages > 0. Pages are accumulated
// in request order. It returns the number of pages requested. Any failed
// page aborts the run.
func (p *Paginator) Collect(
	ctx context.Context, target domain.RepoTarget, perPage, maxPages int,
) ([]domain.RawIssue, int, error) {
	cursor := NewCursor(perPage)
	endpoint := issuesEndpoint(target)

	var all []domain.RawIssue
	lastPage := 0

	logger.Info("Starting collection for %s.", target.FullName())

	for {
		if err := cursor.Validate(); err != nil {
			return nil, 0, err
		}

		page, resp, err := p.fetchPage(ctx, endpoint, cursor)
		if err != nil {
			return nil, 0, err
		}
		if lp := LastPage(resp.Header.Get("Link")); lp > 0 {
			lastPage = lp
		}

		all = append(all, page...)

		logger.Info("Fetched page %d (%s). %s", cursor.Page, target.FullName(), resp.RateLimit.Status())
		logger.Info("Page %d: fetched=%d total_collected=%d", cursor.Page, len(page), len(all))
		if p.progress != nil {
			p.progress(driven.PageProgress{
				Page:      cursor.Page,
				LastPage:  lastPage,
				Fetched:   len(page),
				Collected: len(all),
			})
		}

		if cursor.IsLastPage(len(page)) {
			break
		}
		if maxPages > 0 && cursor.Page >= maxPages {
			logger.Info("Reached max-pages=%d; stopping early.", maxPages)
			break
		}

		cursor = cursor.Next()
	}

	logger.Info("Done. pages=%d total_issues=%d", cursor.Page, len(all))
	return all, cursor.Page, nil
}

// fetchPage requests one page and checks the payload is a JSON array.
func (p *Paginator) fetchPage(
	ctx context.Context, endpoint string, cursor PageCursor,
) ([]domain.RawIssue, *Response, error) {
	params := cursor.Params()
	params.Set("state", "all")
	params.Set("sort", "created")
	params.Set("direction", p.direction.String())

	resp, err := p.client.Request(ctx, http.MethodGet, endpoint, params)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch page %d: %w", cursor.Page, err)
	}

	page, err := domain.RawIssues(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch page %d: %w", cursor.Page, &RemoteAPIError{
			StatusCode: resp.StatusCode,
			Method:     http.MethodGet,
			URL:        resp.URL,
			Body:       truncate(string(resp.Body), MaxErrorBody),
			Err:        fmt.Errorf("%w: expected a JSON array", ErrUnexpectedPayload),
		})
	}
	return page, resp, nil
}
