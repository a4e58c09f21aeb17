package github

import (
	"net/url"
	"strconv"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// PageCursor is the position of a paginated listing: a 1-indexed page and
// its size. It lives only for the duration of one collection run.
type PageCursor struct {
	Page    int
	PerPage int
}

// NewCursor creates a cursor at page 1 with perPage clamped to 1..100.
func NewCursor(perPage int) PageCursor {
	switch {
	case perPage < 1:
		perPage = 1
	case perPage > domain.MaxPerPage:
		perPage = domain.MaxPerPage
	}
	return PageCursor{Page: 1, PerPage: perPage}
}

// Next returns the cursor for the following page.
func (c PageCursor) Next() PageCursor {
	return PageCursor{Page: c.Page + 1, PerPage: c.PerPage}
}

// Validate checks the cursor is usable.
func (c PageCursor) Validate() error {
	if c.Page < 1 || c.PerPage < 1 || c.PerPage > domain.MaxPerPage {
		return ErrInvalidCursor
	}
	return nil
}

// IsLastPage reports whether a page of n items ends the listing.
func (c PageCursor) IsLastPage(n int) bool {
	return n < c.PerPage
}

// Params returns the page query parameters.
func (c PageCursor) Params() url.Values {
	return url.Values{
		"page":     []string{strconv.Itoa(c.Page)},
		"per_page": []string{strconv.Itoa(c.PerPage)},
	}
}
