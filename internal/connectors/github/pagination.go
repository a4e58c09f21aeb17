package github

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// linkRegex matches Link header entries: <url>; rel="type".
var linkRegex = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

// ParseAllLinks extracts all URLs from a Link header by relationship type.
// Returns a map of rel type to URL.
func ParseAllLinks(linkHeader string) map[string]string {
	links := make(map[string]string)
	if linkHeader == "" {
		return links
	}

	parts := strings.Split(linkHeader, ",")
	for _, part := range parts {
		matches := linkRegex.FindStringSubmatch(strings.TrimSpace(part))
		if len(matches) == 3 {
			links[matches[2]] = matches[1]
		}
	}

	return links
}

// HasNextPage checks if there is a next page available.
func HasNextPage(linkHeader string) bool {
	_, ok := ParseAllLinks(linkHeader)["next"]
	return ok
}

// LastPage returns the page number of the "last" link, or 0 if absent.
// Used only to estimate progress; the listing ends on a short page.
func LastPage(linkHeader string) int {
	last, ok := ParseAllLinks(linkHeader)["last"]
	if !ok {
		return 0
	}
	u, err := url.Parse(last)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil || n < 1 {
		return 0
	}
	return n
}
