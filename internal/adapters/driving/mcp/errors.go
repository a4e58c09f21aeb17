// Package mcp serves the stored JOSS dataset over the Model Context
// Protocol so assistants can query submissions and ingest history.
package mcp

import "errors"

// ErrMissingQueryService is returned when the query service is not provided.
var ErrMissingQueryService = errors.New("mcp: query service is required")
