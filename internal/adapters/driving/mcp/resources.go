package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

const uriScheme = "joss://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "submissions",
		Name:        "submissions",
		Description: "Summaries of every stored submission",
		MIMEType:    "application/json",
	}, s.handleSubmissionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "submissions/{issueNumber}",
		Name:        "submission",
		Description: "Every extracted field of one submission",
		MIMEType:    "application/json",
	}, s.handleSubmissionResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "runs",
		Name:        "ingest-runs",
		Description: "Recorded ingest runs, most recent first",
		MIMEType:    "application/json",
	}, s.handleRunsResource)
}

func (s *Server) handleSubmissionsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	subs, err := s.ports.Query.Submissions(ctx, domain.SubmissionFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing submissions: %w", err)
	}

	summaries := make([]SubmissionSummary, len(subs))
	for i := range subs {
		summaries[i] = summarize(&subs[i])
	}
	return jsonResource(req.Params.URI, summaries)
}

func (s *Server) handleSubmissionResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	number, ok := extractIssueNumber(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	sub, err := s.ports.Query.Submission(ctx, number)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting submission: %w", err)
	}
	return jsonResource(req.Params.URI, detail(sub))
}

func (s *Server) handleRunsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	runs, err := s.ports.Query.Runs(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	type runInfo struct {
		ID         string `json:"id"`
		Repository string `json:"repository"`
		StartedAt  string `json:"started_at"`
		Pages      int    `json:"pages"`
		Issues     int    `json:"issues"`
		OutputPath string `json:"output_path,omitempty"`
	}

	infos := make([]runInfo, len(runs))
	for i, r := range runs {
		infos[i] = runInfo{
			ID:         r.ID,
			Repository: r.Repository,
			StartedAt:  domain.UnixToISO(r.StartedAt),
			Pages:      r.Pages,
			Issues:     r.Issues,
			OutputPath: r.OutputPath,
		}
	}
	return jsonResource(req.Params.URI, infos)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractIssueNumber parses joss://submissions/{issueNumber}.
func extractIssueNumber(uri string) (int64, bool) {
	const prefix = uriScheme + "submissions/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
