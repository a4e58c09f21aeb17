package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/NicholasSynovic/joss-dataset/internal/core/domain"
)

// defaultLimit caps search results when the caller sets no limit.
const defaultLimit = 20

// SearchInput is the input schema for the search_submissions tool.
type SearchInput struct {
	Query         string `json:"query,omitempty" jsonschema:"text matched against repository, author and editor"`
	Label         string `json:"label,omitempty" jsonschema:"only submissions carrying this issue label"`
	Reviewer      string `json:"reviewer,omitempty" jsonschema:"only submissions reviewed by this GitHub handle"`
	PublishedOnly bool   `json:"published_only,omitempty" jsonschema:"only submissions with a JOSS paper URL"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// SearchOutput is the output schema for the search_submissions tool.
type SearchOutput struct {
	Submissions []SubmissionSummary `json:"submissions"`
	Count       int                 `json:"count"`
}

// SubmissionSummary is the short form of a submission.
type SubmissionSummary struct {
	IssueNumber int64  `json:"issue_number"`
	Repository  string `json:"repository"`
	Author      string `json:"author"`
	Editor      string `json:"editor,omitempty"`
	JOSSURL     string `json:"joss_url,omitempty"`
	Open        bool   `json:"open"`
}

// GetInput is the input schema for the get_submission tool.
type GetInput struct {
	IssueNumber int64 `json:"issue_number" jsonschema:"the joss-reviews issue number"`
}

// SubmissionDetail is the full form of a submission.
type SubmissionDetail struct {
	IssueNumber      int64    `json:"issue_number"`
	SubmittingAuthor string   `json:"submitting_author"`
	AuthorName       string   `json:"author_name,omitempty"`
	ORCID            string   `json:"orcid,omitempty"`
	Repository       string   `json:"repository"`
	Branch           string   `json:"branch,omitempty"`
	Version          string   `json:"version,omitempty"`
	Editor           string   `json:"editor,omitempty"`
	ManagingEiC      string   `json:"managing_eic,omitempty"`
	Reviewers        []string `json:"reviewers"`
	Archive          string   `json:"archive,omitempty"`
	JOSSURL          string   `json:"joss_url,omitempty"`
	Labels           []string `json:"labels"`
	Opened           string   `json:"opened"`
	Closed           string   `json:"closed,omitempty"`
}

// StatsInput takes no arguments.
type StatsInput struct{}

// StatsOutput is the output schema for the dataset_stats tool.
type StatsOutput struct {
	Submissions int    `json:"submissions"`
	Published   int    `json:"published"`
	Open        int    `json:"open"`
	Editors     int    `json:"editors"`
	Reviewers   int    `json:"reviewers"`
	LastIngest  string `json:"last_ingest,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_submissions",
		Description: "Search stored JOSS review submissions",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_submission",
		Description: "Get every extracted field of one JOSS review submission",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "dataset_stats",
		Description: "Count stored submissions, editors and reviewers",
	}, s.handleStats)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	subs, err := s.ports.Query.Submissions(ctx, domain.SubmissionFilter{
		Text:          input.Query,
		Label:         input.Label,
		Reviewer:      input.Reviewer,
		PublishedOnly: input.PublishedOnly,
		Limit:         limit,
	})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Submissions: make([]SubmissionSummary, len(subs)),
		Count:       len(subs),
	}
	for i := range subs {
		output.Submissions[i] = summarize(&subs[i])
	}
	return nil, output, nil
}

func (s *Server) handleGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetInput,
) (*mcp.CallToolResult, SubmissionDetail, error) {
	sub, err := s.ports.Query.Submission(ctx, input.IssueNumber)
	if err != nil {
		return nil, SubmissionDetail{}, err
	}
	return nil, detail(sub), nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Query.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	out := StatsOutput{
		Submissions: stats.Submissions,
		Published:   stats.Published,
		Open:        stats.Open,
		Editors:     stats.Editors,
		Reviewers:   stats.Reviewers,
	}
	if stats.LastRun != nil {
		out.LastIngest = domain.UnixToISO(stats.LastRun.StartedAt)
	}
	return nil, out, nil
}

func summarize(sub *domain.Submission) SubmissionSummary {
	return SubmissionSummary{
		IssueNumber: sub.IssueNumber,
		Repository:  sub.Repository,
		Author:      sub.SubmittingAuthor,
		Editor:      sub.Editor,
		JOSSURL:     sub.JOSSURL,
		Open:        sub.IsOpen(),
	}
}

func detail(sub *domain.Submission) SubmissionDetail {
	d := SubmissionDetail{
		IssueNumber:      sub.IssueNumber,
		SubmittingAuthor: sub.SubmittingAuthor,
		AuthorName:       sub.AuthorName,
		ORCID:            sub.ORCID,
		Repository:       sub.Repository,
		Branch:           sub.Branch,
		Version:          sub.Version,
		Editor:           sub.Editor,
		ManagingEiC:      sub.ManagingEiC,
		Reviewers:        nonNil(sub.Reviewers),
		Archive:          sub.Archive,
		JOSSURL:          sub.JOSSURL,
		Labels:           nonNil(sub.Labels),
		Opened:           domain.UnixToISO(sub.Opened),
	}
	if !sub.IsOpen() {
		d.Closed = domain.UnixToISO(sub.Closed)
	}
	return d
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
