package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

// SearchInput is the input schema for the search_sessions tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find sessions"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search_sessions tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput is one agent-mode result: score, excerpts and the
// full paragraph-chunked transcript.
type SearchResultOutput struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Year       int      `json:"year"`
	Score      float64  `json:"score"`
	Excerpt    string   `json:"excerpt"`
	Segments   []string `json:"segments,omitempty"`
	Transcript []string `json:"transcript"`
	Link       string   `json:"link"`
}

// SessionInput is the input schema for the get_session tool.
type SessionInput struct {
	ID string `json:"id" jsonschema:"the session identifier"`
}

// SessionOutput is the output schema for the get_session tool.
type SessionOutput struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Year       int      `json:"year"`
	Transcript []string `json:"transcript"`
	Link       string   `json:"link"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_sessions",
		Description: "Search WWDC session transcripts and return scored matches with full transcripts",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_session",
		Description: "Retrieve one WWDC session's full transcript by identifier",
	}, s.handleGetSession)
}

// handleSearch handles the search_sessions tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	results, err := s.ports.Search.Search(ctx, input.Query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > limit {
		results = results[:limit]
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}

	for i := range results {
		r := &results[i]
		segments := make([]string, len(r.Segments))
		for j, seg := range r.Segments {
			segments[j] = fmt.Sprintf("[%s] %s", seg.Timestamp, seg.Context)
		}
		output.Results[i] = SearchResultOutput{
			ID:         r.ID,
			Title:      r.Title,
			Year:       r.Year,
			Score:      r.Score,
			Excerpt:    r.Excerpt,
			Segments:   segments,
			Transcript: splitTranscript(r.Content),
			Link:       sessionLink(r.Year, r.ID),
		}
	}

	return nil, output, nil
}

// handleGetSession handles the get_session tool invocation.
func (s *Server) handleGetSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SessionInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	detail, err := s.ports.Session.Get(ctx, input.ID)
	if err != nil {
		return nil, SessionOutput{}, err
	}

	return nil, SessionOutput{
		ID:         detail.ID,
		Title:      detail.Title,
		Year:       detail.Year,
		Transcript: splitTranscript(detail.Content),
		Link:       sessionLink(detail.Year, detail.ID),
	}, nil
}

func sessionLink(year int, id string) string {
	return fmt.Sprintf("https://developer.apple.com/videos/play/wwdc%d/%s/", year, id)
}

// splitTranscript chunks a transcript on blank lines for structured output.
func splitTranscript(content string) []string {
	parts := strings.Split(content, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
