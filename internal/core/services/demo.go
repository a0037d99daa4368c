package services

import "github.com/wwdckit/wwdc-cli/internal/core/domain"

// DemoResults returns canned placeholder results. It exists solely for
// the explicit --demo opt-in: no production path may substitute these for
// real data, and callers get them only after a real search has already
// failed and the user asked for a fallback.
func DemoResults(query string) []domain.SearchResult {
	return []domain.SearchResult{
		{
			ID:      "demo-10001",
			Title:   "Placeholder session (demo mode)",
			Year:    2021,
			Score:   1.0,
			Excerpt: "This is placeholder output for query \"" + query + "\"; no archive was searched.",
			Content: "Demo mode produced this entry because no real session data was available. " +
				"Install the session bundle to search actual transcripts.",
		},
	}
}
