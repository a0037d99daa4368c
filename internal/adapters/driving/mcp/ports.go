package mcp

import (
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search provides scored transcript search.
	Search driving.SearchService

	// Session provides full-transcript retrieval by id.
	Session driving.SessionService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Session == nil {
		return ErrMissingSessionService
	}
	return nil
}
