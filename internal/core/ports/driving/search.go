package driving

import (
	"context"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

// SearchService performs full-text search over the session archive.
type SearchService interface {
	// Search runs the query through normalization, synonym expansion, the
	// index phase and the verification scan, then scores and excerpts the
	// matches. The returned slice has no guaranteed order.
	Search(ctx context.Context, query string, opts domain.SearchOptions) ([]domain.SearchResult, error)
}

// SessionService retrieves a single session in full.
type SessionService interface {
	// Get returns the fully-decrypted session, failing loudly with
	// domain.ErrDecryptionFailed when the content cannot be recovered.
	Get(ctx context.Context, id string) (*domain.SessionDetail, error)
}

// StatsService summarises the archive.
type StatsService interface {
	Stats(ctx context.Context) (*domain.ArchiveStats, error)
}
