package services

import (
	"context"
	"fmt"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driven"
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driving"
	"github.com/wwdckit/wwdc-cli/internal/logger"
)

// Ensure SessionService implements the interface.
var _ driving.SessionService = (*SessionService)(nil)

// SessionService retrieves single sessions by identifier. Unlike search
// candidates, an explicitly requested session must decrypt: failure here
// is loud, not a silent exclusion.
type SessionService struct {
	archive   *domain.Archive
	decrypter driven.ContentDecrypter
}

// NewSessionService creates a session retrieval service.
func NewSessionService(archive *domain.Archive, decrypter driven.ContentDecrypter) *SessionService {
	return &SessionService{archive: archive, decrypter: decrypter}
}

// Get returns the fully-decrypted session with the given id.
func (s *SessionService) Get(_ context.Context, id string) (*domain.SessionDetail, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("get session: %w", domain.ErrDataNotAvailable)
	}

	rec := s.archive.RecordByID(id)
	if rec == nil {
		return nil, fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}

	content, err := s.decrypter.Open(rec)
	if err != nil {
		return nil, fmt.Errorf("session %q: %w", id, err)
	}

	logger.Debug("Retrieved session %s (%d bytes)", id, len(content))

	return &domain.SessionDetail{
		ID:       rec.ID,
		Title:    domain.DeobfuscateTitle(rec.Title),
		Year:     rec.Year,
		Content:  content,
		Checksum: rec.Checksum,
	}, nil
}
