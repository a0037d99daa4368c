package services

import (
	"context"
	"fmt"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driving"
)

// Ensure StatsService implements the interface.
var _ driving.StatsService = (*StatsService)(nil)

// StatsService summarises the archive from titles and metadata alone,
// so it works without the bundle key.
type StatsService struct {
	archive *domain.Archive
}

// NewStatsService creates an archive statistics service.
func NewStatsService(archive *domain.Archive) *StatsService {
	return &StatsService{archive: archive}
}

// Stats computes record counts, the year histogram and index size.
func (s *StatsService) Stats(_ context.Context) (*domain.ArchiveStats, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("stats: %w", domain.ErrDataNotAvailable)
	}

	stats := &domain.ArchiveStats{
		RecordCount: len(s.archive.Records),
		PerYear:     make(map[int]int),
		IndexTerms:  len(s.archive.SearchIndex),
		Metadata:    s.archive.Metadata,
	}

	for i := range s.archive.Records {
		year := s.archive.Records[i].Year
		stats.PerYear[year]++
		if stats.YearMin == 0 || year < stats.YearMin {
			stats.YearMin = year
		}
		if year > stats.YearMax {
			stats.YearMax = year
		}
	}

	return stats, nil
}
