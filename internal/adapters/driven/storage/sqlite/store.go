package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/wwdckit/wwdc-cli/internal/bundle"
	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/logger"
)

// Store reads session rows from a plaintext SQLite database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens the database read-only.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Sessions returns every session row.
func (s *Store) Sessions(ctx context.Context) ([]domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, year, content FROM sessions ORDER BY year, id")
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %v: %w", err, domain.ErrDataNotAvailable)
	}
	defer rows.Close()

	var sessions []domain.Session
	for rows.Next() {
		var sess domain.Session
		if err := rows.Scan(&sess.ID, &sess.Title, &sess.Year, &sess.Content); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	logger.Debug("Read %d sessions from %s", len(sessions), s.path)
	return sessions, nil
}

// LoadArchive assembles an in-memory archive from the plaintext rows.
// Content stays unencrypted, checksums are computed on the fly, and the
// inverted index is built the same way the bundle builder builds it, so
// the search engine behaves identically on both data sources.
func (s *Store) LoadArchive(ctx context.Context) (*domain.Archive, error) {
	rows, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	// Filter once, then derive both the index and the records from the same
	// slice, so the index never references a skipped row.
	sessions := rows[:0]
	for _, sess := range rows {
		if sess.ID == "" || sess.Title == "" || sess.Content == "" || sess.Year == 0 {
			logger.Warn("Skipping database row %q: missing mandatory field", sess.ID)
			continue
		}
		sessions = append(sessions, sess)
	}

	a := &domain.Archive{
		FormatVersion: bundle.FormatVersion,
		SearchIndex:   bundle.BuildIndex(sessions),
	}

	yearMin, yearMax := 0, 0
	for _, sess := range sessions {
		a.Records = append(a.Records, domain.Record{
			ID:       sess.ID,
			Title:    sess.Title,
			Year:     sess.Year,
			Content:  sess.Content,
			Checksum: bundle.Checksum(sess.Content),
		})
		if yearMin == 0 || sess.Year < yearMin {
			yearMin = sess.Year
		}
		if sess.Year > yearMax {
			yearMax = sess.Year
		}
	}

	a.Metadata = domain.ArchiveMetadata{
		RecordCount: len(a.Records),
		YearMin:     yearMin,
		YearMax:     yearMax,
		BuiltAt:     time.Now().UTC(),
	}

	return a, nil
}
