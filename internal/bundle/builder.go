package bundle

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/logger"
)

// minTermLength filters noise words out of the inverted index.
const minTermLength = 3

// Build turns plaintext sessions into an archive: per record it obfuscates
// the title, encrypts the content, and computes the plaintext checksum.
// A session missing a mandatory field is skipped with a warning; an
// encryption failure aborts the whole build, so a partially-encrypted
// archive is never emitted.
func Build(sessions []domain.Session, index map[string][]string, key []byte) (*domain.Archive, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("build key must be %d bytes, got %d: %w", KeySize, len(key), domain.ErrInvalidInput)
	}

	logger.Section("Bundle Build")
	logger.Info("Input sessions: %d", len(sessions))

	a := &domain.Archive{
		FormatVersion: FormatVersion,
		SearchIndex:   index,
	}
	if a.SearchIndex == nil {
		a.SearchIndex = map[string][]string{}
	}

	yearMin, yearMax := 0, 0
	for i := range sessions {
		s := sessions[i]
		if s.Title == "" || s.Content == "" || s.Year == 0 {
			logger.Warn("Skipping session %q: missing mandatory field", s.ID)
			continue
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
			logger.Debug("Minted id %s for %q", s.ID, s.Title)
		}

		encrypted, err := EncryptContent(s.Content, key)
		if err != nil {
			return nil, fmt.Errorf("encrypting session %q: %w", s.ID, err)
		}

		a.Records = append(a.Records, domain.Record{
			ID:       s.ID,
			Title:    domain.ObfuscateTitle(s.Title),
			Year:     s.Year,
			Content:  encrypted,
			Checksum: Checksum(s.Content),
			Excerpt:  buildExcerpt(s.Content),
		})

		if yearMin == 0 || s.Year < yearMin {
			yearMin = s.Year
		}
		if s.Year > yearMax {
			yearMax = s.Year
		}
	}

	// The index may have been built over the unfiltered input. Entries for
	// skipped sessions must not survive, or the emitted archive fails its
	// own load-time integrity check.
	a.SearchIndex = pruneIndex(a.SearchIndex, a.Records)

	a.Metadata = domain.ArchiveMetadata{
		RecordCount: len(a.Records),
		YearMin:     yearMin,
		YearMax:     yearMax,
		BuiltAt:     time.Now().UTC(),
	}

	logger.Info("Built archive: %d records, years %d-%d", len(a.Records), yearMin, yearMax)
	return a, nil
}

// pruneIndex drops index references to ids not present in records. Terms
// left with no references are removed entirely.
func pruneIndex(index map[string][]string, records []domain.Record) map[string][]string {
	ids := make(map[string]bool, len(records))
	for i := range records {
		ids[records[i].ID] = true
	}

	pruned := make(map[string][]string, len(index))
	dropped := 0
	for term, refs := range index {
		var kept []string
		for _, id := range refs {
			if ids[id] {
				kept = append(kept, id)
			} else {
				dropped++
			}
		}
		if len(kept) > 0 {
			pruned[term] = kept
		}
	}
	if dropped > 0 {
		logger.Debug("Pruned %d index references to skipped sessions", dropped)
	}
	return pruned
}

// BuildIndex tokenizes titles and content into the inverted index the
// search engine's index phase consumes. Terms are lowercase tokens of at
// least minTermLength characters.
func BuildIndex(sessions []domain.Session) map[string][]string {
	index := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for _, s := range sessions {
		if s.ID == "" {
			continue
		}
		for _, term := range tokenize(s.Title + " " + s.Content) {
			if seen[term] == nil {
				seen[term] = make(map[string]bool)
			}
			if seen[term][s.ID] {
				continue
			}
			seen[term][s.ID] = true
			index[term] = append(index[term], s.ID)
		}
	}

	return index
}

func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := fields[:0]
	for _, f := range fields {
		if len(f) >= minTermLength {
			terms = append(terms, f)
		}
	}
	return terms
}

// buildExcerpt precomputes a short plaintext snippet so the scan phase can
// match without decrypting. Kept deliberately small: it leaks only the
// opening sentence of a transcript.
func buildExcerpt(content string) string {
	const max = 200
	if idx := strings.Index(content, ". "); idx > 0 && idx+1 <= max {
		return content[:idx+1]
	}
	if len(content) > max {
		return content[:max]
	}
	return content
}

// Encode serializes and gzip-compresses the archive, reporting plaintext
// size, compressed size and ratio through the logger.
func Encode(a *domain.Archive) ([]byte, error) {
	data, err := MarshalArchive(a)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating gzip writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compressing archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("flushing gzip stream: %w", err)
	}

	ratio := 0.0
	if len(data) > 0 {
		ratio = float64(buf.Len()) / float64(len(data))
	}
	logger.Info("Serialized %d bytes, compressed to %d (ratio %.2f)", len(data), buf.Len(), ratio)

	return buf.Bytes(), nil
}
