package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driven"
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driving"
	"github.com/wwdckit/wwdc-cli/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// scanWorkers bounds the decrypt fan-out in the verification phase.
// Per-record decryption is independent, so parallelism cannot change the
// match set, only the wall time.
const scanWorkers = 4

// Relevance heuristic weights.
const (
	titleMatchBonus      = 20.0
	contentOccurrenceVal = 2.5
	recencyCurrentBonus  = 10.0
	recencyPrevBonus     = 5.0
	recencyOlderBonus    = 2.0
	introBonus           = 8.0
	advancedBonus        = 12.0
	scoreFloor           = 1.0
)

var introKeywords = []string{"introduction", "introducing", "meet ", "getting started", "basics", "fundamentals"}

var advancedKeywords = []string{"advanced", "deep dive", "in depth", "under the hood", "beyond"}

var timestampPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)

// SearchService runs full-text queries against one loaded archive.
type SearchService struct {
	archive   *domain.Archive
	decrypter driven.ContentDecrypter
	synonyms  driven.SynonymProvider
	titles    map[string]string // record id -> deobfuscated lowercase title
	maxYear   int
}

// NewSearchService creates a search service over the given archive.
// The synonym provider is optional (nil disables expansion).
func NewSearchService(
	archive *domain.Archive,
	decrypter driven.ContentDecrypter,
	synonyms driven.SynonymProvider,
) *SearchService {
	s := &SearchService{
		archive:   archive,
		decrypter: decrypter,
		synonyms:  synonyms,
	}
	if archive != nil {
		s.titles = make(map[string]string, len(archive.Records))
		for i := range archive.Records {
			rec := &archive.Records[i]
			s.titles[rec.ID] = strings.ToLower(domain.DeobfuscateTitle(rec.Title))
		}
		s.maxYear = archive.MaxYear()
	}
	return s
}

// Search implements the query pipeline: normalize, expand synonyms, union
// index hits, verify by scanning titles, excerpts and decrypted content,
// then score and excerpt every surviving match.
func (s *SearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) ([]domain.SearchResult, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("search: %w", domain.ErrDataNotAvailable)
	}

	logger.Section("Search Execution")

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		logger.Debug("Empty query, returning no results")
		return []domain.SearchResult{}, nil
	}

	terms := []string{normalized}
	if s.synonyms != nil {
		terms = append(terms, s.synonyms.Expand(normalized)...)
	}
	logger.Debug("Query %q expanded to %d terms", normalized, len(terms))

	// Index phase: coarse candidate selection from the precomputed index.
	matched := make(map[string]bool)
	for _, term := range terms {
		for _, id := range s.archive.SearchIndex[term] {
			matched[id] = true
		}
	}
	logger.Debug("Index phase: %d candidates", len(matched))

	// Scan phase, cheap part: titles and precomputed excerpts need no key.
	for i := range s.archive.Records {
		rec := &s.archive.Records[i]
		if matched[rec.ID] {
			continue
		}
		if containsAny(s.titles[rec.ID], terms) || containsAny(strings.ToLower(rec.Excerpt), terms) {
			matched[rec.ID] = true
		}
	}
	logger.Debug("Title/excerpt scan: %d candidates", len(matched))

	// Scan phase, expensive part: decrypt the remaining records and test
	// their content. Decryption failures here only exclude the record from
	// content matching; it may still have matched above.
	plaintexts := s.contentScan(ctx, terms, matched)
	logger.Debug("Content scan: %d candidates, %d transcripts decrypted", len(matched), len(plaintexts))

	// Every result must carry decrypted content. Candidates that cannot be
	// decrypted are dropped rather than surfaced half-empty.
	results := make([]domain.SearchResult, 0, len(matched))
	for i := range s.archive.Records {
		rec := &s.archive.Records[i]
		if !matched[rec.ID] {
			continue
		}
		content, ok := plaintexts[rec.ID]
		if !ok {
			var err error
			content, err = s.decrypter.Open(rec)
			if err != nil {
				logger.Warn("Dropping candidate %s: %v", rec.ID, err)
				continue
			}
		}

		results = append(results, domain.SearchResult{
			ID:       rec.ID,
			Title:    domain.DeobfuscateTitle(rec.Title),
			Year:     rec.Year,
			Score:    s.score(rec, content, normalized),
			Excerpt:  extractExcerpt(content, terms),
			Segments: extractTimeSegments(content, normalized),
			Content:  content,
		})
	}

	logger.Info("Search %q: %d results", normalized, len(results))
	return results, nil
}

// contentScan decrypts records not yet matched and tests their transcripts
// for the search terms, using a bounded worker pool. It returns every
// plaintext it recovered, keyed by record id, so matches are not
// decrypted twice.
func (s *SearchService) contentScan(
	ctx context.Context, terms []string, matched map[string]bool,
) map[string]string {
	type scanHit struct {
		id        string
		plaintext string
		match     bool
	}

	jobs := make(chan *domain.Record)
	hits := make(chan scanHit)

	var wg sync.WaitGroup
	for w := 0; w < scanWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for rec := range jobs {
				plaintext, err := s.decrypter.Open(rec)
				if err != nil {
					continue
				}
				hits <- scanHit{
					id:        rec.ID,
					plaintext: plaintext,
					match:     containsAny(strings.ToLower(plaintext), terms),
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range s.archive.Records {
			rec := &s.archive.Records[i]
			if matched[rec.ID] {
				continue
			}
			select {
			case jobs <- rec:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(hits)
	}()

	plaintexts := make(map[string]string)
	for hit := range hits {
		plaintexts[hit.id] = hit.plaintext
		if hit.match {
			matched[hit.id] = true
		}
	}
	return plaintexts
}

// score computes the deterministic relevance heuristic.
func (s *SearchService) score(rec *domain.Record, content, query string) float64 {
	title := s.titles[rec.ID]
	score := 0.0

	if strings.Contains(title, query) {
		score += titleMatchBonus
	}

	score += contentOccurrenceVal * float64(strings.Count(strings.ToLower(content), query))

	// Recency: a title mentioning the archive's most recent year gets the
	// top bonus, with smaller bonuses for the two prior year bands.
	if s.maxYear > 0 {
		switch {
		case strings.Contains(title, strconv.Itoa(s.maxYear)):
			score += recencyCurrentBonus
		case strings.Contains(title, strconv.Itoa(s.maxYear-1)):
			score += recencyPrevBonus
		case strings.Contains(title, strconv.Itoa(s.maxYear-2)):
			score += recencyOlderBonus
		}
	}

	for _, kw := range introKeywords {
		if strings.Contains(title, kw) {
			score += introBonus
			break
		}
	}
	for _, kw := range advancedKeywords {
		if strings.Contains(title, kw) {
			score += advancedBonus
			break
		}
	}

	if score < scoreFloor {
		score = scoreFloor
	}
	return score
}

// extractExcerpt returns the first sentence containing a search term,
// capped at 150 characters, falling back to the transcript opening.
func extractExcerpt(content string, terms []string) string {
	const maxLen = 150

	sentences := strings.Split(content, ". ")
	for _, sentence := range sentences {
		if containsAny(strings.ToLower(sentence), terms) {
			return truncate(strings.TrimSpace(sentence), maxLen)
		}
	}

	return truncate(strings.TrimSpace(content), maxLen)
}

// extractTimeSegments finds timestamp-like tokens whose surrounding text
// mentions the query. At most four segments, each capped at 80 characters.
func extractTimeSegments(content, query string) []domain.TimeSegment {
	const (
		maxSegments = 4
		before      = 50
		after       = 100
		maxLen      = 80
	)

	var segments []domain.TimeSegment
	for _, loc := range timestampPattern.FindAllStringIndex(content, -1) {
		if len(segments) >= maxSegments {
			break
		}

		start := loc[0] - before
		if start < 0 {
			start = 0
		}
		end := loc[1] + after
		if end > len(content) {
			end = len(content)
		}

		context := strings.Join(strings.Fields(content[start:end]), " ")
		if !strings.Contains(strings.ToLower(context), query) {
			continue
		}

		segments = append(segments, domain.TimeSegment{
			Timestamp: content[loc[0]:loc[1]],
			Context:   truncate(context, maxLen),
		})
	}
	return segments
}

// SortByScore orders results by descending score, breaking ties by id so
// presentation is stable. The engine itself returns unordered results;
// this is a helper for formatters.
func SortByScore(results []domain.SearchResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
}

func containsAny(haystack string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(haystack, t) {
			return true
		}
	}
	return false
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
