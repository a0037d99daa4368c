package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/core/services"
)

// Mode selects the output contract.
type Mode int

const (
	// ModeUser renders a short snippet plus a canonical link per result.
	ModeUser Mode = iota

	// ModeAgent renders score, matched excerpts, the paragraph-chunked
	// transcript and the canonical link.
	ModeAgent
)

// RenderOptions configures result rendering.
type RenderOptions struct {
	Mode         Mode
	JSON         bool
	WithSegments bool
	Limit        int
}

// CanonicalLink returns the external link for a session.
func CanonicalLink(year int, id string) string {
	return fmt.Sprintf("https://developer.apple.com/videos/play/wwdc%d/%s/", year, id)
}

// JSON shapes. Struct field order is the deterministic field order.

type userResultJSON struct {
	ID      string  `json:"id"`
	Title   string  `json:"title"`
	Year    int     `json:"year"`
	Score   float64 `json:"score"`
	Snippet string  `json:"snippet"`
	Link    string  `json:"link"`
}

type segmentJSON struct {
	Timestamp string `json:"timestamp"`
	Context   string `json:"context"`
}

func toSegmentJSON(segments []domain.TimeSegment) []segmentJSON {
	out := make([]segmentJSON, len(segments))
	for i, s := range segments {
		out[i] = segmentJSON{Timestamp: s.Timestamp, Context: s.Context}
	}
	return out
}

type agentResultJSON struct {
	ID         string        `json:"id"`
	Title      string        `json:"title"`
	Year       int           `json:"year"`
	Score      float64       `json:"score"`
	Excerpt    string        `json:"excerpt"`
	Segments   []segmentJSON `json:"segments"`
	Transcript []string      `json:"transcript"`
	Link       string        `json:"link"`
}

type resultSetJSON struct {
	Query   string `json:"query"`
	Count   int    `json:"count"`
	Results any    `json:"results"`
}

// RenderResults writes the result set in the selected mode and
// serialization. The engine returns unordered results; sorting by score
// and grouping by year happen here.
func RenderResults(w io.Writer, query string, results []domain.SearchResult, opts RenderOptions) error {
	sorted := make([]domain.SearchResult, len(results))
	copy(sorted, results)
	services.SortByScore(sorted)

	if opts.Limit > 0 && len(sorted) > opts.Limit {
		sorted = sorted[:opts.Limit]
	}

	if opts.JSON {
		return renderJSON(w, query, sorted, opts)
	}
	if opts.Mode == ModeAgent {
		return renderAgentText(w, query, sorted)
	}
	return renderUserText(w, query, sorted, opts.WithSegments)
}

func renderJSON(w io.Writer, query string, results []domain.SearchResult, opts RenderOptions) error {
	set := resultSetJSON{Query: query, Count: len(results)}

	if opts.Mode == ModeAgent {
		out := make([]agentResultJSON, len(results))
		for i, r := range results {
			out[i] = agentResultJSON{
				ID:         r.ID,
				Title:      r.Title,
				Year:       r.Year,
				Score:      r.Score,
				Excerpt:    r.Excerpt,
				Segments:   toSegmentJSON(r.Segments),
				Transcript: chunkParagraphs(r.Content),
				Link:       CanonicalLink(r.Year, r.ID),
			}
		}
		set.Results = out
	} else {
		out := make([]userResultJSON, len(results))
		for i, r := range results {
			out[i] = userResultJSON{
				ID:      r.ID,
				Title:   r.Title,
				Year:    r.Year,
				Score:   r.Score,
				Snippet: r.Excerpt,
				Link:    CanonicalLink(r.Year, r.ID),
			}
		}
		set.Results = out
	}

	data, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderUserText(w io.Writer, query string, results []domain.SearchResult, withSegments bool) error {
	if len(results) == 0 {
		fmt.Fprintf(w, "No sessions matched %q.\n", query)
		return nil
	}

	fmt.Fprintf(w, "%d session(s) for %q:\n\n", len(results), query)

	width := terminalWidth()
	for _, year := range yearsOf(results) {
		fmt.Fprintln(w, yearHeaderStyle.Render(fmt.Sprintf("WWDC %d", year)))
		for _, r := range results {
			if r.Year != year {
				continue
			}
			fmt.Fprintf(w, "  %s %s\n",
				titleStyle.Render(r.Title),
				scoreStyle.Render(fmt.Sprintf("(%.1f)", r.Score)))
			if r.Excerpt != "" {
				fmt.Fprintf(w, "    %s\n", fitWidth(r.Excerpt, width-4))
			}
			if withSegments {
				for _, seg := range r.Segments {
					fmt.Fprintf(w, "    %s %s\n",
						segmentStyle.Render(seg.Timestamp),
						fitWidth(seg.Context, width-12))
				}
			}
			fmt.Fprintf(w, "    %s\n", linkStyle.Render(CanonicalLink(r.Year, r.ID)))
		}
		fmt.Fprintln(w)
	}

	return nil
}

func renderAgentText(w io.Writer, query string, results []domain.SearchResult) error {
	if len(results) == 0 {
		fmt.Fprintf(w, "No sessions matched %q.\n", query)
		return nil
	}

	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(w, strings.Repeat("-", 60))
		}
		fmt.Fprintf(w, "%s (WWDC %d, score %.1f)\n", titleStyle.Render(r.Title), r.Year, r.Score)
		fmt.Fprintf(w, "%s\n\n", linkStyle.Render(CanonicalLink(r.Year, r.ID)))
		fmt.Fprintf(w, "Excerpt: %s\n", r.Excerpt)
		for _, seg := range r.Segments {
			fmt.Fprintf(w, "  [%s] %s\n", seg.Timestamp, seg.Context)
		}
		fmt.Fprintln(w, "\nTranscript:")
		for _, p := range chunkParagraphs(r.Content) {
			fmt.Fprintf(w, "\n%s\n", p)
		}
	}

	return nil
}

// RenderSession writes a single fully-decrypted session.
func RenderSession(w io.Writer, detail *domain.SessionDetail, asJSON bool) error {
	if asJSON {
		out := struct {
			ID         string   `json:"id"`
			Title      string   `json:"title"`
			Year       int      `json:"year"`
			Checksum   string   `json:"checksum"`
			Transcript []string `json:"transcript"`
			Link       string   `json:"link"`
		}{
			ID:         detail.ID,
			Title:      detail.Title,
			Year:       detail.Year,
			Checksum:   detail.Checksum,
			Transcript: chunkParagraphs(detail.Content),
			Link:       CanonicalLink(detail.Year, detail.ID),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling session: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "%s (WWDC %d)\n", titleStyle.Render(detail.Title), detail.Year)
	fmt.Fprintf(w, "%s\n\n", linkStyle.Render(CanonicalLink(detail.Year, detail.ID)))
	for _, p := range chunkParagraphs(detail.Content) {
		fmt.Fprintf(w, "%s\n\n", p)
	}
	return nil
}

// RenderStats writes the archive summary.
func RenderStats(w io.Writer, stats *domain.ArchiveStats, asJSON bool) error {
	if asJSON {
		out := struct {
			RecordCount int         `json:"record_count"`
			YearMin     int         `json:"year_min"`
			YearMax     int         `json:"year_max"`
			PerYear     map[int]int `json:"per_year"`
			IndexTerms  int         `json:"index_terms"`
			BuiltAt     string      `json:"built_at"`
		}{
			RecordCount: stats.RecordCount,
			YearMin:     stats.YearMin,
			YearMax:     stats.YearMax,
			PerYear:     stats.PerYear,
			IndexTerms:  stats.IndexTerms,
			BuiltAt:     stats.Metadata.BuiltAt.Format("2006-01-02T15:04:05Z07:00"),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling stats: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	fmt.Fprintf(w, "Sessions:    %d\n", stats.RecordCount)
	fmt.Fprintf(w, "Years:       %d-%d\n", stats.YearMin, stats.YearMax)
	fmt.Fprintf(w, "Index terms: %d\n", stats.IndexTerms)
	if !stats.Metadata.BuiltAt.IsZero() {
		fmt.Fprintf(w, "Built:       %s\n", stats.Metadata.BuiltAt.Format("2006-01-02 15:04 MST"))
	}
	fmt.Fprintln(w, "\nPer year:")

	years := make([]int, 0, len(stats.PerYear))
	for y := range stats.PerYear {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	for _, y := range years {
		fmt.Fprintf(w, "  %s %d\n", yearHeaderStyle.Render(fmt.Sprintf("%d:", y)), stats.PerYear[y])
	}

	return nil
}

// yearsOf returns the distinct years present, most recent first.
func yearsOf(results []domain.SearchResult) []int {
	seen := make(map[int]bool)
	var years []int
	for _, r := range results {
		if !seen[r.Year] {
			seen[r.Year] = true
			years = append(years, r.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// chunkParagraphs splits a transcript into display paragraphs. Transcripts
// with no blank lines are re-chunked at sentence boundaries.
func chunkParagraphs(content string) []string {
	const targetLen = 600

	parts := strings.Split(content, "\n\n")
	var paragraphs []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) != 1 || len(paragraphs[0]) <= targetLen {
		return paragraphs
	}

	sentences := strings.SplitAfter(paragraphs[0], ". ")
	var chunks []string
	var current strings.Builder
	for _, sentence := range sentences {
		current.WriteString(sentence)
		if current.Len() >= targetLen {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		chunks = append(chunks, s)
	}
	return chunks
}

// fitWidth truncates a line to the given display width.
func fitWidth(s string, width int) string {
	if width < 10 {
		width = 10
	}
	if len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
