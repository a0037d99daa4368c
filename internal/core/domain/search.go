package domain

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results to present. Zero means the
	// default. The engine itself returns every match unordered; the cap is
	// applied by the presentation layer after sorting, so it never decides
	// which matches rank highest.
	Limit int
}

// SearchResult represents a single search hit with its decrypted content.
// The engine returns results in no guaranteed order; sorting and year
// grouping happen at presentation time.
type SearchResult struct {
	// ID is the matched record's identifier.
	ID string

	// Title is the session title with obfuscation reversed.
	Title string

	// Year is the conference year.
	Year int

	// Score is the heuristic relevance score, never below 1.0.
	Score float64

	// Excerpt is the first sentence of the transcript containing the query,
	// or the opening of the transcript when none does.
	Excerpt string

	// Segments are timestamped transcript fragments whose surrounding text
	// mentions the query.
	Segments []TimeSegment

	// Content is the full decrypted transcript. Results never carry
	// undecryptable content; such candidates are dropped by the engine.
	Content string
}

// TimeSegment is a timestamp-like token with its surrounding context.
type TimeSegment struct {
	Timestamp string
	Context   string
}

// SessionDetail is a single fully-decrypted session, the product of
// explicit retrieval by ID.
type SessionDetail struct {
	ID       string
	Title    string
	Year     int
	Content  string
	Checksum string
}

// ArchiveStats summarises the archive without decrypting anything.
type ArchiveStats struct {
	RecordCount int
	YearMin     int
	YearMax     int
	PerYear     map[int]int
	IndexTerms  int
	Metadata    ArchiveMetadata
}
