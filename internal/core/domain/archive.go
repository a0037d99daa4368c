package domain

import "time"

// Archive is the unit of distribution: every session record plus the
// precomputed inverted index, parsed from the compressed envelope.
// An archive is immutable for the lifetime of a release; clients only read it.
type Archive struct {
	// FormatVersion is the envelope format version. Only one value is
	// supported at a time; anything else is a parse failure.
	FormatVersion int

	// Records holds every session in the archive. Order carries no meaning;
	// retrieval order is governed by the search index and the scorer.
	Records []Record

	// SearchIndex maps a normalized term to the IDs of records containing it.
	// Every ID referenced here must exist in Records.
	SearchIndex map[string][]string

	// Metadata is informational only and never consulted for correctness.
	Metadata ArchiveMetadata
}

// ArchiveMetadata describes the archive build, for display and diagnostics.
type ArchiveMetadata struct {
	RecordCount int
	YearMin     int
	YearMax     int
	BuiltAt     time.Time
}

// Record is one conference session as stored in the archive.
type Record struct {
	// ID is the stable opaque identifier, unique within the archive.
	ID string

	// Title is the obfuscated session title. Always present and always
	// displayable (after deobfuscation), even when decryption is unavailable.
	Title string

	// Year is the conference year, used for grouping and recency scoring.
	Year int

	// Content is the authenticated-encrypted transcript:
	// base64(nonce || ciphertext || tag). Plaintext archives built from the
	// dev database carry the transcript directly.
	Content string

	// Checksum is the SHA-256 hex digest of the plaintext transcript,
	// computed at build time for corruption detection independent of the
	// authentication tag.
	Checksum string

	// Excerpt is an optional precomputed snippet, searchable without
	// decrypting the content.
	Excerpt string
}

// RecordByID returns the record with the given ID, or nil.
func (a *Archive) RecordByID(id string) *Record {
	for i := range a.Records {
		if a.Records[i].ID == id {
			return &a.Records[i]
		}
	}
	return nil
}

// MaxYear returns the most recent year among the records. Metadata is
// never consulted; it is informational only.
func (a *Archive) MaxYear() int {
	max := 0
	for i := range a.Records {
		if a.Records[i].Year > max {
			max = a.Records[i].Year
		}
	}
	return max
}

// Session is a plaintext session record, the input to the build pipeline
// and the row shape of the dev database.
type Session struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Year    int    `json:"year"`
	Content string `json:"content"`
}
