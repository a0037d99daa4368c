package driven

import "github.com/wwdckit/wwdc-cli/internal/core/domain"

// ArchiveLoader reads an archive artifact from disk into memory.
// Record content stays encrypted; decryption is deferred to the
// ContentDecrypter so loading a large archive stays cheap.
type ArchiveLoader interface {
	// Load reads, decompresses and parses the archive at path.
	// Failures map onto domain.ErrDataNotAvailable,
	// domain.ErrCompressionNotSupported and domain.ErrInvalidDataFormat.
	Load(path string) (*domain.Archive, error)
}

// ContentDecrypter recovers the plaintext transcript of a single record.
type ContentDecrypter interface {
	// Open decrypts the record's content. It returns a
	// domain.ErrDecryptionFailed error when the key is absent or
	// authentication fails; callers decide whether that is soft
	// (search candidates) or hard (explicit retrieval).
	Open(rec *domain.Record) (string, error)
}

// SynonymProvider expands a normalized query into its known aliases.
// Expansion is keyed by exact whole-query match and is not transitive.
type SynonymProvider interface {
	// Expand returns the aliases for query, excluding query itself.
	Expand(query string) []string
}
