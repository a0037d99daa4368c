package bundle

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
	"github.com/wwdckit/wwdc-cli/internal/core/ports/driven"
	"github.com/wwdckit/wwdc-cli/internal/logger"
)

// Ensure the adapters implement their ports.
var (
	_ driven.ArchiveLoader    = (*Loader)(nil)
	_ driven.ContentDecrypter = (*GCMDecrypter)(nil)
	_ driven.ContentDecrypter = (*PlainDecrypter)(nil)
	_ driven.ContentDecrypter = (*NoKeyDecrypter)(nil)
)

// Loader reads an encrypted bundle from disk. Content decryption is not
// part of loading; it happens per record, only for search candidates.
type Loader struct{}

// NewLoader creates a bundle loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads raw bytes, decompresses them, and parses the envelope.
func (l *Loader) Load(path string) (*domain.Archive, error) {
	logger.Section("Archive Load")
	logger.Debug("Reading %s", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %v: %w", path, err, domain.ErrDataNotAvailable)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("opening gzip stream: %v: %w", err, domain.ErrCompressionNotSupported)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("decompressing archive: %v: %w", err, domain.ErrCompressionNotSupported)
	}

	a, err := UnmarshalArchive(data)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded archive: %d records, %d index terms (%d -> %d bytes)",
		len(a.Records), len(a.SearchIndex), len(raw), len(data))
	return a, nil
}

// GCMDecrypter opens encrypted record content under the shared key and
// verifies the plaintext checksum. A checksum mismatch is reported through
// the logger but does not discard the authenticated plaintext.
type GCMDecrypter struct {
	key []byte
}

// NewGCMDecrypter creates a decrypter for the given 32-byte key.
func NewGCMDecrypter(key []byte) (*GCMDecrypter, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d: %w", KeySize, len(key), domain.ErrInvalidInput)
	}
	return &GCMDecrypter{key: key}, nil
}

// Open decrypts one record's transcript.
func (d *GCMDecrypter) Open(rec *domain.Record) (string, error) {
	plaintext, err := DecryptContent(rec.Content, d.key)
	if err != nil {
		return "", fmt.Errorf("record %s: %w", rec.ID, err)
	}
	if rec.Checksum != "" && Checksum(plaintext) != rec.Checksum {
		logger.Warn("Checksum mismatch for record %s", rec.ID)
	}
	return plaintext, nil
}

// PlainDecrypter passes content through unchanged. It backs archives built
// from the plaintext development database, where nothing is encrypted.
type PlainDecrypter struct{}

// Open returns the stored content as-is.
func (PlainDecrypter) Open(rec *domain.Record) (string, error) {
	return rec.Content, nil
}

// NoKeyDecrypter is used when no bundle key is configured. Every open
// fails with domain.ErrDecryptionFailed, which the search engine treats as
// candidate exclusion and explicit retrieval treats as a hard error.
type NoKeyDecrypter struct{}

// Open always fails.
func (NoKeyDecrypter) Open(rec *domain.Record) (string, error) {
	return "", fmt.Errorf("record %s: no bundle key configured: %w", rec.ID, domain.ErrDecryptionFailed)
}
