package domain

import "errors"

// Failure taxonomy for the bundle lifecycle. These are matched with
// errors.Is at the CLI boundary and mapped onto distinct exit codes.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDataNotAvailable indicates the archive is missing or unreadable.
	ErrDataNotAvailable = errors.New("session data not available")

	// ErrInvalidDataFormat indicates an envelope parse failure or an
	// unsupported format version.
	ErrInvalidDataFormat = errors.New("invalid archive format")

	// ErrCompressionNotSupported indicates the archive could not be
	// decompressed.
	ErrCompressionNotSupported = errors.New("archive compression not supported")

	// ErrDecryptionFailed indicates the key is missing, has the wrong
	// length, or authentication of the ciphertext failed.
	ErrDecryptionFailed = errors.New("content decryption failed")

	// ErrRealDataFailed indicates the archive loaded but produced no usable
	// results while real data was mandatory. Placeholder output is only
	// permitted when the caller explicitly opts out of mandatory-real-data
	// mode.
	ErrRealDataFailed = errors.New("no results from session archive")
)
