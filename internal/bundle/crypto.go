package bundle

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

// KeySize is the required symmetric key width in bytes. Any other length
// is rejected outright, never truncated or padded.
const KeySize = 32

// EncryptContent seals plaintext under key with AES-256-GCM and returns
// base64(nonce || ciphertext || tag) for embedding in the JSON envelope.
func EncryptContent(plaintext string, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("key must be %d bytes, got %d: %w", KeySize, len(key), domain.ErrInvalidInput)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("creating GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// DecryptContent reverses EncryptContent. A missing or wrong-length key,
// undecodable transport encoding, or a failed authentication tag all map
// onto domain.ErrDecryptionFailed.
func DecryptContent(encoded string, key []byte) (string, error) {
	if len(key) != KeySize {
		return "", fmt.Errorf("key must be %d bytes, got %d: %w", KeySize, len(key), domain.ErrDecryptionFailed)
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding content: %w", domain.ErrDecryptionFailed)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", domain.ErrDecryptionFailed)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("creating GCM: %w", domain.ErrDecryptionFailed)
	}

	if len(sealed) < gcm.NonceSize() {
		return "", fmt.Errorf("content shorter than nonce: %w", domain.ErrDecryptionFailed)
	}

	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("authenticating content: %w", domain.ErrDecryptionFailed)
	}

	return string(plaintext), nil
}

// Checksum returns the SHA-256 hex digest of the plaintext transcript.
// SHA-256 keeps checksums reproducible across platforms and
// reimplementations, unlike a runtime-internal hash.
func Checksum(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
