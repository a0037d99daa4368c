package bundle

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

// KeyEnvVar is the development override for the bundle key, a 64-character
// hex string. Release builds inject the key at link time instead:
//
//	go build -ldflags "-X github.com/wwdckit/wwdc-cli/internal/bundle.embeddedKeyHex=<64 hex chars>"
//
// A release build must never ship with a placeholder key.
const KeyEnvVar = "WWDC_BUNDLE_KEY"

// embeddedKeyHex is set via -ldflags for release builds. Empty by default.
var embeddedKeyHex string

// ParseKey decodes a hex-encoded key and enforces the fixed width.
func ParseKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("key is not valid hex: %w", domain.ErrInvalidInput)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("key must be %d bytes, got %d: %w", KeySize, len(key), domain.ErrInvalidInput)
	}
	return key, nil
}

// ResolveKey returns the bundle key from the environment or the embedded
// link-time value, in that order. A configured key of the wrong shape is
// an error; no key at all returns (nil, nil) so callers can fall back to
// title-only behaviour where that is defined.
func ResolveKey() ([]byte, error) {
	if env := os.Getenv(KeyEnvVar); env != "" {
		return ParseKey(env)
	}
	if embeddedKeyHex != "" {
		return ParseKey(embeddedKeyHex)
	}
	return nil, nil
}
