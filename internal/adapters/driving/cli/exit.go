package cli

import (
	"errors"

	"github.com/wwdckit/wwdc-cli/internal/core/domain"
)

// Process exit codes. Code 5 (bundle.ExitMissingBundle) is reserved for
// the missing-archive case and is produced by the locator check alone.
const (
	ExitOK            = 0
	ExitError         = 1
	ExitInvalidFormat = 2
	ExitDecryption    = 3
	ExitNoResults     = 4
)

// exitCode maps a command error onto its exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, domain.ErrInvalidDataFormat),
		errors.Is(err, domain.ErrCompressionNotSupported),
		errors.Is(err, domain.ErrDataNotAvailable):
		return ExitInvalidFormat
	case errors.Is(err, domain.ErrDecryptionFailed):
		return ExitDecryption
	case errors.Is(err, domain.ErrRealDataFailed):
		return ExitNoResults
	default:
		return ExitError
	}
}
