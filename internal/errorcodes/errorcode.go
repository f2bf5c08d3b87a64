// Package errorcodes defines the service errors using a structured type.
// HSMError holds the two-character wire code and human-readable description.
package errorcodes

import (
	"errors"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
	"github.com/andrei-cloud/go_dukpt/pkg/tags"
)

// Predefined error instances.
var (
	Err00 = HSMError{"00", "No error"}
	Err15 = HSMError{
		"15",
		"Invalid input data (invalid format, invalid characters, or not enough data provided)",
	}
	Err41 = HSMError{"41", "Internal hardware/software error"}
	Err42 = HSMError{"42", "DES failure"}
	Err68 = HSMError{"68", "Command has been disabled"}
	Err80 = HSMError{"80", "Data length error"}
	ErrA7 = HSMError{"A7", "Invalid algorithm"}
	ErrC1 = HSMError{"C1", "Base derivation key not configured"}
	ErrC2 = HSMError{"C2", "Required tag missing"}
)

// HSMError represents a service error with its code and description.
type HSMError struct {
	Code        string // two-character error code
	Description string // human-readable description
}

// Error implements the Go error interface: "<Code>: <Description>".
func (e HSMError) Error() string {
	return e.Code + ": " + e.Description
}

// CodeOnly returns only the error code (e.g., "68"), for embedding in responses.
func (e HSMError) CodeOnly() string {
	return e.Code
}

// FromError maps an error from the crypto packages to its wire code.
// Unrecognized errors map to Err41.
func FromError(err error) HSMError {
	var he HSMError
	switch {
	case err == nil:
		return Err00
	case errors.As(err, &he):
		return he
	case tags.IsMissingData(err):
		return ErrC2
	case cryptoutils.IsFormatError(err):
		return Err15
	case cryptoutils.IsCryptoError(err):
		return Err42
	default:
		return Err41
	}
}
