package cryptoutils

import (
	"crypto/aes"
	"crypto/des"
	"errors"
	"fmt"
)

// FormatError reports malformed input: bad hex, wrong operand or key length.
type FormatError struct {
	Op  string // operation that rejected the input
	Msg string // human-readable reason
	Err error  // underlying decoder error, if any
}

// CryptoOperationError reports a cipher primitive that rejected its inputs.
type CryptoOperationError struct {
	Op     string
	Status int // key size reported by the cipher package, 0 when not applicable
	Err    error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	}

	return e.Op + ": " + e.Msg
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *CryptoOperationError) Error() string {
	return fmt.Sprintf("%s: cipher operation failed: %v", e.Op, e.Err)
}

func (e *CryptoOperationError) Unwrap() error { return e.Err }

func formatErrorf(op, format string, args ...any) error {
	return &FormatError{Op: op, Msg: fmt.Sprintf(format, args...)}
}

// cryptoError wraps a cipher package error and lifts key size errors into Status.
func cryptoError(op string, err error) error {
	ce := &CryptoOperationError{Op: op, Err: err}

	var desSize des.KeySizeError
	if errors.As(err, &desSize) {
		ce.Status = int(desSize)
	}
	var aesSize aes.KeySizeError
	if errors.As(err, &aesSize) {
		ce.Status = int(aesSize)
	}

	return ce
}

// IsFormatError reports whether err carries a FormatError.
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsCryptoError reports whether err carries a CryptoOperationError.
func IsCryptoError(err error) bool {
	var ce *CryptoOperationError
	return errors.As(err, &ce)
}
