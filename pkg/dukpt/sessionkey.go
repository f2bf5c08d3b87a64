package dukpt

import (
	"fmt"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
)

// SessionKey returns the data encryption key for a transaction: the
// data-request variant of the derived key, with each half encrypted under the
// variant key itself.
func SessionKey(bdk []byte, ksn KSN) ([]byte, error) {
	masked, err := DeriveVariant(bdk, ksn, VariantDataRequest)
	if err != nil {
		return nil, err
	}

	left, err := cryptoutils.TripleDESEncryptECB(masked[:8], masked)
	if err != nil {
		return nil, fmt.Errorf("session key left half: %w", err)
	}
	right, err := cryptoutils.TripleDESEncryptECB(masked[8:], masked)
	if err != nil {
		return nil, fmt.Errorf("session key right half: %w", err)
	}

	key := make([]byte, 0, KEY_LENGTH)
	key = append(key, left[:8]...)
	key = append(key, right[:8]...)

	return key, nil
}

// GetKey validates the hex BDK and KSN and returns the session key.
// Malformed input fails before any cipher is run.
func GetKey(bdkHex, ksnHex string) ([]byte, error) {
	bdk, ksn, err := ParseInputs(bdkHex, ksnHex)
	if err != nil {
		return nil, err
	}

	return SessionKey(bdk, ksn)
}

// ParseInputs decodes and validates a hex BDK and KSN pair.
func ParseInputs(bdkHex, ksnHex string) ([]byte, KSN, error) {
	bdk, err := cryptoutils.BytesFromHex(cryptoutils.NormalizeHex(bdkHex))
	if err != nil {
		return nil, KSN{}, fmt.Errorf("bdk: %w", err)
	}
	if bdk, err = NormalizeBDK(bdk); err != nil {
		return nil, KSN{}, err
	}

	ksn, err := ParseKSN(ksnHex)
	if err != nil {
		return nil, KSN{}, fmt.Errorf("ksn: %w", err)
	}

	return bdk, ksn, nil
}
