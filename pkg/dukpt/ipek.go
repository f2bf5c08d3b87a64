package dukpt

import (
	"bytes"
	"fmt"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
)

var (
	// keyRegisterMask produces the left half of every derived key and of the IPEK.
	keyRegisterMask = []byte{
		0xC0, 0xC0, 0xC0, 0xC0, 0x00, 0x00, 0x00, 0x00,
		0xC0, 0xC0, 0xC0, 0xC0, 0x00, 0x00, 0x00, 0x00,
	}
	// ksnCounterMask clears the 21 counter bits of a full KSN.
	ksnCounterMask = []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xE0, 0x00, 0x00}
)

// IPEK derives the Initial PIN Encryption Key for the device identified by ksn.
func IPEK(bdk []byte, ksn KSN) ([]byte, error) {
	bdk, err := NormalizeBDK(bdk)
	if err != nil {
		return nil, err
	}

	maskedKSN := cryptoutils.ANDPadded(ksn[:], ksnCounterMask)

	left, err := cryptoutils.TripleDESEncryptECB(maskedKSN, bdk)
	if err != nil {
		return nil, fmt.Errorf("ipek left half: %w", err)
	}

	xorKey, err := cryptoutils.XORBytes(bdk, keyRegisterMask)
	if err != nil {
		return nil, err
	}
	right, err := cryptoutils.TripleDESEncryptECB(maskedKSN, xorKey)
	if err != nil {
		return nil, fmt.Errorf("ipek right half: %w", err)
	}

	ipek := make([]byte, 0, KEY_LENGTH)
	ipek = append(ipek, left[:8]...)
	ipek = append(ipek, right[:8]...)

	return ipek, nil
}

// NormalizeBDK accepts a double length BDK, or a triple length one in K1K2K1 form.
// A triple length BDK is returned reduced to its 16 byte form.
func NormalizeBDK(bdk []byte) ([]byte, error) {
	switch len(bdk) {
	case cryptoutils.KEY_LENGTH_DOUBLE:
		return bdk, nil
	case cryptoutils.KEY_LENGTH_TRIPLE:
		if bytes.Equal(bdk[16:], bdk[:8]) {
			return bdk[:16], nil
		}

		return nil, &cryptoutils.FormatError{
			Op:  "bdk",
			Msg: "triple length bdk must repeat its first component (K1K2K1)",
		}
	default:
		return nil, &cryptoutils.FormatError{
			Op:  "bdk",
			Msg: fmt.Sprintf("bdk must be 16 bytes, got %d", len(bdk)),
		}
	}
}
