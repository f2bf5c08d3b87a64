// Package dukpt implements ANSI X9.24 TDEA DUKPT: IPEK generation, the
// counter driven key derivation and the per-transaction key variants.
package dukpt

import (
	"encoding/binary"
	"fmt"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
)

const (
	KSN_LENGTH   = 10
	KEY_LENGTH   = 16
	COUNTER_BITS = 21
	COUNTER_MASK = 0x1FFFFF

	// register holds the low 8 bytes of the KSN with the counter cleared.
	registerMask = 0xFFFFFFFFFFE00000
)

// KSN is a 10 byte Key Serial Number. The low 21 bits are the transaction counter.
type KSN [KSN_LENGTH]byte

// ParseKSN decodes a 20 character hex KSN. Separators and whitespace are ignored.
func ParseKSN(text string) (KSN, error) {
	var k KSN

	raw, err := cryptoutils.BytesFromHex(cryptoutils.NormalizeHex(text))
	if err != nil {
		return k, err
	}

	return KSNFromBytes(raw)
}

// KSNFromBytes copies a 10 byte serial number.
func KSNFromBytes(raw []byte) (KSN, error) {
	var k KSN
	if len(raw) != KSN_LENGTH {
		return k, &cryptoutils.FormatError{
			Op:  "ksn",
			Msg: fmt.Sprintf("ksn must be %d bytes, got %d", KSN_LENGTH, len(raw)),
		}
	}
	copy(k[:], raw)

	return k, nil
}

// Counter returns the 21 bit transaction counter.
func (k KSN) Counter() uint32 {
	return CounterBits(k[:])
}

// Base returns a copy of the KSN with the transaction counter cleared.
func (k KSN) Base() KSN {
	b := k
	b[7] &^= 0x1F
	b[8] = 0
	b[9] = 0

	return b
}

// WithCounter returns a copy of the KSN carrying the given transaction counter.
func (k KSN) WithCounter(counter uint32) (KSN, error) {
	if counter > COUNTER_MASK {
		return k, &cryptoutils.FormatError{
			Op:  "ksn",
			Msg: fmt.Sprintf("counter %#x exceeds %d bits", counter, COUNTER_BITS),
		}
	}
	b := k.Base()
	b[7] |= byte(counter >> 16)
	b[8] = byte(counter >> 8)
	b[9] = byte(counter)

	return b, nil
}

// String returns the uppercase hex form of the KSN.
func (k KSN) String() string {
	return cryptoutils.Raw2Str(k[:])
}

// register returns the low 8 bytes of the KSN with the counter cleared.
func (k KSN) register() uint64 {
	return binary.BigEndian.Uint64(k[2:]) & registerMask
}

// CounterBits ANDs the bottom three bytes of a KSN with 0x1FFFFF.
func CounterBits(ksn []byte) uint32 {
	if len(ksn) > 3 {
		ksn = ksn[len(ksn)-3:]
	}
	bottom := cryptoutils.ANDPadded(ksn, []byte{0x1F, 0xFF, 0xFF})

	return uint32(bottom[0])<<16 | uint32(bottom[1])<<8 | uint32(bottom[2])
}
