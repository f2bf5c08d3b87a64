package dukpt

import (
	"encoding/binary"
	"fmt"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
)

// DeriveKey runs the non-reversible key generation once for every counter bit
// set in ksn, most significant bit first, starting from ipek.
func DeriveKey(ksn KSN, ipek []byte) ([]byte, error) {
	if len(ipek) != KEY_LENGTH {
		return nil, &cryptoutils.FormatError{
			Op:  "derive key",
			Msg: fmt.Sprintf("ipek must be %d bytes, got %d", KEY_LENGTH, len(ipek)),
		}
	}

	counter := uint64(ksn.Counter())
	reg := ksn.register()

	current := make([]byte, KEY_LENGTH)
	copy(current, ipek)

	var ksnReg [8]byte
	for shiftReg := uint64(1) << (COUNTER_BITS - 1); shiftReg > 0; shiftReg >>= 1 {
		if shiftReg&counter == 0 {
			continue
		}
		reg |= shiftReg
		binary.BigEndian.PutUint64(ksnReg[:], reg)

		next, err := generateKey(current, ksnReg[:])
		if err != nil {
			return nil, fmt.Errorf("derive key at shift %#x: %w", shiftReg, err)
		}
		current = next
	}

	return current, nil
}

// generateKey produces the next 16 byte key from key and the 8 byte KSN register.
func generateKey(key, ksnReg []byte) ([]byte, error) {
	maskedKey, err := cryptoutils.XORBytes(key, keyRegisterMask)
	if err != nil {
		return nil, err
	}

	left, err := encryptRegister(maskedKey, ksnReg)
	if err != nil {
		return nil, err
	}
	right, err := encryptRegister(key, ksnReg)
	if err != nil {
		return nil, err
	}

	return append(left, right...), nil
}

// encryptRegister computes bottom ^ DES_top(bottom ^ ksnReg).
func encryptRegister(key, ksnReg []byte) ([]byte, error) {
	top, bottom := key[:8], key[8:]

	x, err := cryptoutils.XORBytes(bottom, ksnReg)
	if err != nil {
		return nil, err
	}
	enc, err := cryptoutils.DESEncryptECB(x, top)
	if err != nil {
		return nil, err
	}

	return cryptoutils.XORBytes(bottom, enc[:8])
}
