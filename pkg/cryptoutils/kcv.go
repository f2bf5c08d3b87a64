package cryptoutils

import (
	"crypto/aes"
	"crypto/des"
	"fmt"

	"github.com/aead/cmac"
)

const AES_KCV_LENGTH = 3

// KeyCV computes the TDES key check value of a hex encoded key: the leading
// kcvLen hex characters of the key encrypting a zero block.
func KeyCV(keyHex []byte, kcvLen int) ([]byte, error) {
	rawKey, err := B2Raw(keyHex)
	if err != nil {
		return nil, err
	}

	switch len(rawKey) {
	case KEY_LENGTH_SINGLE, KEY_LENGTH_DOUBLE, KEY_LENGTH_TRIPLE:
	default:
		return nil, formatErrorf("keycv", "invalid key length %d", len(rawKey))
	}

	block, err := des.NewTripleDESCipher(PrepareTripleDESKey(rawKey))
	if err != nil {
		return nil, cryptoError("keycv", err)
	}

	// Encrypt two blocks of zeros (16 bytes total)
	zero := make([]byte, block.BlockSize()*2)
	dst := make([]byte, len(zero))
	NewECBEncrypter(block).CryptBlocks(dst, zero)
	hv := Raw2B(dst)
	if kcvLen <= 0 {
		return nil, formatErrorf("keycv", "kcv_length %d must be positive", kcvLen)
	}
	if kcvLen > len(hv) {
		return nil, formatErrorf("keycv", "kcv_length %d too large", kcvLen)
	}

	return hv[:kcvLen], nil
}

// AESKeyCV returns the CMAC based check value of an AES key: the first three
// bytes of CMAC over a zero block, as uppercase hex.
func AESKeyCV(key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", cryptoError("aes kcv", err)
	}

	mac, err := cmac.New(block)
	if err != nil {
		return "", cryptoError("aes kcv", fmt.Errorf("failed to create CMAC: %w", err))
	}

	mac.Write(make([]byte, aes.BlockSize))

	return Raw2Str(mac.Sum(nil)[:AES_KCV_LENGTH]), nil
}
