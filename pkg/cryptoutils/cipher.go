package cryptoutils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/des"
	"errors"
	"fmt"
)

var errBlockAlignment = errors.New("data length is not a multiple of the block size")

// DESEncryptECB encrypts data with single DES in ECB mode after PKCS#7 padding.
func DESEncryptECB(data, key []byte) ([]byte, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, cryptoError("des encrypt", err)
	}

	src := padPKCS7(data, DES_BLOCK_SIZE)
	dst := make([]byte, len(src))
	NewECBEncrypter(block).CryptBlocks(dst, src)

	return dst, nil
}

// TripleDESEncryptECB encrypts data with TDES EDE in ECB mode after PKCS#7 padding.
// Double length keys are used as K1K2K1.
func TripleDESEncryptECB(data, key []byte) ([]byte, error) {
	block, err := des.NewTripleDESCipher(PrepareTripleDESKey(key))
	if err != nil {
		return nil, cryptoError("tdes encrypt", err)
	}

	src := padPKCS7(data, DES_BLOCK_SIZE)
	dst := make([]byte, len(src))
	NewECBEncrypter(block).CryptBlocks(dst, src)

	return dst, nil
}

// AESDecryptECB decrypts block-aligned data with AES in ECB mode. Padding is left in place.
func AESDecryptECB(data, key []byte) ([]byte, error) {
	block, err := newAESBlock("aes decrypt", data, key)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, len(data))
	NewECBDecrypter(block).CryptBlocks(dst, data)

	return dst, nil
}

// AESDecryptCBC decrypts block-aligned data with AES in CBC mode. Padding is left in place.
func AESDecryptCBC(data, key, iv []byte) ([]byte, error) {
	block, err := newAESBlock("aes cbc decrypt", data, key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		return nil, cryptoError(
			"aes cbc decrypt",
			fmt.Errorf("iv length %d, want %d", len(iv), aes.BlockSize),
		)
	}

	dst := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(dst, data)

	return dst, nil
}

// AESEncryptECB encrypts block-aligned data with AES in ECB mode.
func AESEncryptECB(data, key []byte) ([]byte, error) {
	block, err := newAESBlock("aes encrypt", data, key)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, len(data))
	NewECBEncrypter(block).CryptBlocks(dst, data)

	return dst, nil
}

// AESEncryptCBC encrypts block-aligned data with AES in CBC mode.
func AESEncryptCBC(data, key, iv []byte) ([]byte, error) {
	block, err := newAESBlock("aes cbc encrypt", data, key)
	if err != nil {
		return nil, err
	}
	if len(iv) != aes.BlockSize {
		return nil, cryptoError(
			"aes cbc encrypt",
			fmt.Errorf("iv length %d, want %d", len(iv), aes.BlockSize),
		)
	}

	dst := make([]byte, len(data))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(dst, data)

	return dst, nil
}

// PadZero pads data with zero bytes up to the next multiple of blockSize.
// Empty input yields one zero block.
func PadZero(data []byte, blockSize int) []byte {
	rem := len(data) % blockSize
	if rem == 0 && len(data) > 0 {
		return data
	}
	out := make([]byte, len(data)+blockSize-rem)
	copy(out, data)

	return out
}

func newAESBlock(op string, data, key []byte) (cipher.Block, error) {
	if len(key) != aes.BlockSize {
		return nil, cryptoError(op, aes.KeySizeError(len(key)))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, cryptoError(op, err)
	}
	if len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return nil, cryptoError(op, fmt.Errorf("%w: %d bytes", errBlockAlignment, len(data)))
	}

	return block, nil
}
