// Package cryptoutils provides the hex, bit and block cipher helpers the DUKPT
// derivation and track decryption are built from.
package cryptoutils

import (
	"bytes"
	"crypto/cipher"
	"fmt"
)

const (
	KEY_LENGTH_SINGLE = 8
	KEY_LENGTH_DOUBLE = 16
	KEY_LENGTH_TRIPLE = 24
	AES_BLOCK_SIZE    = 16
	DES_BLOCK_SIZE    = 8
)

// ecb wraps a cipher.Block to provide ECB mode.
type ecb struct{ b cipher.Block }

type ecbEncrypter ecb

type ecbDecrypter ecb

// PrepareTripleDESKey extends a single or double length key to triple length
// by repeating its prefix (K1K1K1 or K1K2K1).
func PrepareTripleDESKey(key []byte) []byte {
	var key24 []byte
	switch len(key) {
	case KEY_LENGTH_SINGLE:
		key24 = make([]byte, KEY_LENGTH_TRIPLE)
		copy(key24, key)
		copy(key24[KEY_LENGTH_SINGLE:], key)
		copy(key24[KEY_LENGTH_DOUBLE:], key)
	case KEY_LENGTH_DOUBLE:
		key24 = make([]byte, KEY_LENGTH_TRIPLE)
		copy(key24, key)
		copy(key24[KEY_LENGTH_DOUBLE:], key[:KEY_LENGTH_SINGLE])
	default:
		key24 = key
	}

	return key24
}

// padPKCS7 appends PKCS#7 padding. Block-aligned input gets a full extra block.
func padPKCS7(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data), len(data)+n)
	copy(out, data)

	return append(out, bytes.Repeat([]byte{byte(n)}, n)...)
}

// NewECBEncrypter returns a cipher.BlockMode for ECB encryption.
func NewECBEncrypter(b cipher.Block) cipher.BlockMode {
	return (*ecbEncrypter)(&ecb{b: b})
}

func (x *ecbEncrypter) BlockSize() int { return x.b.BlockSize() }

func (x *ecbEncrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.BlockSize() != 0 {
		panic(fmt.Sprintf(
			"cryptoutils: input length %d not a multiple of block size %d",
			len(src),
			x.BlockSize(),
		))
	}
	for len(src) > 0 {
		x.b.Encrypt(dst[:x.BlockSize()], src[:x.BlockSize()])
		src = src[x.BlockSize():]
		dst = dst[x.BlockSize():]
	}
}

// NewECBDecrypter returns a cipher.BlockMode for ECB decryption.
func NewECBDecrypter(b cipher.Block) cipher.BlockMode {
	return (*ecbDecrypter)(&ecb{b: b})
}

func (x *ecbDecrypter) BlockSize() int { return x.b.BlockSize() }

func (x *ecbDecrypter) CryptBlocks(dst, src []byte) {
	if len(src)%x.BlockSize() != 0 {
		panic(fmt.Sprintf(
			"cryptoutils: input length %d not a multiple of block size %d",
			len(src),
			x.BlockSize(),
		))
	}
	for len(src) > 0 {
		x.b.Decrypt(dst[:x.BlockSize()], src[:x.BlockSize()])
		src = src[x.BlockSize():]
		dst = dst[x.BlockSize():]
	}
}
