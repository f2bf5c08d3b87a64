package cryptoutils

import (
	"encoding/hex"
	"strings"
	"unicode"
)

// HexCase selects the digit case produced by HexFromBytes.
type HexCase int

const (
	Upper HexCase = iota
	Lower
)

// BytesFromHex decodes a hex string in strict pairs, most significant nibble first.
func BytesFromHex(text string) ([]byte, error) {
	if len(text)%2 != 0 {
		return nil, formatErrorf("hex decode", "odd length %d", len(text))
	}

	raw, err := hex.DecodeString(text)
	if err != nil {
		return nil, &FormatError{Op: "hex decode", Msg: "invalid hex digit", Err: err}
	}

	return raw, nil
}

// B2Raw decodes hex-encoded bytes to raw bytes.
func B2Raw(data []byte) ([]byte, error) {
	return BytesFromHex(string(data))
}

// HexFromBytes encodes b as two hex characters per byte without separators.
func HexFromBytes(b []byte, c HexCase) string {
	s := hex.EncodeToString(b)
	if c == Upper {
		return strings.ToUpper(s)
	}

	return s
}

// Raw2Str converts raw binary data to an uppercase hex string.
func Raw2Str(raw []byte) string {
	return HexFromBytes(raw, Upper)
}

// Raw2B returns the uppercase hex representation of raw data as bytes.
func Raw2B(raw []byte) []byte {
	return []byte(Raw2Str(raw))
}

// ASCIIFromHex maps every decoded byte to the character with the same code point.
// Bytes outside the printable range are kept as they are.
func ASCIIFromHex(text string) (string, error) {
	raw, err := BytesFromHex(text)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for _, b := range raw {
		sb.WriteRune(rune(b))
	}

	return sb.String(), nil
}

// NormalizeHex strips whitespace and the ':' and '-' separators readers put between bytes.
func NormalizeHex(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == ':' || r == '-' {
			return -1
		}

		return r
	}, text)
}
