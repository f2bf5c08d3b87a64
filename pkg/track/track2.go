package track

import (
	"errors"
	"fmt"
	"strings"
)

const (
	startSentinel = ';'
	endSentinel   = '?'
)

var ErrTrackFormat = errors.New("malformed track 2 data")

// Track2 holds the fields of an ISO/IEC 7813 track 2.
type Track2 struct {
	PAN           string
	Expiry        string // YYMM
	ServiceCode   string
	Discretionary string
}

// TrimPadding drops the zero bytes the reader appended to fill the last AES block.
func TrimPadding(plain string) string {
	return strings.TrimRight(plain, "\x00")
}

// ParseTrack2 splits a decrypted track into its fields. Sentinels, block
// padding and anything after the end sentinel are ignored. Both '=' and the
// 'D' separator used in track 2 equivalent data are accepted.
func ParseTrack2(plain string) (Track2, error) {
	s := TrimPadding(plain)
	s = strings.TrimPrefix(s, string(startSentinel))
	if i := strings.IndexByte(s, endSentinel); i >= 0 {
		s = s[:i]
	}

	sep := strings.IndexAny(s, "=D")
	if sep < 0 {
		return Track2{}, fmt.Errorf("%w: field separator not found", ErrTrackFormat)
	}

	pan, rest := s[:sep], s[sep+1:]
	if len(pan) < 12 || len(pan) > 19 || !isDigits(pan) {
		return Track2{}, fmt.Errorf("%w: invalid PAN length %d", ErrTrackFormat, len(pan))
	}
	if len(rest) < 7 || !isDigits(rest[:7]) {
		return Track2{}, fmt.Errorf("%w: expiry and service code missing", ErrTrackFormat)
	}

	return Track2{
		PAN:           pan,
		Expiry:        rest[:4],
		ServiceCode:   rest[4:7],
		Discretionary: rest[7:],
	}, nil
}

// MaskedPAN keeps the first six and last four digits.
func (t Track2) MaskedPAN() string {
	return MaskPAN(t.PAN)
}

// MaskPAN keeps the first six and last four digits of pan.
func MaskPAN(pan string) string {
	if len(pan) <= 10 {
		return strings.Repeat("*", len(pan))
	}

	return pan[:6] + strings.Repeat("*", len(pan)-10) + pan[len(pan)-4:]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}
