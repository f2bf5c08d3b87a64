package cryptoutils

import (
	"bytes"
	"math/rand"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaw2StrAndRaw2B(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []byte
		wantStr  string
		wantRawB []byte
	}{
		{
			name:     "basic hex conversion",
			input:    []byte{0x01, 0xAB, 0x0F},
			wantStr:  "01AB0F",
			wantRawB: []byte("01AB0F"),
		},
		{
			name:     "empty input",
			input:    []byte{},
			wantStr:  "",
			wantRawB: []byte{},
		},
	}

	for _, tt := range tests {
		tt := tt // capture range variable.
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			gotStr := Raw2Str(tt.input)
			if gotStr != tt.wantStr {
				t.Errorf("Raw2Str() = %v, want %v.", gotStr, tt.wantStr)
			}

			gotRawB := Raw2B(tt.input)
			if !reflect.DeepEqual(gotRawB, tt.wantRawB) {
				t.Errorf("Raw2B() = %v, want %v.", gotRawB, tt.wantRawB)
			}
		})
	}
}

func TestBytesFromHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{
			name:  "upper case",
			input: "0A0B0C",
			want:  []byte{0x0A, 0x0B, 0x0C},
		},
		{
			name:  "lower case",
			input: "ff00e1",
			want:  []byte{0xFF, 0x00, 0xE1},
		},
		{
			name:  "empty",
			input: "",
			want:  []byte{},
		},
		{
			name:    "odd length",
			input:   "ABC",
			wantErr: true,
		},
		{
			name:    "invalid digit",
			input:   "zz",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt // capture range variable.
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := BytesFromHex(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsFormatError(err), "expected FormatError, got %T", err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestB2Raw(t *testing.T) {
	t.Parallel()

	got, err := B2Raw([]byte("0a0b0c"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x0A, 0x0B, 0x0C}, got)

	_, err = B2Raw([]byte("zz"))
	assert.Error(t, err)
}

func TestHexFromBytesCase(t *testing.T) {
	t.Parallel()

	in := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	assert.Equal(t, "DEADBEEF", HexFromBytes(in, Upper))
	assert.Equal(t, "deadbeef", HexFromBytes(in, Lower))
}

func TestHexRoundTrip(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for n := 0; n < 64; n++ {
		b := make([]byte, n)
		rng.Read(b)

		for _, c := range []HexCase{Upper, Lower} {
			got, err := BytesFromHex(HexFromBytes(b, c))
			require.NoError(t, err)
			if !bytes.Equal(got, b) {
				t.Fatalf("round trip mismatch for %x: got %x", b, got)
			}
		}
	}
}

func TestASCIIFromHex(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "track text",
			input: "3B343131313D32353132",
			want:  ";4111=2512",
		},
		{
			name:  "control characters pass through",
			input: "41000D",
			want:  "A\x00\r",
		},
		{
			name:  "high bytes map to code points",
			input: "E9",
			want:  "é",
		},
		{
			name:    "odd length",
			input:   "414",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ASCIIFromHex(tt.input)
			if tt.wantErr {
				assert.True(t, IsFormatError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeHex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "FFFF9876543210E00001", NormalizeHex("FF FF 98 76 54 32 10 E0 00 01"))
	assert.Equal(t, "0A0B0C", NormalizeHex("0A:0B-0C\n"))
	assert.Equal(t, "", NormalizeHex(" \t "))
}
