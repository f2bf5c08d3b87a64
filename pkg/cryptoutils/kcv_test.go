package cryptoutils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyCV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		keyHex  string
		wantKCV string
		wantErr bool
	}{
		{
			name:    "single length key",
			keyHex:  "0123456789ABCDEF",
			wantKCV: "D5D44F",
		},
		{
			name:    "double length key",
			keyHex:  "0123456789ABCDEF FEDCBA9876543210",
			wantKCV: "08D7B4",
		},
		{
			name:    "triple length key",
			keyHex:  "0123456789ABCDEF FEDCBA9876543210 0011223344556677",
			wantKCV: "CBE6A7",
		},
		{
			name:    "invalid key length",
			keyHex:  "0123456789ABCDEF00",
			wantErr: true,
		},
		{
			name:    "empty key",
			keyHex:  "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := KeyCV([]byte(strings.ReplaceAll(tt.keyHex, " ", "")), 6)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKCV, string(got))
		})
	}
}

func TestKeyCVLength(t *testing.T) {
	t.Parallel()

	key := []byte("0123456789ABCDEFFEDCBA9876543210")

	got, err := KeyCV(key, 16)
	require.NoError(t, err)
	assert.Equal(t, "08D7B4FB629D0885", string(got))

	for _, n := range []int{-1, 0, 33} {
		got, err := KeyCV(key, n)
		assert.Nil(t, got, n)
		assert.True(t, IsFormatError(err), n)
	}
}

func TestAESKeyCV(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  string
		want string
	}{
		{key: "448D3F076D8304036A55A3D7E0055A78", want: "B72ECE"},
		{key: "FBF5D012AF55B7E71EFF5AE0E1B9FCA5", want: "09FF87"},
	}

	for _, tt := range tests {
		got, err := AESKeyCV(mustHex(t, tt.key))
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := AESKeyCV(make([]byte, 10))
	assert.True(t, IsCryptoError(err))
}
