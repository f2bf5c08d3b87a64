package dukpt

import (
	"testing"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterBits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ksn  string
		want uint32
	}{
		{name: "only counter bits set", ksn: "0000000000000012ABCD", want: 0x12ABCD},
		{name: "all bits set", ksn: "FFFFFFFFFFFFFFFFFFFF", want: 0x1FFFFF},
		{name: "ansi counter one", ksn: "FFFF9876543210E00001", want: 1},
		{name: "counter zero", ksn: "FFFF9876543210E00000", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ksn := mustKSN(t, tt.ksn)
			assert.Equal(t, tt.want, CounterBits(ksn[:]))
			assert.Equal(t, tt.want, ksn.Counter())
		})
	}
}

func TestCounterBitsShortInput(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0x01FF), CounterBits([]byte{0x01, 0xFF}))
}

func TestKSNBaseAndWithCounter(t *testing.T) {
	t.Parallel()

	ksn := mustKSN(t, "FFFF9876543210E00003")
	assert.Equal(t, "FFFF9876543210E00000", ksn.Base().String())
	// the receiver is a value and stays untouched.
	assert.Equal(t, "FFFF9876543210E00003", ksn.String())

	next, err := ksn.WithCounter(0x1FFFFF)
	require.NoError(t, err)
	assert.Equal(t, "FFFF9876543210FFFFFF", next.String())
	assert.Equal(t, uint32(0x1FFFFF), next.Counter())

	_, err = ksn.WithCounter(0x200000)
	assert.True(t, cryptoutils.IsFormatError(err))
}

func TestParseKSN(t *testing.T) {
	t.Parallel()

	ksn, err := ParseKSN("ff ff 98 76 54 32 10 e0 00 01")
	require.NoError(t, err)
	assert.Equal(t, "FFFF9876543210E00001", ksn.String())
	assert.Len(t, ksn[:], KSN_LENGTH)

	_, err = ParseKSN("FFFF9876543210E000")
	assert.True(t, cryptoutils.IsFormatError(err))

	_, err = KSNFromBytes(make([]byte, 12))
	assert.True(t, cryptoutils.IsFormatError(err))
}
