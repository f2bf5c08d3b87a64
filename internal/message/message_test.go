package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDK(t *testing.T) {
	t.Parallel()

	m, err := NewDK([]byte("0FFFF9876543210E000010020" + "00112233445566778899AABBCCDDEEFF"))
	require.NoError(t, err)

	assert.Equal(t, "DK", m.CommandCode())
	assert.Equal(t, []byte("0"), m.Get("Mode"))
	assert.Equal(t, []byte("FFFF9876543210E00001"), m.Get("KSN"))
	assert.Equal(t, []byte("0020"), m.Get("Length"))
	assert.Len(t, m.Get("Data"), 32)
	assert.Equal(t,
		"DK (Decrypt DUKPT track data): Mode=0 KSN=FFFF9876543210E00001 Length=0020 Data=<32 bytes>",
		m.Trace(),
	)
}

func TestParse(t *testing.T) {
	t.Parallel()

	_, err := Parse("DK", []byte("0FFFF"))
	assert.ErrorIs(t, err, ErrShortMessage)

	m, err := Parse("KC", []byte("FFFF9876543210E00001"))
	require.NoError(t, err)
	assert.Equal(t, "KC (Session key check value): KSN=FFFF9876543210E00001", m.Trace())

	m, err = Parse("NC", nil)
	require.NoError(t, err)
	assert.Equal(t, "NC (Perform diagnostics):", m.Trace())

	_, err = Parse("ZZ", nil)
	assert.ErrorIs(t, err, ErrUnknownMessage)
}
