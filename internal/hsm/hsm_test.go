package hsm

import (
	"strings"
	"testing"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
	"github.com/andrei-cloud/go_dukpt/pkg/track"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBDK = "0123456789ABCDEFFEDCBA9876543210"

func TestNewHSM(t *testing.T) {
	t.Parallel()

	h, err := NewHSM(testBDK, strings.Repeat("0", 32), FirmwareVersion)
	require.NoError(t, err)

	kcv, err := h.CheckValue()
	require.NoError(t, err)
	assert.Equal(t, "08D7B4FB629D0885", string(kcv))

	sessionKCV, err := h.KeyCheck("FFFF9876543210E00001")
	require.NoError(t, err)
	assert.Equal(t, "B72ECE", sessionKCV)

	_, err = h.Decryptor(track.Mode(9))
	assert.Error(t, err)
}

func TestNewHSMErrors(t *testing.T) {
	t.Parallel()

	_, err := NewHSM("", "", FirmwareVersion)
	assert.ErrorIs(t, err, errNoBDK)

	_, err = NewHSM("0123", "", FirmwareVersion)
	assert.Error(t, err)

	_, err = NewHSM(testBDK, "00", FirmwareVersion)
	assert.Error(t, err)

	h, err := NewHSM(testBDK+"1111111111111111", "", FirmwareVersion)
	require.Error(t, err)
	assert.Nil(t, h)
	assert.True(t, cryptoutils.IsFormatError(err))
}

func TestNewHSMTripleLengthBDK(t *testing.T) {
	t.Parallel()

	h, err := NewHSM(testBDK+testBDK[:16], "", FirmwareVersion)
	require.NoError(t, err)
	assert.Len(t, h.BDK, 16)

	kcv, err := h.CheckValue()
	require.NoError(t, err)
	assert.Equal(t, "08D7B4FB629D0885", string(kcv))
}
