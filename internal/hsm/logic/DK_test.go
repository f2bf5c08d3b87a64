package logic

import (
	"strings"
	"testing"

	"github.com/andrei-cloud/go_dukpt/internal/errorcodes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKSN       = "FFFF9876543210E00001"
	testTrack     = ";4111111111111111=25121011000012345678?"
	ecbCiphertext = "FF9B3885B8382092717D4CBECECA330CDDD3E2335FFE731252863575424644D1" +
		"070F8F3FC9798D997BEE9926E89DA46C"
	cbcCiphertext = "FF9B3885B8382092717D4CBECECA330CB912C69515E3671535984C11F53B2C84" +
		"9F7A3FB5A552F6459568E92975F65457"
)

func TestExecuteDK(t *testing.T) {
	t.Parallel()

	want := "DL000030" + testTrack + strings.Repeat("\x00", 9)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "ECB", input: "0" + testKSN + "0060" + ecbCiphertext, want: want},
		{name: "CBC", input: "1" + testKSN + "0060" + cbcCiphertext, want: want},
		{name: "LowercaseData", input: "0" + testKSN + "0060" + strings.ToLower(ecbCiphertext), want: want},
		{name: "ShortInput", input: "0" + testKSN, wantErr: errorcodes.Err15},
		{name: "InvalidMode", input: "2" + testKSN + "0060" + ecbCiphertext, wantErr: errorcodes.ErrA7},
		{name: "InvalidKSN", input: "0FFFF9876543210E0000G0060" + ecbCiphertext, wantErr: errorcodes.Err15},
		{name: "InvalidLength", input: "0" + testKSN + "00G0" + ecbCiphertext, wantErr: errorcodes.Err15},
		{name: "LengthMismatch", input: "0" + testKSN + "0040" + ecbCiphertext, wantErr: errorcodes.Err80},
		{name: "UnalignedData", input: "0" + testKSN + "001E" + ecbCiphertext[:30], wantErr: errorcodes.Err80},
		{name: "EmptyData", input: "0" + testKSN + "0000", wantErr: errorcodes.Err80},
		{
			name:    "InvalidCiphertextDigit",
			input:   "0" + testKSN + "0020" + "ZZ" + ecbCiphertext[2:32],
			wantErr: errorcodes.Err15,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := ExecuteDK([]byte(tt.input))
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				assert.Nil(t, out)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestExecuteKC(t *testing.T) {
	t.Parallel()

	out, err := ExecuteKC([]byte(testKSN))
	require.NoError(t, err)
	assert.Equal(t, "KD00B72ECE", string(out))

	out, err = ExecuteKC([]byte("62994900000000000001"))
	require.NoError(t, err)
	assert.Equal(t, "KD0009FF87", string(out))

	_, err = ExecuteKC([]byte(testKSN[:18]))
	assert.Equal(t, errorcodes.Err15, err)

	_, err = ExecuteKC([]byte("XXXX9876543210E00001"))
	assert.Equal(t, errorcodes.Err15, err)
}
