package logic

import (
	"fmt"

	"github.com/andrei-cloud/go_dukpt/internal/errorcodes"
)

// ExecuteNC processes the NC payload and returns response bytes.
// The payload is the firmware version supplied by the server.
func ExecuteNC(input []byte) ([]byte, error) {
	logInfo("NC: Starting command diagnostics.")

	if len(input) < 9 {
		logDebug(fmt.Sprintf("NC: firmware version too short: %q", input))
		return nil, errorcodes.Err15
	}
	if BDKProviderInstance == nil {
		return nil, errorcodes.ErrC1
	}

	kcv, err := BDKProviderInstance.CheckValue()
	if err != nil {
		logError("NC: Failed to calculate KCV", err)
		return nil, errorcodes.FromError(err)
	}

	// ND00 + KCV (16 chars) + firmware version
	resp := make([]byte, 0, 4+len(kcv)+len(input))
	resp = append(resp, "ND00"...)
	resp = append(resp, kcv...)
	resp = append(resp, input...)

	return resp, nil
}
