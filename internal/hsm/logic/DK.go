// Package logic provides business logic for the service commands.
package logic

import (
	"fmt"
	"strconv"

	"github.com/andrei-cloud/go_dukpt/internal/errorcodes"
	"github.com/andrei-cloud/go_dukpt/internal/message"
	"github.com/andrei-cloud/go_dukpt/pkg/dukpt"
	"github.com/andrei-cloud/go_dukpt/pkg/track"
)

const (
	aesBlockHex = 32
	maxDataHex  = 0xFFFF
)

// ExecuteDK decrypts DUKPT protected track data.
//
// Request:  mode(1: '0' ECB, '1' CBC) + KSN(20H) + length(4H) + ciphertext(H).
// Response: DL00 + length(4H) + plaintext.
func ExecuteDK(input []byte) ([]byte, error) {
	logInfo("DK: Starting track decryption.")

	msg, err := message.NewDK(input)
	if err != nil {
		logDebug(fmt.Sprintf("DK: %v", err))
		return nil, errorcodes.Err15
	}
	logDebug(msg.Trace())

	var mode track.Mode
	switch msg.Get("Mode")[0] {
	case '0':
		mode = track.ModeECB
	case '1':
		mode = track.ModeCBC
	default:
		return nil, errorcodes.ErrA7
	}

	ksnHex := string(msg.Get("KSN"))
	if _, err := dukpt.ParseKSN(ksnHex); err != nil {
		return nil, errorcodes.Err15
	}

	dataLen, err := strconv.ParseUint(string(msg.Get("Length")), 16, 16)
	if err != nil {
		return nil, errorcodes.Err15
	}
	data := msg.Get("Data")
	if int(dataLen) != len(data) || dataLen == 0 || dataLen%aesBlockHex != 0 {
		logDebug(fmt.Sprintf("DK: declared %d hex chars, got %d", dataLen, len(data)))
		return nil, errorcodes.Err80
	}

	if BDKProviderInstance == nil {
		return nil, errorcodes.ErrC1
	}

	plain, err := BDKProviderInstance.Decrypt(string(data), ksnHex, mode)
	if err != nil {
		logError("DK: decryption failed", err)
		return nil, errorcodes.FromError(err)
	}

	// one byte per character, as decrypted
	out := make([]byte, 0, len(plain))
	for _, r := range plain {
		out = append(out, byte(r))
	}
	if len(out) > maxDataHex {
		return nil, errorcodes.Err80
	}

	resp := make([]byte, 0, 8+len(out))
	resp = append(resp, "DL00"...)
	resp = append(resp, fmt.Sprintf("%04X", len(out))...)
	resp = append(resp, out...)

	return resp, nil
}
