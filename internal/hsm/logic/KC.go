package logic

import (
	"github.com/andrei-cloud/go_dukpt/internal/errorcodes"
	"github.com/andrei-cloud/go_dukpt/internal/message"
	"github.com/andrei-cloud/go_dukpt/pkg/dukpt"
)

// ExecuteKC returns the check value of the session key for a KSN.
//
// Request: KSN(20H). Response: KD00 + KCV(6H).
func ExecuteKC(input []byte) ([]byte, error) {
	logInfo("KC: Calculating session key check value.")

	msg, err := message.NewKC(input)
	if err != nil || msg.Get("Trailing") != nil {
		return nil, errorcodes.Err15
	}
	ksnHex := string(msg.Get("KSN"))
	if _, err := dukpt.ParseKSN(ksnHex); err != nil {
		return nil, errorcodes.Err15
	}
	if BDKProviderInstance == nil {
		return nil, errorcodes.ErrC1
	}

	kcv, err := BDKProviderInstance.KeyCheck(ksnHex)
	if err != nil {
		logError("KC: key check failed", err)
		return nil, errorcodes.FromError(err)
	}

	return append([]byte("KD00"), kcv...), nil
}
