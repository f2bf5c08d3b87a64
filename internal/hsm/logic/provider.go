package logic

import (
	"github.com/andrei-cloud/go_dukpt/internal/hsm"
	"github.com/andrei-cloud/go_dukpt/pkg/track"
)

// BDKProviderInstance backs the command handlers. It is set once before serving.
var BDKProviderInstance *BDKProvider

// BDKProvider exposes the operations that need the BDK without exposing the key.
type BDKProvider struct {
	Decrypt    func(encryptedHex, ksnHex string, mode track.Mode) (string, error)
	KeyCheck   func(ksnHex string) (string, error)
	CheckValue func() ([]byte, error)
}

// SetBDKProvider wires the handlers to h.
func SetBDKProvider(h *hsm.HSM) {
	BDKProviderInstance = &BDKProvider{
		Decrypt:    h.Decrypt,
		KeyCheck:   h.KeyCheck,
		CheckValue: h.CheckValue,
	}
}
