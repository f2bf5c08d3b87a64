// Package hsm holds the key material of the decryption service: the BDK,
// the firmware version reported by diagnostics and the track decryptors.
package hsm

import (
	"errors"
	"fmt"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
	"github.com/andrei-cloud/go_dukpt/pkg/track"
)

// FirmwareVersion is reported by the NC diagnostics command.
const FirmwareVersion = "0007-E000"

// HSM represents the decryption service holding the BDK, firmware version and
// one decryptor per supported AES mode.
type HSM struct {
	BDK             []byte
	FirmwareVersion string
	decryptors      map[track.Mode]*track.Decryptor
}

var errNoBDK = errors.New("base derivation key not configured")

// NewHSM creates a new HSM instance with the given BDK in hex and firmware
// version. ivHex is the CBC initialization vector; empty means all zeros.
func NewHSM(bdkHex, ivHex, firmwareVersion string) (*HSM, error) {
	if bdkHex == "" {
		return nil, errNoBDK
	}

	opts := []track.Option{}
	if ivHex != "" {
		opts = append(opts, track.WithIV(ivHex))
	}

	h := &HSM{FirmwareVersion: firmwareVersion, decryptors: make(map[track.Mode]*track.Decryptor, 2)}
	for _, mode := range []track.Mode{track.ModeECB, track.ModeCBC} {
		d, err := track.NewDecryptor(bdkHex, append(opts, track.WithMode(mode))...)
		if err != nil {
			return nil, fmt.Errorf("invalid bdk: %w", err)
		}
		h.decryptors[mode] = d
		h.BDK = d.BDK
	}

	return h, nil
}

// Decryptor returns the decryptor for mode.
func (h *HSM) Decryptor(mode track.Mode) (*track.Decryptor, error) {
	d, ok := h.decryptors[mode]
	if !ok {
		return nil, &cryptoutils.FormatError{Op: "mode", Msg: fmt.Sprintf("unsupported aes mode %d", mode)}
	}

	return d, nil
}

// Decrypt decrypts an encrypted track under the session key for ksnHex.
func (h *HSM) Decrypt(encryptedHex, ksnHex string, mode track.Mode) (string, error) {
	d, err := h.Decryptor(mode)
	if err != nil {
		return "", err
	}

	return d.Decrypt(encryptedHex, ksnHex)
}

// KeyCheck returns the AES check value of the session key for ksnHex.
func (h *HSM) KeyCheck(ksnHex string) (string, error) {
	return h.decryptors[track.ModeECB].KeyCheck(ksnHex)
}

// CheckValue returns the 16 character TDES check value of the BDK.
func (h *HSM) CheckValue() ([]byte, error) {
	return cryptoutils.KeyCV(cryptoutils.Raw2B(h.BDK), 16)
}
