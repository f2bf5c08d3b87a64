// Package track decrypts DUKPT protected magnetic stripe track data.
package track

import (
	"crypto/aes"
	"fmt"
	"strings"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
	"github.com/andrei-cloud/go_dukpt/pkg/dukpt"
)

// Mode selects the AES block mode used for the track payload.
type Mode int

const (
	ModeECB Mode = iota
	ModeCBC
)

// ParseMode accepts "ecb" or "cbc" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ecb":
		return ModeECB, nil
	case "cbc":
		return ModeCBC, nil
	default:
		return ModeECB, &cryptoutils.FormatError{Op: "mode", Msg: fmt.Sprintf("unknown aes mode %q", s)}
	}
}

func (m Mode) String() string {
	if m == ModeCBC {
		return "cbc"
	}

	return "ecb"
}

// Stage names the pipeline step that failed.
type Stage string

const (
	StageKey     Stage = "key"
	StageDecrypt Stage = "decrypt"
	StageDecode  Stage = "decode"
)

// DecryptionError wraps the first failure of the decryption pipeline.
type DecryptionError struct {
	Stage Stage
	Err   error
}

func (e *DecryptionError) Error() string {
	return fmt.Sprintf("track decryption failed at %s stage: %v", e.Stage, e.Err)
}

func (e *DecryptionError) Unwrap() error { return e.Err }

// Decryptor holds the BDK and cipher settings. It is read-only after
// construction and may be shared between goroutines.
type Decryptor struct {
	BDK  []byte
	Mode Mode
	IV   []byte
}

// Option configures a Decryptor.
type Option func(*Decryptor) error

// WithMode selects ECB or CBC.
func WithMode(m Mode) Option {
	return func(d *Decryptor) error {
		if m != ModeECB && m != ModeCBC {
			return &cryptoutils.FormatError{Op: "mode", Msg: fmt.Sprintf("unknown aes mode %d", m)}
		}
		d.Mode = m

		return nil
	}
}

// WithIV sets the CBC initialization vector from 32 hex characters.
func WithIV(ivHex string) Option {
	return func(d *Decryptor) error {
		iv, err := cryptoutils.BytesFromHex(cryptoutils.NormalizeHex(ivHex))
		if err != nil {
			return fmt.Errorf("iv: %w", err)
		}
		if len(iv) != aes.BlockSize {
			return &cryptoutils.FormatError{
				Op:  "iv",
				Msg: fmt.Sprintf("iv must be %d bytes, got %d", aes.BlockSize, len(iv)),
			}
		}
		d.IV = iv

		return nil
	}
}

// NewDecryptor validates bdkHex and applies opts. The default is ECB with a zero IV.
func NewDecryptor(bdkHex string, opts ...Option) (*Decryptor, error) {
	bdk, err := cryptoutils.BytesFromHex(cryptoutils.NormalizeHex(bdkHex))
	if err != nil {
		return nil, fmt.Errorf("bdk: %w", err)
	}
	if bdk, err = dukpt.NormalizeBDK(bdk); err != nil {
		return nil, fmt.Errorf("bdk: %w", err)
	}

	d := &Decryptor{BDK: bdk, Mode: ModeECB, IV: make([]byte, aes.BlockSize)}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// SessionKey returns the AES key for ksnHex.
func (d *Decryptor) SessionKey(ksnHex string) ([]byte, error) {
	ksn, err := dukpt.ParseKSN(ksnHex)
	if err != nil {
		return nil, err
	}

	return dukpt.SessionKey(d.BDK, ksn)
}

// Decrypt returns the plaintext track for the encrypted payload, one
// character per decrypted byte. Padding is left in place.
func (d *Decryptor) Decrypt(encryptedHex, ksnHex string) (string, error) {
	data, err := cryptoutils.BytesFromHex(cryptoutils.NormalizeHex(encryptedHex))
	if err != nil {
		return "", &DecryptionError{Stage: StageDecrypt, Err: err}
	}

	key, err := d.SessionKey(ksnHex)
	if err != nil {
		return "", &DecryptionError{Stage: StageKey, Err: err}
	}

	var raw []byte
	switch d.Mode {
	case ModeCBC:
		raw, err = cryptoutils.AESDecryptCBC(data, key, d.IV)
	default:
		raw, err = cryptoutils.AESDecryptECB(data, key)
	}
	if err != nil {
		return "", &DecryptionError{Stage: StageDecrypt, Err: err}
	}

	plain, err := cryptoutils.ASCIIFromHex(cryptoutils.HexFromBytes(raw, cryptoutils.Upper))
	if err != nil {
		return "", &DecryptionError{Stage: StageDecode, Err: err}
	}

	return plain, nil
}

// Encrypt is the inverse of Decrypt. The plaintext is zero padded to the AES
// block size. Readers do this on the device; the method exists for fixtures
// and the CLI helper.
func (d *Decryptor) Encrypt(plain, ksnHex string) (string, error) {
	key, err := d.SessionKey(ksnHex)
	if err != nil {
		return "", &DecryptionError{Stage: StageKey, Err: err}
	}

	data := cryptoutils.PadZero([]byte(plain), aes.BlockSize)

	var enc []byte
	switch d.Mode {
	case ModeCBC:
		enc, err = cryptoutils.AESEncryptCBC(data, key, d.IV)
	default:
		enc, err = cryptoutils.AESEncryptECB(data, key)
	}
	if err != nil {
		return "", &DecryptionError{Stage: StageDecrypt, Err: err}
	}

	return cryptoutils.Raw2Str(enc), nil
}

// KeyCheck returns the AES-CMAC check value of the session key for ksnHex.
func (d *Decryptor) KeyCheck(ksnHex string) (string, error) {
	key, err := d.SessionKey(ksnHex)
	if err != nil {
		return "", &DecryptionError{Stage: StageKey, Err: err}
	}

	return cryptoutils.AESKeyCV(key)
}

// DecryptTrack2 decrypts an AES-ECB track-2 payload with the session key
// derived from bdkHex and ksnHex.
func DecryptTrack2(encryptedHex, ksnHex, bdkHex string) (string, error) {
	d, err := NewDecryptor(bdkHex)
	if err != nil {
		return "", &DecryptionError{Stage: StageKey, Err: err}
	}

	return d.Decrypt(encryptedHex, ksnHex)
}
