package message

import (
	"errors"
	"fmt"
)

const ksnHexLen = 20

var (
	ErrShortMessage   = errors.New("message too short")
	ErrUnknownMessage = errors.New("no parser for command")
)

// Parse splits the payload of cmd into fields.
func Parse(cmd string, data []byte) (*BaseMessage, error) {
	switch cmd {
	case "DK":
		return NewDK(data)
	case "KC":
		return NewKC(data)
	case "NC":
		return NewBaseMessage("NC", "Perform diagnostics"), nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownMessage, cmd)
	}
}

// NewDK parses a DK Decrypt Track Data command from payload data.
func NewDK(data []byte) (*BaseMessage, error) {
	if len(data) < 1+ksnHexLen+4 {
		return nil, fmt.Errorf("DK: %w: %d bytes", ErrShortMessage, len(data))
	}

	m := NewBaseMessage("DK", "Decrypt DUKPT track data")
	// Mode (1).
	m.Set("Mode", data[:1])
	data = data[1:]
	// KSN (20H).
	m.Set("KSN", data[:ksnHexLen])
	data = data[ksnHexLen:]
	// Data length in hex characters (4H).
	m.Set("Length", data[:4])
	// Encrypted data.
	m.SetSensitive("Data", data[4:])

	return m, nil
}

// NewKC parses a KC Key Check Value command from payload data.
func NewKC(data []byte) (*BaseMessage, error) {
	if len(data) < ksnHexLen {
		return nil, fmt.Errorf("KC: %w: %d bytes", ErrShortMessage, len(data))
	}

	m := NewBaseMessage("KC", "Session key check value")
	// KSN (20H).
	m.Set("KSN", data[:ksnHexLen])
	if len(data) > ksnHexLen {
		m.Set("Trailing", data[ksnHexLen:])
	}

	return m, nil
}
