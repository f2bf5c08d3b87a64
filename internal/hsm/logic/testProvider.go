package logic

import (
	"fmt"

	"github.com/andrei-cloud/go_dukpt/internal/hsm"
)

// TestBDKHex is the ANSI X9.24 example BDK. It must never be used outside tests.
const TestBDKHex = "0123456789ABCDEFFEDCBA9876543210"

// SetupTestBDKProvider sets BDKProviderInstance to the ANSI test BDK for unit tests.
func SetupTestBDKProvider() error {
	h, err := hsm.NewHSM(TestBDKHex, "", hsm.FirmwareVersion)
	if err != nil {
		return fmt.Errorf("invalid test bdk: %w", err)
	}
	SetBDKProvider(h)

	return nil
}
