package dukpt

import (
	"fmt"
	"strings"

	"github.com/andrei-cloud/go_dukpt/pkg/cryptoutils"
)

// Variant selects the usage mask applied to a derived transaction key.
type Variant int

const (
	VariantNone Variant = iota
	VariantPIN
	VariantMACRequest
	VariantMACResponse
	VariantDataRequest
	VariantDataResponse
)

var variantMasks = map[Variant][]byte{
	VariantNone:         make([]byte, KEY_LENGTH),
	VariantPIN:          {0, 0, 0, 0, 0, 0, 0, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0xFF},
	VariantMACRequest:   {0, 0, 0, 0, 0, 0, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0},
	VariantMACResponse:  {0, 0, 0, 0, 0xFF, 0xFF, 0, 0, 0, 0, 0, 0, 0xFF, 0xFF, 0, 0},
	VariantDataRequest:  {0, 0, 0, 0, 0, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0, 0},
	VariantDataResponse: {0, 0, 0, 0xFF, 0, 0, 0, 0, 0, 0, 0, 0xFF, 0, 0, 0, 0},
}

var variantNames = map[string]Variant{
	"none":          VariantNone,
	"pin":           VariantPIN,
	"mac":           VariantMACRequest,
	"mac-request":   VariantMACRequest,
	"mac-response":  VariantMACResponse,
	"data":          VariantDataRequest,
	"data-request":  VariantDataRequest,
	"data-response": VariantDataResponse,
}

// ParseVariant maps a CLI name such as "pin" or "data-response" to a Variant.
func ParseVariant(name string) (Variant, error) {
	v, ok := variantNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return VariantNone, &cryptoutils.FormatError{
			Op:  "variant",
			Msg: fmt.Sprintf("unknown key variant %q", name),
		}
	}

	return v, nil
}

// String returns the canonical variant name.
func (v Variant) String() string {
	switch v {
	case VariantPIN:
		return "pin"
	case VariantMACRequest:
		return "mac-request"
	case VariantMACResponse:
		return "mac-response"
	case VariantDataRequest:
		return "data-request"
	case VariantDataResponse:
		return "data-response"
	default:
		return "none"
	}
}

// ApplyVariant XORs a 16 byte derived key with the variant mask.
func ApplyVariant(key []byte, v Variant) ([]byte, error) {
	mask, ok := variantMasks[v]
	if !ok {
		return nil, &cryptoutils.FormatError{Op: "variant", Msg: fmt.Sprintf("unknown key variant %d", v)}
	}

	return cryptoutils.XORBytes(key, mask)
}

// DeriveVariant derives the transaction key for ksn and applies variant v.
func DeriveVariant(bdk []byte, ksn KSN, v Variant) ([]byte, error) {
	ipek, err := IPEK(bdk, ksn)
	if err != nil {
		return nil, err
	}
	derived, err := DeriveKey(ksn, ipek)
	if err != nil {
		return nil, err
	}

	return ApplyVariant(derived, v)
}
