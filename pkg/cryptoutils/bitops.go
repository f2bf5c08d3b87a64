package cryptoutils

// XORPadded XORs a and b after left-padding the shorter one with zero bytes.
// The result has the length of the longer operand.
func XORPadded(a, b []byte) []byte {
	pa, pb := alignLeft(a, b)
	out := make([]byte, len(pa))
	for i := range pa {
		out[i] = pa[i] ^ pb[i]
	}

	return out
}

// ANDPadded ANDs a and b after left-padding the shorter one with zero bytes.
func ANDPadded(a, b []byte) []byte {
	pa, pb := alignLeft(a, b)
	out := make([]byte, len(pa))
	for i := range pa {
		out[i] = pa[i] & pb[i]
	}

	return out
}

// XORBytes returns a^b for equal-length slices.
func XORBytes(a, b []byte) ([]byte, error) {
	if len(a) != len(b) {
		return nil, formatErrorf("xor", "length mismatch %d vs %d", len(a), len(b))
	}
	out := make([]byte, len(a))
	for i := range a {
		out[i] = a[i] ^ b[i]
	}

	return out, nil
}

// alignLeft pads both operands on the left to a common length so they line up
// at the low-order end.
func alignLeft(a, b []byte) ([]byte, []byte) {
	n := max(len(a), len(b))

	return leftPad(a, n), leftPad(b, n)
}

func leftPad(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)

	return out
}
