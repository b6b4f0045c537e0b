// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import "math/bits"

// Hamming returns the number of bit positions at which a and b differ.
//
// Both codes must have the same length; otherwise a *DimensionMismatchError
// is returned. The result does not depend on argument order and is zero for
// identical codes.
func Hamming(a, b Code) (int, error) {
	if a.length != b.length || a.length == 0 {
		return 0, &DimensionMismatchError{Left: a.length, Right: b.length}
	}

	d := 0
	for i := range a.bits {
		d += bits.OnesCount8(a.bits[i] ^ b.bits[i])
	}
	return d, nil
}
