// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"encoding/hex"
	"fmt"
)

// DefaultCodeLength is the bit length used across the system unless
// configured otherwise.
const DefaultCodeLength = 256

// Modality names the biometric trait a code was derived from.
type Modality string

const (
	ModalityFace        Modality = "face"
	ModalityFingerprint Modality = "fingerprint"
)

// RequiredModalities returns the modalities a user must be enrolled with to be
// verifiable. A fresh slice is returned on every call.
func RequiredModalities() []Modality {
	return []Modality{ModalityFace, ModalityFingerprint}
}

// Valid reports whether m is a supported modality.
func (m Modality) Valid() bool {
	return m == ModalityFace || m == ModalityFingerprint
}

func (m Modality) String() string {
	return string(m)
}

// ParseModality converts s into a [Modality].
func ParseModality(s string) (Modality, error) {
	m := Modality(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownModality, s)
	}
	return m, nil
}

// Code is an immutable fixed-length bit vector produced from one captured
// sample of one modality. Bits are stored packed, most significant bit first;
// padding bits past Len are always zero.
//
// The zero value is an empty code and is never a valid comparison operand.
type Code struct {
	userID   int64
	modality Modality
	length   int
	bits     []byte
}

// NewCode builds a code of length bits from packed bytes. The input slice is
// copied. Padding bits in the last byte are cleared.
func NewCode(userID int64, modality Modality, length int, packed []byte) (Code, error) {
	if !modality.Valid() {
		return Code{}, fmt.Errorf("%w: %w: %q", ErrInvalidCode, ErrUnknownModality, modality)
	}
	if length <= 0 {
		return Code{}, fmt.Errorf("%w: length must be positive, got %d", ErrInvalidCode, length)
	}
	if want := packedLen(length); len(packed) != want {
		return Code{}, fmt.Errorf("%w: %d bits need %d bytes, got %d", ErrInvalidCode, length, want, len(packed))
	}

	bits := make([]byte, len(packed))
	copy(bits, packed)
	if rem := length % 8; rem != 0 {
		bits[len(bits)-1] &= byte(0xFF) << (8 - rem)
	}

	return Code{
		userID:   userID,
		modality: modality,
		length:   length,
		bits:     bits,
	}, nil
}

// CodeFromBits builds a code from one bool per bit.
func CodeFromBits(userID int64, modality Modality, bits []bool) (Code, error) {
	packed := make([]byte, packedLen(len(bits)))
	for i, set := range bits {
		if set {
			packed[i/8] |= 0x80 >> (i % 8)
		}
	}
	return NewCode(userID, modality, len(bits), packed)
}

// UserID returns the owner of the code; zero for presented codes that are not
// attached to a user yet.
func (c Code) UserID() int64 {
	return c.userID
}

// Modality returns the trait the code was derived from.
func (c Code) Modality() Modality {
	return c.modality
}

// Len returns the number of bits in the code.
func (c Code) Len() int {
	return c.length
}

// IsZero reports whether c is the empty code.
func (c Code) IsZero() bool {
	return c.length == 0
}

// Bit reports the value of bit i. It panics if i is out of range.
func (c Code) Bit(i int) bool {
	if i < 0 || i >= c.length {
		panic(fmt.Sprintf("biometric: bit index %d out of range [0,%d)", i, c.length))
	}
	return c.bits[i/8]&(0x80>>(i%8)) != 0
}

// Bytes returns a copy of the packed bits.
func (c Code) Bytes() []byte {
	out := make([]byte, len(c.bits))
	copy(out, c.bits)
	return out
}

// WithOwner returns a copy of c attached to userID. Codes are never mutated;
// re-enrollment produces new codes.
func (c Code) WithOwner(userID int64) Code {
	c.userID = userID
	c.bits = c.Bytes()
	return c
}

// String returns a short printable form, e.g. "face/256:00ff...".
func (c Code) String() string {
	return fmt.Sprintf("%s/%d:%s", c.modality, c.length, hex.EncodeToString(c.bits))
}

func packedLen(bits int) int {
	return (bits + 7) / 8
}
