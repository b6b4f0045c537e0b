// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

const codeEnvelopeVersion = 1

// codeEnvelope is the persisted form of a [Code].
type codeEnvelope struct {
	Version  uint8    `cbor:"1,keyasint"`
	Modality Modality `cbor:"2,keyasint"`
	Length   int      `cbor:"3,keyasint"`
	Bits     []byte   `cbor:"4,keyasint"`
}

var codeEncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

// MarshalCode encodes c as a deterministic CBOR envelope. The owner is not
// part of the envelope; it is stored alongside by the persistence layer.
func MarshalCode(c Code) ([]byte, error) {
	if c.IsZero() {
		return nil, fmt.Errorf("%w: empty code", ErrInvalidCode)
	}
	return codeEncMode.Marshal(codeEnvelope{
		Version:  codeEnvelopeVersion,
		Modality: c.modality,
		Length:   c.length,
		Bits:     c.bits,
	})
}

// UnmarshalCode decodes an envelope produced by [MarshalCode] and attaches it
// to userID.
func UnmarshalCode(userID int64, data []byte) (Code, error) {
	var env codeEnvelope
	if err := cbor.Unmarshal(data, &env); err != nil {
		return Code{}, fmt.Errorf("%w: decoding envelope: %w", ErrInvalidCode, err)
	}
	if env.Version != codeEnvelopeVersion {
		return Code{}, fmt.Errorf("%w: unsupported envelope version %d", ErrInvalidCode, env.Version)
	}
	return NewCode(userID, env.Modality, env.Length, env.Bits)
}
