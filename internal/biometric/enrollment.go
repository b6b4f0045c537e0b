// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package biometric

import (
	"fmt"
	"slices"
)

// Enrollment is the stored reference of one user: exactly one code per
// enrolled modality. It is replaced wholesale on re-enrollment.
type Enrollment struct {
	userID int64
	codes  map[Modality]Code
}

// NewEnrollment groups codes under userID. Every code is re-owned by userID;
// codes already owned by a different user, empty codes and duplicate
// modalities are rejected.
func NewEnrollment(userID int64, codes ...Code) (Enrollment, error) {
	e := Enrollment{
		userID: userID,
		codes:  make(map[Modality]Code, len(codes)),
	}

	for _, c := range codes {
		if c.IsZero() {
			return Enrollment{}, fmt.Errorf("%w: empty code", ErrInvalidCode)
		}
		if c.userID != 0 && c.userID != userID {
			return Enrollment{}, fmt.Errorf("%w: code owned by user %d cannot enroll user %d", ErrInvalidCode, c.userID, userID)
		}
		if _, dup := e.codes[c.modality]; dup {
			return Enrollment{}, fmt.Errorf("%w: duplicate %s code", ErrInvalidCode, c.modality)
		}
		e.codes[c.modality] = c.WithOwner(userID)
	}

	return e, nil
}

// UserID returns the enrolled user.
func (e Enrollment) UserID() int64 {
	return e.userID
}

// Code returns the code enrolled for m.
func (e Enrollment) Code(m Modality) (Code, bool) {
	c, ok := e.codes[m]
	return c, ok
}

// Codes returns the enrolled codes ordered by modality.
func (e Enrollment) Codes() []Code {
	out := make([]Code, 0, len(e.codes))
	for _, m := range e.Modalities() {
		out = append(out, e.codes[m])
	}
	return out
}

// Modalities returns the enrolled modalities in sorted order.
func (e Enrollment) Modalities() []Modality {
	out := make([]Modality, 0, len(e.codes))
	for m := range e.codes {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Verifiable returns an *IncompleteEnrollmentError when any of required is
// missing. With no arguments [RequiredModalities] is used.
func (e Enrollment) Verifiable(required ...Modality) error {
	if len(required) == 0 {
		required = RequiredModalities()
	}

	var missing []Modality
	for _, m := range required {
		if _, ok := e.codes[m]; !ok {
			missing = append(missing, m)
		}
	}
	if len(missing) > 0 {
		return &IncompleteEnrollmentError{UserID: e.userID, Missing: missing}
	}
	return nil
}
