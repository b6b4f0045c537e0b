// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package biometric contains the verification decision core: fixed-length
// binary codes, enrollments, the Hamming distance evaluator, the fusion rule
// that turns per-modality distances into one score, and the threshold policy
// that renders an accept/reject verdict.
//
// Everything in this package is pure and safe for concurrent use. Encoding of
// captured images into codes lives in package encoder; bookkeeping of attempts
// lives in package ledger.
package biometric
