// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verify

import "errors"

// The rejection taxonomy. Every check is local and terminal: the verifier
// stops at the first failure and surfaces exactly one of these kinds, so
// callers can distinguish malformed input (caller bug) from cryptographic
// invalidity (prover or parameter mismatch) from benign duplicates.
// Shape and parameter kinds live in the proof package:
// proof.ErrMalformedShape, proof.ErrInvalidParameters.
var (
	ErrInvalidRange   = errors.New("invalid range claim")
	ErrInvalidSubject = errors.New("invalid subject")
	ErrDuplicateProof = errors.New("duplicate proof")

	ErrInvalidChallengeY = errors.New("invalid challenge y")
	ErrInvalidChallengeZ = errors.New("invalid challenge z")
	ErrInvalidChallengeX = errors.New("invalid challenge x")

	ErrCommitmentMismatch = errors.New("commitment mismatch")
	ErrPolynomialMismatch = errors.New("polynomial relation mismatch")

	ErrZeroField              = errors.New("zero proof field")
	ErrNonDistinctCommitments = errors.New("value commitments not distinct")
	ErrIPPLengthMismatch      = errors.New("ipp vector length mismatch")
	ErrIPPLevelMismatch       = errors.New("ipp recursion level mismatch")
)
