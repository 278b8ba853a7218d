// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package proof defines the range-proof value types, their canonical
// flattened wire layout, and the content-addressed proof identity.
package proof

import (
	"errors"
	"fmt"
	"math/big"
	"math/bits"

	"github.com/luxfi/ids"

	"github.com/luxfi/rangeproof/transcript"
)

var (
	ErrMalformedShape = errors.New("malformed proof shape")

	ippMarker = big.NewInt(IPPRounds)
)

const (
	// ScalarBits is the width of one flattened proof field. The wire
	// layout is a uint256 export; a wider value has no faithful encoding.
	ScalarBits = 8 * transcript.BlockSize

	// VectorBits is the dimension of the bit-decomposition vector family
	// supported by this verifier.
	VectorBits = 64

	// IPPRounds is the number of folding rounds of the inner-product
	// argument, log2(VectorBits).
	IPPRounds = 6

	// FlattenedLen is the total number of integer fields in the flattened
	// proof layout: 15 named scalars, two length markers, two 6-element
	// vectors, and the two final inner-product scalars.
	FlattenedLen = 15 + 1 + IPPRounds + 1 + IPPRounds + 2
)

// Rounds returns the number of inner-product folding rounds for a vector
// dimension, ceil(log2(dimension)).
func Rounds(dimension int) int {
	if dimension <= 1 {
		return 0
	}
	return bits.Len(uint(dimension - 1))
}

// IPP is the inner-product argument payload: one commitment pair per folding
// round plus the two final folded scalars.
type IPP struct {
	L []*big.Int
	R []*big.Int
	A *big.Int
	B *big.Int
}

// TPoly holds the coefficients of the prover's blinding polynomial
// t(X) = t0 + t1*X + t2*X^2.
type TPoly struct {
	T0 *big.Int
	T1 *big.Int
	T2 *big.Int
}

// Proof is an immutable range proof produced by an external prover. The
// verifier only reads and hashes it. All scalars are conventionally reduced
// mod the public modulus.
type Proof struct {
	A  *big.Int // vector commitment
	S  *big.Int // blinding commitment
	T1 *big.Int // commitment to Poly.T1
	T2 *big.Int // commitment to Poly.T2

	TauX *big.Int // blinding for the evaluation t(x)
	Mu   *big.Int // blinding for the inner product
	THat *big.Int // claimed evaluation t(x)

	C   *big.Int // commitment to the hidden value
	CV1 *big.Int // commitment to the lower range split
	CV2 *big.Int // commitment to the upper range split

	Poly TPoly

	Tau1 *big.Int // blinding opening for T1
	Tau2 *big.Int // blinding opening for T2

	IPP IPP
}

// scalars returns the 15 named scalars in canonical order.
func (p *Proof) scalars() []*big.Int {
	return []*big.Int{
		p.A, p.S, p.T1, p.T2, p.TauX,
		p.Mu, p.THat, p.C, p.CV1, p.CV2,
		p.Poly.T0, p.Poly.T1, p.Poly.T2, p.Tau1, p.Tau2,
	}
}

// CheckFields reports ErrMalformedShape if any scalar or vector element is
// absent or out of the wire domain [0, 2^ScalarBits). A negative value
// never reaches the arithmetic below and an oversized one never reaches a
// transcript, so every hashed field is exactly its encoded block. It does
// not check vector lengths; those are structural properties verified by
// the orchestrator with their own error kinds.
func (p *Proof) CheckFields() error {
	if p == nil {
		return fmt.Errorf("%w: nil proof", ErrMalformedShape)
	}
	for i, s := range p.scalars() {
		if !inWireDomain(s) {
			return fmt.Errorf("%w: bad scalar %d", ErrMalformedShape, i)
		}
	}
	for _, l := range p.IPP.L {
		if !inWireDomain(l) {
			return fmt.Errorf("%w: bad ipp_L element", ErrMalformedShape)
		}
	}
	for _, r := range p.IPP.R {
		if !inWireDomain(r) {
			return fmt.Errorf("%w: bad ipp_R element", ErrMalformedShape)
		}
	}
	if !inWireDomain(p.IPP.A) || !inWireDomain(p.IPP.B) {
		return fmt.Errorf("%w: bad ipp scalar", ErrMalformedShape)
	}
	return nil
}

func inWireDomain(s *big.Int) bool {
	return s != nil && s.Sign() >= 0 && s.BitLen() <= ScalarBits
}

// Flatten returns the self-describing 31-field layout: scalars 0-14 in
// canonical order, a literal length marker, ipp_L, a second marker, ipp_R,
// then ipp_a and ipp_b.
func (p *Proof) Flatten() []*big.Int {
	out := make([]*big.Int, 0, FlattenedLen)
	out = append(out, p.scalars()...)
	out = append(out, big.NewInt(int64(len(p.IPP.L))))
	out = append(out, p.IPP.L...)
	out = append(out, big.NewInt(int64(len(p.IPP.R))))
	out = append(out, p.IPP.R...)
	out = append(out, p.IPP.A, p.IPP.B)
	return out
}

// ParseFlattened rebuilds a Proof from the 31-field layout. Any array not of
// length 31, or with a length marker other than the fixed round count, is
// rejected before any modular arithmetic begins.
func ParseFlattened(fields []*big.Int) (*Proof, error) {
	if len(fields) != FlattenedLen {
		return nil, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedShape, len(fields), FlattenedLen)
	}
	for i, f := range fields {
		if !inWireDomain(f) {
			return nil, fmt.Errorf("%w: bad field %d", ErrMalformedShape, i)
		}
	}
	if fields[15].Cmp(ippMarker) != 0 {
		return nil, fmt.Errorf("%w: ipp_L length marker %v, want %d", ErrMalformedShape, fields[15], IPPRounds)
	}
	if fields[22].Cmp(ippMarker) != 0 {
		return nil, fmt.Errorf("%w: ipp_R length marker %v, want %d", ErrMalformedShape, fields[22], IPPRounds)
	}

	p := &Proof{
		A:    fields[0],
		S:    fields[1],
		T1:   fields[2],
		T2:   fields[3],
		TauX: fields[4],
		Mu:   fields[5],
		THat: fields[6],
		C:    fields[7],
		CV1:  fields[8],
		CV2:  fields[9],
		Poly: TPoly{T0: fields[10], T1: fields[11], T2: fields[12]},
		Tau1: fields[13],
		Tau2: fields[14],
		IPP: IPP{
			L: fields[16 : 16+IPPRounds],
			R: fields[23 : 23+IPPRounds],
			A: fields[29],
			B: fields[30],
		},
	}
	return p, nil
}

// Identity computes the canonical content hash of the proof: Keccak-256 over
// the flattened field sequence, each field encoded as a fixed-width
// big-endian block. Two proofs differing in any field produce different
// identities; the hash doubles as the deduplication key and the external
// reference handle.
func (p *Proof) Identity() ids.ID {
	id, _ := ids.ToID(transcript.Hash(p.Flatten()...))
	return id
}
