// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package proof

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

var ErrInvalidParameters = errors.New("invalid public parameters")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// Parameters are the public range-proof parameters: two generators of the
// group Z_n^* and the modulus n. They are immutable once adopted for a
// verification session; the configuration authority may replace them for
// future sessions without affecting recorded verifications.
type Parameters struct {
	G *big.Int
	H *big.Int
	N *big.Int
}

// Validate checks the parameter invariants: g, h, n all non-zero, the
// modulus no wider than a transcript block, and both generators reduced
// below the modulus.
func (p Parameters) Validate() error {
	if p.G == nil || p.H == nil || p.N == nil {
		return fmt.Errorf("%w: missing field", ErrInvalidParameters)
	}
	if p.N.Sign() == 0 {
		return fmt.Errorf("%w: zero modulus", ErrInvalidParameters)
	}
	if p.G.Sign() == 0 || p.H.Sign() == 0 {
		return fmt.Errorf("%w: zero generator", ErrInvalidParameters)
	}
	if p.N.Sign() < 0 || p.N.BitLen() > ScalarBits {
		return fmt.Errorf("%w: modulus outside the transcript block width", ErrInvalidParameters)
	}
	if p.G.Sign() < 0 || p.H.Sign() < 0 {
		return fmt.Errorf("%w: negative generator", ErrInvalidParameters)
	}
	if p.G.Cmp(p.N) >= 0 || p.H.Cmp(p.N) >= 0 {
		return fmt.Errorf("%w: generator not reduced mod n", ErrInvalidParameters)
	}
	return nil
}

// GenerateParameters samples fresh public parameters with a modulus of the
// requested bit size: n is the product of two bits/2-bit probable primes and
// the generators are drawn uniformly from [2, n) coprime to n, with g != h.
//
// This is setup tooling for tests and demos; production parameters come from
// the configuration authority's ceremony.
func GenerateParameters(r io.Reader, bitSize int) (Parameters, error) {
	if bitSize < 16 || bitSize > ScalarBits || bitSize%2 != 0 {
		return Parameters{}, fmt.Errorf("%w: unsupported modulus size %d", ErrInvalidParameters, bitSize)
	}

	p, err := rand.Prime(r, bitSize/2)
	if err != nil {
		return Parameters{}, err
	}
	q := p
	for q.Cmp(p) == 0 {
		if q, err = rand.Prime(r, bitSize/2); err != nil {
			return Parameters{}, err
		}
	}
	n := new(big.Int).Mul(p, q)

	g, err := randomUnit(r, n, nil)
	if err != nil {
		return Parameters{}, err
	}
	h, err := randomUnit(r, n, g)
	if err != nil {
		return Parameters{}, err
	}
	return Parameters{G: g, H: h, N: n}, nil
}

// randomUnit draws from [2, n) until the sample is coprime to n and distinct
// from the excluded value.
func randomUnit(r io.Reader, n, exclude *big.Int) (*big.Int, error) {
	bound := new(big.Int).Sub(n, two)
	gcd := new(big.Int)
	for {
		u, err := rand.Int(r, bound)
		if err != nil {
			return nil, err
		}
		u.Add(u, two)
		if gcd.GCD(nil, nil, u, n).Cmp(one) != 0 {
			continue
		}
		if exclude != nil && u.Cmp(exclude) == 0 {
			continue
		}
		return u, nil
	}
}
