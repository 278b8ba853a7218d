// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verify

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/rangeproof/arith"
	"github.com/luxfi/rangeproof/commitment"
	"github.com/luxfi/rangeproof/proof"
	"github.com/luxfi/rangeproof/transcript"
)

// testParams returns the reference scenario configuration: a 256-bit
// modulus with fixed generators g=2, h=3.
func testParams(t *testing.T) proof.Parameters {
	t.Helper()

	params, err := proof.GenerateParameters(rand.Reader, 256)
	require.NoError(t, err)

	// The modulus is a product of two odd 128-bit primes, so 2 and 3 are
	// units mod n.
	params.G = big.NewInt(2)
	params.H = big.NewInt(3)
	require.NoError(t, params.Validate())
	return params
}

func randScalar(t *testing.T, n *big.Int) *big.Int {
	t.Helper()
	s, err := rand.Int(rand.Reader, n)
	require.NoError(t, err)
	return s
}

func nonZeroScalar(t *testing.T, n *big.Int) *big.Int {
	t.Helper()
	for {
		if s := randScalar(t, n); s.Sign() != 0 {
			return s
		}
	}
}

// honestProof builds a proof the way a prover sharing these parameters
// would: commitments opened with fresh blindings, the polynomial evaluation
// derived from the same Fiat-Shamir challenge the verifier re-derives, and
// a full complement of inner-product folding rounds.
func honestProof(t *testing.T, params proof.Parameters, value, min, max *big.Int) *proof.Proof {
	t.Helper()
	n := params.N

	// Value commitment and its two range-split commitments:
	// v1 = 4v - 4min + 1, v2 = 4max - 4v + 1.
	four := big.NewInt(4)
	v1 := new(big.Int).Sub(value, min)
	v1.Mul(v1, four).Add(v1, big.NewInt(1))
	v2 := new(big.Int).Sub(max, value)
	v2.Mul(v2, four).Add(v2, big.NewInt(1))

	c := commitment.Commit(params, value, nonZeroScalar(t, n))
	cv1 := commitment.Commit(params, v1, nonZeroScalar(t, n))
	cv2 := commitment.Commit(params, v2, nonZeroScalar(t, n))
	require.NotZero(t, c.Cmp(cv1))
	require.NotZero(t, c.Cmp(cv2))
	require.NotZero(t, cv1.Cmp(cv2))

	a := commitment.Commit(params, nonZeroScalar(t, n), nonZeroScalar(t, n))
	s := commitment.Commit(params, nonZeroScalar(t, n), nonZeroScalar(t, n))

	t0 := randScalar(t, n)
	t1 := randScalar(t, n)
	t2 := randScalar(t, n)
	tau1 := randScalar(t, n)
	tau2 := randScalar(t, n)

	bigT1 := commitment.Commit(params, t1, tau1)
	bigT2 := commitment.Commit(params, t2, tau2)

	x := transcript.Challenge(n, bigT1, bigT2)
	x2 := arith.MulMod(x, x, n)
	tHat := arith.AddMod(t0, arith.MulMod(t1, x, n), n)
	tHat = arith.AddMod(tHat, arith.MulMod(t2, x2, n), n)

	rounds := proof.Rounds(proof.VectorBits)
	ippL := make([]*big.Int, rounds)
	ippR := make([]*big.Int, rounds)
	for i := 0; i < rounds; i++ {
		ippL[i] = nonZeroScalar(t, n)
		ippR[i] = nonZeroScalar(t, n)
	}

	return &proof.Proof{
		A:    a,
		S:    s,
		T1:   bigT1,
		T2:   bigT2,
		TauX: randScalar(t, n),
		Mu:   randScalar(t, n),
		THat: tHat,
		C:    c,
		CV1:  cv1,
		CV2:  cv2,
		Poly: proof.TPoly{T0: t0, T1: t1, T2: t2},
		Tau1: tau1,
		Tau2: tau2,
		IPP: proof.IPP{
			L: ippL,
			R: ippR,
			A: nonZeroScalar(t, n),
			B: nonZeroScalar(t, n),
		},
	}
}
