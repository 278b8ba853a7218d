// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package commitment

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/rangeproof/arith"
	"github.com/luxfi/rangeproof/proof"
)

func testParams(t *testing.T) proof.Parameters {
	t.Helper()
	params, err := proof.GenerateParameters(rand.Reader, 256)
	require.NoError(t, err)
	return params
}

func TestCommitProperties(t *testing.T) {
	require := require.New(t)
	params := testParams(t)

	m1, r1 := big.NewInt(5), big.NewInt(7)
	c1 := Commit(params, m1, r1)

	// Deterministic.
	require.Zero(c1.Cmp(Commit(params, m1, r1)))

	// A different blinding hides the message under a different commitment.
	require.NotZero(c1.Cmp(Commit(params, m1, big.NewInt(8))))

	// Homomorphic: C(m1,r1)*C(m2,r2) == C(m1+m2, r1+r2).
	m2, r2 := big.NewInt(11), big.NewInt(3)
	c2 := Commit(params, m2, r2)
	lhs := arith.MulMod(c1, c2, params.N)
	rhs := Commit(params, new(big.Int).Add(m1, m2), new(big.Int).Add(r1, r2))
	require.Zero(lhs.Cmp(rhs))
}

func TestCommitFixedGenerators(t *testing.T) {
	require := require.New(t)

	// The demo configuration from the protocol's reference scenario.
	params := testParams(t)
	params.G = big.NewInt(2)
	params.H = big.NewInt(3)

	c := Commit(params, big.NewInt(50), big.NewInt(1234))
	want := arith.MulMod(
		arith.ModPow(big.NewInt(2), big.NewInt(50), params.N),
		arith.ModPow(big.NewInt(3), big.NewInt(1234), params.N),
		params.N,
	)
	require.Zero(c.Cmp(want))
	require.True(c.Cmp(params.N) < 0)
}
