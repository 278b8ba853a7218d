// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package commitment implements the Pedersen commitment primitive over the
// group Z_n^*: hiding, binding, and additively homomorphic for fixed public
// generators g and h.
package commitment

import (
	"math/big"

	"github.com/luxfi/rangeproof/arith"
	"github.com/luxfi/rangeproof/proof"
)

// Commit returns g^m * h^r mod n for message m and blinding r. Pure and
// deterministic; callers compare results bit-exactly.
func Commit(params proof.Parameters, m, r *big.Int) *big.Int {
	gm := arith.ModPow(params.G, m, params.N)
	hr := arith.ModPow(params.H, r, params.N)
	return arith.MulMod(gm, hr, params.N)
}
