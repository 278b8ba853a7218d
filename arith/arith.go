// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package arith provides the exact modular big-integer arithmetic used by
// the range-proof verification protocol. Every operation works on canonical
// non-negative residues; math/big keeps intermediate products exact, so no
// reduction step can silently truncate.
package arith

import "math/big"

var one = big.NewInt(1)

// ModPow returns base^|exp| mod modulus using binary exponentiation.
//
// The scheme's conventions are load-bearing and must hold bit-exactly:
// a zero modulus yields 0, a zero base yields 0 even when exp is zero,
// and a zero exponent otherwise yields 1 mod modulus. A negative exponent
// is exponentiation by its absolute value, never a modular inverse, so the
// result is defined even when base and modulus share a factor.
func ModPow(base, exp, modulus *big.Int) *big.Int {
	if modulus.Sign() == 0 {
		return new(big.Int)
	}
	if base.Sign() == 0 {
		return new(big.Int)
	}
	if exp.Sign() == 0 {
		return new(big.Int).Mod(one, modulus)
	}
	if exp.Sign() < 0 {
		exp = new(big.Int).Abs(exp)
	}
	return new(big.Int).Exp(base, exp, modulus)
}

// MulMod returns a*b mod modulus, or 0 when modulus is zero.
func MulMod(a, b, modulus *big.Int) *big.Int {
	if modulus.Sign() == 0 {
		return new(big.Int)
	}
	p := new(big.Int).Mul(a, b)
	return p.Mod(p, modulus)
}

// AddMod returns a+b mod modulus, or 0 when modulus is zero.
func AddMod(a, b, modulus *big.Int) *big.Int {
	if modulus.Sign() == 0 {
		return new(big.Int)
	}
	s := new(big.Int).Add(a, b)
	return s.Mod(s, modulus)
}
