// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package transcript derives Fiat-Shamir challenges from proof fields.
//
// Every input is encoded as a 32-byte big-endian block (zero-padded to the
// working width, truncated to its low 256 bits if wider) and the blocks are
// hashed in order with Keccak-256. The encoding is the protocol's canonical
// transcript format: any drift here changes every downstream challenge.
package transcript

import (
	"math/big"

	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// BlockSize is the fixed width of one encoded transcript input.
const BlockSize = 32

// Block encodes a non-negative integer as a 32-byte big-endian block.
// Values wider than the block keep only their low 256 bits; proof fields
// are validated against the same width at the parsing boundary, so every
// hashed field is exactly its encoded block.
func Block(x *big.Int) [BlockSize]byte {
	var u uint256.Int
	u.SetFromBig(x)
	return u.Bytes32()
}

// Hash returns the Keccak-256 digest of the inputs encoded as consecutive
// fixed-width blocks.
func Hash(inputs ...*big.Int) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, in := range inputs {
		blk := Block(in)
		h.Write(blk[:])
	}
	return h.Sum(nil)
}

// Challenge hashes the inputs and interprets the digest as a big-endian
// integer reduced mod modulus. Callers must check the result against zero;
// a zero challenge voids the transcript.
func Challenge(modulus *big.Int, inputs ...*big.Int) *big.Int {
	c := new(big.Int).SetBytes(Hash(inputs...))
	return c.Mod(c, modulus)
}
