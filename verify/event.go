// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verify

import (
	"math/big"
	"time"

	"github.com/luxfi/ids"
)

// Event is emitted once per accepted proof for observers and indexers.
type Event struct {
	Subject   ids.ShortID `json:"subject"`
	Identity  ids.ID      `json:"identity"`
	RangeMin  *big.Int    `json:"rangeMin"`
	RangeMax  *big.Int    `json:"rangeMax"`
	Accepted  bool        `json:"accepted"`
	Timestamp time.Time   `json:"timestamp"`
}

// RangeClaim is the asserted inclusive bound [Min, Max] the hidden value is
// claimed to satisfy.
type RangeClaim struct {
	Min *big.Int `json:"min"`
	Max *big.Int `json:"max"`
}

// Validate checks the claim invariants: both bounds present and
// non-negative, Min <= Max. Bounds persist sign-free in the acceptance
// record, so a negative bound has no faithful representation.
func (c RangeClaim) Validate() error {
	if c.Min == nil || c.Max == nil {
		return ErrInvalidRange
	}
	if c.Min.Sign() < 0 {
		return ErrInvalidRange
	}
	if c.Min.Cmp(c.Max) > 0 {
		return ErrInvalidRange
	}
	return nil
}
