// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package verify

import (
	"errors"

	"github.com/luxfi/metric"

	"github.com/luxfi/rangeproof/proof"
)

const reasonLabel = "reason"

type metrics struct {
	accepted metric.Counter
	rejected metric.CounterVec
}

func newMetrics(metric.Registerer) (*metrics, error) {
	// Metrics are self-registering when created with NewCounter etc.
	m := &metrics{
		accepted: metric.NewCounter(metric.CounterOpts{
			Name: "proofs_accepted",
			Help: "Number of range proofs accepted and recorded",
		}),
		rejected: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "proofs_rejected",
				Help: "Number of range proofs rejected, by reason",
			},
			[]string{reasonLabel},
		),
	}
	return m, nil
}

func (m *metrics) markAccepted() {
	m.accepted.Inc()
}

func (m *metrics) markRejected(err error) {
	m.rejected.With(metric.Labels{
		reasonLabel: reasonFor(err),
	}).Inc()
}

// reasonFor maps a rejection to its metric label.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, proof.ErrMalformedShape):
		return "malformed_shape"
	case errors.Is(err, proof.ErrInvalidParameters):
		return "invalid_parameters"
	case errors.Is(err, ErrInvalidRange):
		return "invalid_range"
	case errors.Is(err, ErrInvalidSubject):
		return "invalid_subject"
	case errors.Is(err, ErrDuplicateProof):
		return "duplicate"
	case errors.Is(err, ErrInvalidChallengeY):
		return "challenge_y"
	case errors.Is(err, ErrInvalidChallengeZ):
		return "challenge_z"
	case errors.Is(err, ErrInvalidChallengeX):
		return "challenge_x"
	case errors.Is(err, ErrCommitmentMismatch):
		return "commitment_mismatch"
	case errors.Is(err, ErrPolynomialMismatch):
		return "polynomial_mismatch"
	case errors.Is(err, ErrZeroField):
		return "zero_field"
	case errors.Is(err, ErrNonDistinctCommitments):
		return "non_distinct_commitments"
	case errors.Is(err, ErrIPPLengthMismatch):
		return "ipp_length_mismatch"
	case errors.Is(err, ErrIPPLevelMismatch):
		return "ipp_level_mismatch"
	default:
		return "internal"
	}
}
