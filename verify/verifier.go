// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package verify implements the range-proof verification protocol: strict
// in-order checking of Fiat-Shamir challenges, Pedersen commitment
// consistency, the blinding-polynomial identity, and proof structure, with
// at-most-once acceptance enforced by a content-addressed ledger.
package verify

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	lru "github.com/hashicorp/golang-lru"

	"github.com/luxfi/rangeproof/arith"
	"github.com/luxfi/rangeproof/commitment"
	"github.com/luxfi/rangeproof/ledger"
	"github.com/luxfi/rangeproof/proof"
	"github.com/luxfi/rangeproof/transcript"
)

const defaultProofCacheSize = 1024

// Config contains verifier configuration.
type Config struct {
	// ProofCacheSize bounds the LRU cache of per-identity verification
	// outcomes. Outcomes are pure in (parameters, proof), so caching them
	// never changes a result, only skips recomputation.
	ProofCacheSize uint32 `serialize:"true" json:"proofCacheSize"`
}

// Verifier is the single public entry point of the protocol. All state
// lives in the injected store; everything before the final ledger write is
// a pure function of the inputs.
type Verifier struct {
	params proof.Parameters
	config Config

	ledger *ledger.Ledger

	// Cache of deterministic cryptographic outcomes keyed by identity.
	// Duplicate policy always consults the ledger, never this cache.
	outcomes *lru.Cache

	log     log.Logger
	metrics *metrics
	clock   Clock

	events chan<- Event
}

// New creates a verifier for one parameter set. db supplies the atomic
// check-and-set backing the duplicate ledger; events, if non-nil, receives
// one Event per accepted proof.
func New(
	params proof.Parameters,
	config Config,
	db database.Database,
	logger log.Logger,
	registerer metric.Registerer,
	events chan<- Event,
) (*Verifier, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if config.ProofCacheSize == 0 {
		config.ProofCacheSize = defaultProofCacheSize
	}

	outcomes, err := lru.New(int(config.ProofCacheSize))
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return &Verifier{
		params:   params,
		config:   config,
		ledger:   ledger.New(db, logger),
		outcomes: outcomes,
		log:      logger,
		metrics:  m,
		events:   events,
	}, nil
}

// Verify decides whether p is a valid attestation that a hidden value lies
// in claim's range, submitted by subject. On acceptance it records the
// proof identity atomically and returns it; any failure aborts with the
// specific rejection kind and no state mutation. A previously accepted
// proof is rejected with ErrDuplicateProof regardless of subject.
func (v *Verifier) Verify(p *proof.Proof, claim RangeClaim, subject ids.ShortID) (ids.ID, error) {
	// Validating
	if err := p.CheckFields(); err != nil {
		return ids.Empty, v.reject(err)
	}
	if err := claim.Validate(); err != nil {
		return ids.Empty, v.reject(err)
	}
	if subject == ids.ShortEmpty {
		return ids.Empty, v.reject(ErrInvalidSubject)
	}
	if err := v.params.Validate(); err != nil {
		return ids.Empty, v.reject(err)
	}

	// No proof may be re-verified to change state: duplicates reject
	// before any further cryptographic work.
	id := p.Identity()
	verified, err := v.ledger.IsVerified(id)
	if err != nil {
		return ids.Empty, err
	}
	if verified {
		return ids.Empty, v.reject(fmt.Errorf("%w: %s", ErrDuplicateProof, id))
	}

	if err := v.checkProof(id, p); err != nil {
		return ids.Empty, v.reject(err)
	}

	// Committing: both ledger mappings and the outcome become visible as
	// one unit; losers of the check-and-set race observe a duplicate.
	ts := v.clock.Time()
	rec := &ledger.Record{
		Subject:   subject,
		RangeMin:  claim.Min.Bytes(),
		RangeMax:  claim.Max.Bytes(),
		Timestamp: ts.Unix(),
	}
	if err := v.ledger.Record(id, rec); err != nil {
		if errors.Is(err, ledger.ErrAlreadyRecorded) {
			return ids.Empty, v.reject(fmt.Errorf("%w: %s", ErrDuplicateProof, id))
		}
		return ids.Empty, err
	}

	v.metrics.markAccepted()
	v.log.Info("range proof accepted",
		log.String("identity", id.String()),
		log.String("subject", subject.String()),
	)
	v.emit(Event{
		Subject:   subject,
		Identity:  id,
		RangeMin:  claim.Min,
		RangeMax:  claim.Max,
		Accepted:  true,
		Timestamp: ts,
	})
	return id, nil
}

// VerifyFlattened parses the self-describing 31-field wire layout and
// verifies the result. Malformed arrays are rejected before any modular
// arithmetic begins.
func (v *Verifier) VerifyFlattened(fields []*big.Int, claim RangeClaim, subject ids.ShortID) (ids.ID, error) {
	p, err := proof.ParseFlattened(fields)
	if err != nil {
		return ids.Empty, v.reject(err)
	}
	return v.Verify(p, claim, subject)
}

// IsVerified reports whether the identity has been accepted. Pure read.
func (v *Verifier) IsVerified(id ids.ID) (bool, error) {
	return v.ledger.IsVerified(id)
}

// LatestIdentity returns the most recently accepted identity for a subject.
// Pure read.
func (v *Verifier) LatestIdentity(subject ids.ShortID) (ids.ID, bool, error) {
	return v.ledger.LatestIdentity(subject)
}

// checkProof runs the challenge, commitment, polynomial, and structural
// checks. The result is deterministic in (parameters, proof) and therefore
// cacheable by identity.
func (v *Verifier) checkProof(id ids.ID, p *proof.Proof) error {
	if cached, ok := v.outcomes.Get(id); ok {
		if err, _ := cached.(error); err != nil {
			return err
		}
		return nil
	}

	err := v.recheck(p)
	v.outcomes.Add(id, err)
	return err
}

func (v *Verifier) recheck(p *proof.Proof) error {
	n := v.params.N

	// ChallengeDerivation
	y := transcript.Challenge(n, p.A, p.S, p.C, p.CV1, p.CV2)
	if y.Sign() == 0 {
		return ErrInvalidChallengeY
	}
	// z is part of the canonical transcript: it must be derived and
	// checked even though no remaining relation consumes it, or every
	// downstream hash domain would shift.
	z := transcript.Challenge(n, y)
	if z.Sign() == 0 {
		return ErrInvalidChallengeZ
	}
	x := transcript.Challenge(n, p.T1, p.T2)
	if x.Sign() == 0 {
		return ErrInvalidChallengeX
	}

	// CommitmentCheck
	if commitment.Commit(v.params, p.Poly.T1, p.Tau1).Cmp(p.T1) != 0 {
		return fmt.Errorf("%w: T1", ErrCommitmentMismatch)
	}
	if commitment.Commit(v.params, p.Poly.T2, p.Tau2).Cmp(p.T2) != 0 {
		return fmt.Errorf("%w: T2", ErrCommitmentMismatch)
	}

	// t_hat must equal t0 + t1*x + t2*x^2 mod n.
	x2 := arith.MulMod(x, x, n)
	rhs := arith.AddMod(p.Poly.T0, arith.MulMod(p.Poly.T1, x, n), n)
	rhs = arith.AddMod(rhs, arith.MulMod(p.Poly.T2, x2, n), n)
	if p.THat.Cmp(rhs) != 0 {
		return ErrPolynomialMismatch
	}
	// Transcript-binding re-check of the same identity under tau_x.
	// Redundant given the equality above, but part of the protocol.
	lhs := commitment.Commit(v.params, p.THat, p.TauX)
	if lhs.Cmp(commitment.Commit(v.params, rhs, p.TauX)) != 0 {
		return fmt.Errorf("%w: t_hat", ErrCommitmentMismatch)
	}

	// StructuralCheck
	for _, f := range []struct {
		name string
		val  *big.Int
	}{
		{"A", p.A}, {"S", p.S}, {"T1", p.T1}, {"T2", p.T2},
		{"C", p.C}, {"C_v1", p.CV1}, {"C_v2", p.CV2},
	} {
		if new(big.Int).Mod(f.val, n).Sign() == 0 {
			return fmt.Errorf("%w: %s", ErrZeroField, f.name)
		}
	}
	if p.C.Cmp(p.CV1) == 0 || p.C.Cmp(p.CV2) == 0 || p.CV1.Cmp(p.CV2) == 0 {
		return ErrNonDistinctCommitments
	}
	if len(p.IPP.L) != len(p.IPP.R) {
		return ErrIPPLengthMismatch
	}
	if len(p.IPP.L) != proof.Rounds(proof.VectorBits) {
		return ErrIPPLevelMismatch
	}
	return nil
}

func (v *Verifier) reject(err error) error {
	v.metrics.markRejected(err)
	v.log.Debug("range proof rejected",
		log.String("reason", reasonFor(err)),
	)
	return err
}

func (v *Verifier) emit(evt Event) {
	if v.events == nil {
		return
	}
	select {
	case v.events <- evt:
	default:
		v.log.Warn("dropping verification event: channel full",
			log.String("identity", evt.Identity.String()),
		)
	}
}
