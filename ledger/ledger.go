// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger persists the at-most-once acceptance state of verified
// proofs: a mapping from proof identity to its acceptance record and a
// mapping from subject to the most recently accepted identity.
package ledger

import (
	"errors"
	"fmt"
	"sync"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

var (
	// ErrAlreadyRecorded is returned by Record when the identity has
	// already won its check-and-set; exactly one caller per identity
	// avoids it.
	ErrAlreadyRecorded = errors.New("proof identity already recorded")

	prefixVerified = []byte("verified:")
	prefixLatest   = []byte("latest:")
)

// Record is the acceptance record persisted per proof identity. Entries are
// created only on successful verification and are never deleted or
// overwritten; once written, an identity's record is final.
type Record struct {
	Subject   ids.ShortID `serialize:"true" json:"subject"`
	RangeMin  []byte      `serialize:"true" json:"rangeMin"`
	RangeMax  []byte      `serialize:"true" json:"rangeMax"`
	Timestamp int64       `serialize:"true" json:"timestamp"`
}

// Ledger wraps an injected key-value store with the atomic check-and-set the
// verification protocol requires. Any database.Database backend works: memdb
// for tests, a persistent or distributed store in production.
type Ledger struct {
	db  database.Database
	log log.Logger

	// mu linearizes Record calls so that concurrent attempts for the same
	// identity see exactly one winner.
	mu sync.Mutex
}

// New returns a ledger backed by db.
func New(db database.Database, logger log.Logger) *Ledger {
	return &Ledger{
		db:  db,
		log: logger,
	}
}

// IsVerified reports whether the identity has been accepted.
func (l *Ledger) IsVerified(id ids.ID) (bool, error) {
	return l.db.Has(verifiedKey(id))
}

// GetRecord returns the acceptance record for an identity, if any.
func (l *Ledger) GetRecord(id ids.ID) (*Record, bool, error) {
	b, err := l.db.Get(verifiedKey(id))
	switch {
	case errors.Is(err, database.ErrNotFound):
		return nil, false, nil
	case err != nil:
		return nil, false, err
	}
	rec := &Record{}
	if _, err := c.Unmarshal(b, rec); err != nil {
		return nil, false, fmt.Errorf("failed to decode acceptance record: %w", err)
	}
	return rec, true, nil
}

// LatestIdentity returns the most recently accepted proof identity for a
// subject, and whether one exists.
func (l *Ledger) LatestIdentity(subject ids.ShortID) (ids.ID, bool, error) {
	b, err := l.db.Get(latestKey(subject))
	switch {
	case errors.Is(err, database.ErrNotFound):
		return ids.Empty, false, nil
	case err != nil:
		return ids.Empty, false, err
	}
	id, err := ids.ToID(b)
	if err != nil {
		return ids.Empty, false, fmt.Errorf("corrupted latest-identity entry: %w", err)
	}
	return id, true, nil
}

// Record performs the atomic check-and-set: if the identity is absent, both
// the acceptance record and the subject's latest-identity entry are written
// as a single batch; otherwise ErrAlreadyRecorded is returned and nothing is
// mutated. Distinct identities are independent.
func (l *Ledger) Record(id ids.ID, rec *Record) error {
	recBytes, err := c.Marshal(codecVersion, rec)
	if err != nil {
		return fmt.Errorf("failed to encode acceptance record: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	has, err := l.db.Has(verifiedKey(id))
	if err != nil {
		return err
	}
	if has {
		return ErrAlreadyRecorded
	}

	// Both mappings commit as one unit so the verified set and the
	// subject index can never observably diverge.
	batch := l.db.NewBatch()
	if err := batch.Put(verifiedKey(id), recBytes); err != nil {
		return err
	}
	if err := batch.Put(latestKey(rec.Subject), id[:]); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}

	l.log.Debug("recorded accepted proof",
		log.String("identity", id.String()),
		log.String("subject", rec.Subject.String()),
	)
	return nil
}

func verifiedKey(id ids.ID) []byte {
	return append(prefixVerified, id[:]...)
}

func latestKey(subject ids.ShortID) []byte {
	return append(prefixLatest, subject[:]...)
}
