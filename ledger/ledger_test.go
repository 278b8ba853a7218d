// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
)

func TestRecordOnce(t *testing.T) {
	require := require.New(t)

	l := New(memdb.New(), log.NoLog{})
	id := ids.GenerateTestID()
	subject := ids.GenerateTestShortID()

	ok, err := l.IsVerified(id)
	require.NoError(err)
	require.False(ok)

	_, found, err := l.LatestIdentity(subject)
	require.NoError(err)
	require.False(found)

	_, found, err = l.GetRecord(id)
	require.NoError(err)
	require.False(found)

	rec := &Record{
		Subject:   subject,
		RangeMin:  []byte{0},
		RangeMax:  []byte{100},
		Timestamp: 1607144400,
	}
	require.NoError(l.Record(id, rec))

	ok, err = l.IsVerified(id)
	require.NoError(err)
	require.True(ok)

	latest, found, err := l.LatestIdentity(subject)
	require.NoError(err)
	require.True(found)
	require.Equal(id, latest)

	got, found, err := l.GetRecord(id)
	require.NoError(err)
	require.True(found)
	require.Equal(rec.Subject, got.Subject)
	require.Equal(rec.Timestamp, got.Timestamp)

	// Once true, an identity's record is final.
	require.ErrorIs(l.Record(id, rec), ErrAlreadyRecorded)
}

func TestLatestIdentityTracksMostRecent(t *testing.T) {
	require := require.New(t)

	l := New(memdb.New(), log.NoLog{})
	subject := ids.GenerateTestShortID()

	first := ids.GenerateTestID()
	second := ids.GenerateTestID()

	require.NoError(l.Record(first, &Record{Subject: subject, Timestamp: 1}))
	require.NoError(l.Record(second, &Record{Subject: subject, Timestamp: 2}))

	latest, found, err := l.LatestIdentity(subject)
	require.NoError(err)
	require.True(found)
	require.Equal(second, latest)

	// The first identity stays verified even though it is no longer latest.
	ok, err := l.IsVerified(first)
	require.NoError(err)
	require.True(ok)
}

func TestRecordLinearizesConcurrentAttempts(t *testing.T) {
	require := require.New(t)

	l := New(memdb.New(), log.NoLog{})
	id := ids.GenerateTestID()

	const attempts = 32
	results := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = l.Record(id, &Record{
				Subject:   ids.GenerateTestShortID(),
				Timestamp: int64(i),
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(err, ErrAlreadyRecorded)
		}
	}
	require.Equal(1, winners)
}
