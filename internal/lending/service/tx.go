package service

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"

	id "libraria/pkg/domain"
	dErrors "libraria/pkg/domain-errors"
)

// lendingShards spreads borrow/return serialization over a fixed lock set.
// A request holds the shard of its book and the shard of its member, so two
// requests touching the same book or the same member never overlap.
const lendingShards = 128

const defaultLendingTxTimeout = 5 * time.Second

// shardedLendingTx keeps one weight-1 semaphore per shard so that waiting
// for a shard can be abandoned when the wait deadline passes.
type shardedLendingTx struct {
	shards  [lendingShards]*semaphore.Weighted
	timeout time.Duration
}

func newShardedLendingTx() *shardedLendingTx {
	t := &shardedLendingTx{timeout: defaultLendingTxTimeout}
	for i := range t.shards {
		t.shards[i] = semaphore.NewWeighted(1)
	}
	return t
}

// RunInTx runs fn while holding the shards for memberID and bookID. Shards are
// taken in ascending index order so opposing requests cannot deadlock.
// Waiting for the shards is bounded by the configured timeout and by ctx;
// fn itself runs with the caller's ctx.
func (t *shardedLendingTx) RunInTx(ctx context.Context, memberID id.MemberID, bookID id.BookID, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "lending aborted: context cancelled")
	}

	first := shardFor("book:" + bookID.String())
	second := shardFor("member:" + memberID.String())
	if first > second {
		first, second = second, first
	}

	release, err := t.acquire(ctx, first, second)
	if err != nil {
		return err
	}
	defer release()

	return fn(ctx)
}

func (t *shardedLendingTx) acquire(ctx context.Context, first, second int) (func(), error) {
	timeout := t.timeout
	if timeout <= 0 {
		timeout = defaultLendingTxTimeout
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := t.shards[first].Acquire(waitCtx, 1); err != nil {
		return nil, lockWaitError(ctx, err)
	}
	if second == first {
		return func() { t.shards[first].Release(1) }, nil
	}
	if err := t.shards[second].Acquire(waitCtx, 1); err != nil {
		t.shards[first].Release(1)
		return nil, lockWaitError(ctx, err)
	}
	return func() {
		t.shards[second].Release(1)
		t.shards[first].Release(1)
	}, nil
}

func lockWaitError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "lending aborted: context cancelled")
	}
	return dErrors.Wrap(err, dErrors.CodeTimeout, "lending aborted: lock wait exceeded")
}

func shardFor(key string) int {
	return int(hashString(key) % lendingShards)
}

// hashString is FNV-1a.
func hashString(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
