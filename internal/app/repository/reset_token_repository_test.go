package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

func TestResetTokenStore_PutGet(t *testing.T) {
	for name, newStore := range resetTokenStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			rec, err := store.Put(ctx, "tok-1", "a@x.com", baseTime, 15*time.Minute)
			require.NoError(t, err)
			assert.Equal(t, baseTime.Add(15*time.Minute), rec.ExpiresAt)
			assert.False(t, rec.Used)

			got, err := store.Get(ctx, "tok-1")
			require.NoError(t, err)
			assert.Equal(t, "tok-1", got.Token)
			assert.Equal(t, "a@x.com", got.Email)
			assert.True(t, got.IssuedAt.Equal(baseTime))
			assert.True(t, got.ExpiresAt.Equal(baseTime.Add(15*time.Minute)))
			assert.False(t, got.Used)

			_, err = store.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrResetTokenNotFound)
		})
	}
}

func TestResetTokenStore_PutOverwrites(t *testing.T) {
	for name, newStore := range resetTokenStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Put(ctx, "tok-1", "a@x.com", baseTime, 15*time.Minute)
			require.NoError(t, err)
			require.NoError(t, store.MarkUsed(ctx, "tok-1"))

			_, err = store.Put(ctx, "tok-1", "b@x.com", baseTime, 15*time.Minute)
			require.NoError(t, err)

			got, err := store.Get(ctx, "tok-1")
			require.NoError(t, err)
			assert.Equal(t, "b@x.com", got.Email)
			assert.False(t, got.Used)
		})
	}
}

func TestResetTokenStore_MarkUsed(t *testing.T) {
	for name, newStore := range resetTokenStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Put(ctx, "tok-1", "a@x.com", baseTime, 15*time.Minute)
			require.NoError(t, err)

			require.NoError(t, store.MarkUsed(ctx, "tok-1"))
			assert.ErrorIs(t, store.MarkUsed(ctx, "tok-1"), ErrResetTokenAlreadyUsed)
			assert.ErrorIs(t, store.MarkUsed(ctx, "missing"), ErrResetTokenNotFound)

			got, err := store.Get(ctx, "tok-1")
			require.NoError(t, err)
			assert.True(t, got.Used)
			assert.Equal(t, "a@x.com", got.Email)
		})
	}
}

func TestResetTokenStore_MarkUsedConcurrent(t *testing.T) {
	for name, newStore := range resetTokenStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Put(ctx, "tok-1", "a@x.com", baseTime, 15*time.Minute)
			require.NoError(t, err)

			var wins int32
			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if store.MarkUsed(ctx, "tok-1") == nil {
						atomic.AddInt32(&wins, 1)
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, int32(1), wins)
		})
	}
}

func TestResetTokenStore_Delete(t *testing.T) {
	for name, newStore := range resetTokenStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Put(ctx, "tok-1", "a@x.com", baseTime, 15*time.Minute)
			require.NoError(t, err)

			require.NoError(t, store.Delete(ctx, "tok-1"))
			require.NoError(t, store.Delete(ctx, "tok-1"))

			_, err = store.Get(ctx, "tok-1")
			assert.ErrorIs(t, err, ErrResetTokenNotFound)
		})
	}
}

func TestResetTokenStore_SweepExpired(t *testing.T) {
	for name, newStore := range resetTokenStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)

			_, err := store.Put(ctx, "old", "a@x.com", baseTime, 15*time.Minute)
			require.NoError(t, err)
			_, err = store.Put(ctx, "fresh", "a@x.com", baseTime.Add(10*time.Minute), 15*time.Minute)
			require.NoError(t, err)

			removed, err := store.SweepExpired(ctx, baseTime.Add(20*time.Minute))
			require.NoError(t, err)
			assert.Equal(t, 1, removed)

			_, err = store.Get(ctx, "old")
			assert.ErrorIs(t, err, ErrResetTokenNotFound)
			_, err = store.Get(ctx, "fresh")
			assert.NoError(t, err)
		})
	}
}

func TestRedisResetTokenStore_KeyOutlivesExpiry(t *testing.T) {
	ctx := context.Background()
	mr, rdb := setupRedis(t)
	store := NewRedisResetTokenStore(rdb)

	_, err := store.Put(ctx, "tok-1", "a@x.com", baseTime, 15*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute+resetTokenKeyGrace, mr.TTL(resetTokenKey("tok-1")))

	mr.FastForward(16 * time.Minute)
	got, err := store.Get(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)

	mr.FastForward(resetTokenKeyGrace)
	_, err = store.Get(ctx, "tok-1")
	assert.ErrorIs(t, err, ErrResetTokenNotFound)
}
