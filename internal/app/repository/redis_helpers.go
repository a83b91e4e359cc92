package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	resetTokenKeyPrefix = "mindjournal:reset:"
	otpKeyPrefix        = "mindjournal:otp:"

	// A reset token key outlives its logical expiry so a late lookup can
	// still report "expired" instead of "invalid".
	resetTokenKeyGrace = time.Hour

	scanBatchSize = 100
)

func formatMillis(t time.Time) string {
	if t.IsZero() {
		return "0"
	}
	return strconv.FormatInt(t.UnixMilli(), 10)
}

func parseMillis(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// sweepExpiredHashes deletes every hash under prefix whose expires_at field
// is set and earlier than now.
func sweepExpiredHashes(ctx context.Context, rdb redis.UniversalClient, prefix string, now time.Time) (int, error) {
	removed := 0
	iter := rdb.Scan(ctx, 0, prefix+"*", scanBatchSize).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := rdb.HGet(ctx, key, "expires_at").Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return removed, err
		}
		expiresAt := parseMillis(raw)
		if expiresAt.IsZero() || !expiresAt.Before(now) {
			continue
		}
		n, err := rdb.Del(ctx, key).Result()
		if err != nil {
			return removed, err
		}
		removed += int(n)
	}
	return removed, iter.Err()
}
