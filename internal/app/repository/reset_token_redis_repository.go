package repository

import (
	"context"
	"time"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// markUsedScript returns 0 when the key is missing, -1 when already used and
// 1 when this call flipped the flag.
var markUsedScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
if redis.call('HGET', KEYS[1], 'used') == '1' then
	return -1
end
redis.call('HSET', KEYS[1], 'used', '1')
return 1
`)

type redisResetTokenStore struct {
	rdb redis.UniversalClient
}

// NewRedisResetTokenStore shares tokens across instances through redis.
func NewRedisResetTokenStore(rdb redis.UniversalClient) ResetTokenStore {
	return &redisResetTokenStore{rdb: rdb}
}

func resetTokenKey(token string) string {
	return resetTokenKeyPrefix + token
}

func (s *redisResetTokenStore) Put(ctx context.Context, token, email string, issuedAt time.Time, ttl time.Duration) (*model.ResetToken, error) {
	rec := &model.ResetToken{
		Token:     token,
		Email:     email,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(ttl),
	}

	key := resetTokenKey(token)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]interface{}{
			"email":      email,
			"issued_at":  formatMillis(rec.IssuedAt),
			"expires_at": formatMillis(rec.ExpiresAt),
			"used":       "0",
		})
		pipe.Expire(ctx, key, ttl+resetTokenKeyGrace)
		return nil
	})
	if err != nil {
		logger.Error("Failed to store reset token in redis", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	return rec, nil
}

func (s *redisResetTokenStore) Get(ctx context.Context, token string) (*model.ResetToken, error) {
	fields, err := s.rdb.HGetAll(ctx, resetTokenKey(token)).Result()
	if err != nil {
		logger.Error("Failed to read reset token from redis", err, nil)
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrResetTokenNotFound
	}
	return &model.ResetToken{
		Token:     token,
		Email:     fields["email"],
		IssuedAt:  parseMillis(fields["issued_at"]),
		ExpiresAt: parseMillis(fields["expires_at"]),
		Used:      fields["used"] == "1",
	}, nil
}

func (s *redisResetTokenStore) MarkUsed(ctx context.Context, token string) error {
	res, err := markUsedScript.Run(ctx, s.rdb, []string{resetTokenKey(token)}).Int()
	if err != nil {
		logger.Error("Failed to mark reset token as used in redis", err, nil)
		return err
	}
	switch res {
	case 0:
		return ErrResetTokenNotFound
	case -1:
		return ErrResetTokenAlreadyUsed
	default:
		return nil
	}
}

func (s *redisResetTokenStore) Delete(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, resetTokenKey(token)).Err()
}

func (s *redisResetTokenStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	return sweepExpiredHashes(ctx, s.rdb, resetTokenKeyPrefix, now)
}
