package repository

import (
	"context"
	"time"

	"github.com/mindjournal/mindjournal-backend/internal/app/model"
	"github.com/mindjournal/mindjournal-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var consumeOTPScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'code_hash') == ARGV[1] then
	redis.call('DEL', KEYS[1])
	return 1
end
return 0
`)

type redisOTPStore struct {
	rdb redis.UniversalClient
}

func NewRedisOTPStore(rdb redis.UniversalClient) OTPStore {
	return &redisOTPStore{rdb: rdb}
}

func otpKey(email string) string {
	return otpKeyPrefix + email
}

func (s *redisOTPStore) Save(ctx context.Context, code *model.OTPCode) error {
	key := otpKey(code.Email)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, map[string]interface{}{
			"email":      code.Email,
			"code_hash":  code.CodeHash,
			"issued_at":  formatMillis(code.IssuedAt),
			"expires_at": formatMillis(code.ExpiresAt),
		})
		if !code.ExpiresAt.IsZero() {
			pipe.ExpireAt(ctx, key, code.ExpiresAt)
		}
		return nil
	})
	if err != nil {
		logger.Error("Failed to store otp in redis", err, map[string]interface{}{
			"email": code.Email,
		})
	}
	return err
}

func (s *redisOTPStore) Get(ctx context.Context, email string) (*model.OTPCode, error) {
	fields, err := s.rdb.HGetAll(ctx, otpKey(email)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrOTPNotFound
	}
	return &model.OTPCode{
		Email:     fields["email"],
		CodeHash:  fields["code_hash"],
		IssuedAt:  parseMillis(fields["issued_at"]),
		ExpiresAt: parseMillis(fields["expires_at"]),
	}, nil
}

func (s *redisOTPStore) Consume(ctx context.Context, email, codeHash string) (bool, error) {
	n, err := consumeOTPScript.Run(ctx, s.rdb, []string{otpKey(email)}, codeHash).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *redisOTPStore) Delete(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, otpKey(email)).Err()
}

// SweepExpired only finds codes redis has not expired yet, which happens when
// the server clock runs ahead of redis.
func (s *redisOTPStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	return sweepExpiredHashes(ctx, s.rdb, otpKeyPrefix, now)
}
