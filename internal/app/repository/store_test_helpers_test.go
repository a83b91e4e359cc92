package repository

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/mindjournal/mindjournal-backend/internal/db"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func resetTokenStores(t *testing.T) map[string]func(t *testing.T) ResetTokenStore {
	return map[string]func(t *testing.T) ResetTokenStore{
		"memory": func(t *testing.T) ResetTokenStore {
			return NewMemoryResetTokenStore()
		},
		"redis": func(t *testing.T) ResetTokenStore {
			_, rdb := setupRedis(t)
			return NewRedisResetTokenStore(rdb)
		},
		"gorm": func(t *testing.T) ResetTokenStore {
			testDB, err := db.SetupTestDB(t)
			require.NoError(t, err)
			return NewGormResetTokenStore(testDB)
		},
	}
}

func otpStores(t *testing.T) map[string]func(t *testing.T) OTPStore {
	return map[string]func(t *testing.T) OTPStore{
		"memory": func(t *testing.T) OTPStore {
			return NewMemoryOTPStore()
		},
		"redis": func(t *testing.T) OTPStore {
			_, rdb := setupRedis(t)
			return NewRedisOTPStore(rdb)
		},
	}
}
