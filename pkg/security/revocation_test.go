package security

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRevoker_NilClientIsNoop(t *testing.T) {
	r := NewRevoker(nil)
	assert.IsType(t, NoopRevoker{}, r)

	require.NoError(t, r.Revoke(context.Background(), "jti", time.Now().Add(time.Minute)))
	revoked, err := r.IsRevoked(context.Background(), "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRedisRevoker_UnreachableReturnsError(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	r := NewRevoker(rdb)
	assert.IsType(t, &RedisRevoker{}, r)

	_, err := r.IsRevoked(context.Background(), "jti")
	assert.Error(t, err)

	// 已过期的令牌不访问 Redis
	assert.NoError(t, r.Revoke(context.Background(), "jti", time.Now().Add(-time.Minute)))
}

func TestRedisRevoker_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	r := NewRedisRevoker(rdb)

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Minute)))

	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// 其他令牌不受影响
	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	ttl := mr.TTL(revokedKeyPrefix + "jti-1")
	assert.True(t, ttl > 0 && ttl <= time.Minute, "ttl=%v", ttl)

	// 黑名单随令牌过期而失效
	mr.FastForward(2 * time.Minute)
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
