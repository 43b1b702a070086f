//go:build integration

package redis_test

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exprCalc/internal/infrastructure/redis"
	"exprCalc/internal/pkg/testutil"
)

var redisContainer *testutil.Redis

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	var err error
	redisContainer, err = testutil.StartRedis(ctx)
	if err != nil {
		log.Fatalf("redis container: %v", err)
	}
	code := m.Run()
	if err := redisContainer.Terminate(ctx); err != nil {
		log.Printf("terminate redis: %v", err)
	}
	os.Exit(code)
}

func setupStore(t *testing.T) (*redis.TokenStore, *redis.Client) {
	t.Helper()
	if testing.Short() {
		t.Skip("пропускаем интеграционный тест в short режиме")
	}
	cli, err := redis.New(&redis.Config{Host: redisContainer.Host, Port: redisContainer.Port})
	require.NoError(t, err)
	require.NoError(t, cli.FlushDB(context.Background()).Err())
	t.Cleanup(func() { cli.Close() })
	return redis.NewTokenStore(cli, testutil.Logger()), cli
}

func TestTokenStore_RevokeAndCheck(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = store.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked, "другие токены не затронуты")
}

func TestTokenStore_TTL(t *testing.T) {
	store, cli := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-ttl", 30*time.Second))
	ttl, err := cli.TTL(ctx, "revoked:jti-ttl").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 20*time.Second)
	assert.LessOrEqual(t, ttl, 30*time.Second)
}

func TestTokenStore_ExpiredTokenNotStored(t *testing.T) {
	store, cli := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "jti-old", 0))
	n, err := cli.Exists(ctx, "revoked:jti-old").Result()
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestClient_Ping(t *testing.T) {
	_, cli := setupStore(t)
	assert.NoError(t, cli.Ping(context.Background()))
}

func TestTokenStore_AnyOf(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "session:s-1", time.Minute))

	revoked, err := store.IsRevoked(ctx, "jti-live", "session:s-1")
	require.NoError(t, err)
	assert.True(t, revoked, "отозванная сессия закрывает и живой jti")

	revoked, err = store.IsRevoked(ctx, "jti-live", "session:s-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	revoked, err = store.IsRevoked(ctx)
	require.NoError(t, err)
	assert.False(t, revoked)
}
