package redis

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"

	infraredis "github.com/iho/fxledger/internal/infrastructure/redis"
)

// newTestRedisClient connects through the server's client constructor to a
// fresh miniredis instance.
func newTestRedisClient(t *testing.T) (*redislib.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client, err := infraredis.NewClient(context.Background(), fmt.Sprintf("redis://%s/0", mr.Addr()))
	if err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}

	return client, mr
}

// requireTTL fails unless key exists and carries an expiry.
func requireTTL(t *testing.T, mr *miniredis.Miniredis, key string) {
	t.Helper()

	if !mr.Exists(key) {
		t.Fatalf("expected key %s to exist", key)
	}
	if mr.TTL(key) <= 0 {
		t.Fatalf("expected key %s to carry a TTL", key)
	}
}
