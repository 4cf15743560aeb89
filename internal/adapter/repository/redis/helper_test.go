package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	redislib "github.com/redis/go-redis/v9"
)

// newTestStore runs an in-process redis and returns a store over it plus
// the raw client for seeding and inspecting keys.
func newTestStore(t *testing.T) (*IdempotencyStore, *redislib.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewIdempotencyStore(client, nil), client
}
