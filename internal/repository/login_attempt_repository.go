package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginFailuresPrefix = "login:failures:"

// incrementScript sets the expiry only on the first hit so the window is
// fixed. It avoids EXPIRE NX, which needs Redis 7.
var incrementScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// LoginAttemptRepository keeps short-lived login attempt counters in Redis.
type LoginAttemptRepository struct {
	client redis.Cmdable
}

// NewLoginAttemptRepository wraps a Redis client.
func NewLoginAttemptRepository(client redis.Cmdable) *LoginAttemptRepository {
	return &LoginAttemptRepository{client: client}
}

// Increment bumps the counter for key and returns the new value. The window
// starts at the first attempt and is not extended by later ones.
func (r *LoginAttemptRepository) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	count, err := incrementScript.Run(ctx, r.client, []string{loginFailuresPrefix + key}, window.Milliseconds()).Int()
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Reset clears the counter for key.
func (r *LoginAttemptRepository) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, loginFailuresPrefix+key).Err()
}
