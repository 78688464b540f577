package auth_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/admission-service/internal/auth"
	"github.com/spec-kit/admission-service/internal/config"
)

type memoryAttempts struct {
	mu      sync.Mutex
	counts  map[string]int
	windows map[string]time.Duration
	err     error
}

func newMemoryAttempts() *memoryAttempts {
	return &memoryAttempts{counts: map[string]int{}, windows: map[string]time.Duration{}}
}

func (m *memoryAttempts) Increment(_ context.Context, key string, window time.Duration) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.counts[key]++
	m.windows[key] = window
	return m.counts[key], nil
}

func (m *memoryAttempts) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.counts, key)
	return nil
}

func throttleConfig(max int) config.AuthConfig {
	return config.AuthConfig{LoginMaxFailures: max, LoginWindowMinutes: 15}
}

func TestLoginThrottle_BlocksAfterMaxFailures(t *testing.T) {
	ctx := context.Background()
	store := newMemoryAttempts()
	throttle := auth.NewLoginThrottle(store, throttleConfig(3), nil)

	for i := 0; i < 3; i++ {
		assert.True(t, throttle.Allow(ctx, "a@x.com"), "attempt %d", i+1)
	}
	assert.False(t, throttle.Allow(ctx, "a@x.com"))
	assert.True(t, throttle.Allow(ctx, "b@x.com"), "other emails are unaffected")
	assert.Equal(t, 15*time.Minute, store.windows["a@x.com"])
}

func TestLoginThrottle_ConcurrentAttemptsRespectLimit(t *testing.T) {
	ctx := context.Background()
	throttle := auth.NewLoginThrottle(newMemoryAttempts(), throttleConfig(3), nil)

	var (
		wg      sync.WaitGroup
		allowed atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if throttle.Allow(ctx, "a@x.com") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(3), allowed.Load())
}

func TestLoginThrottle_SuccessResets(t *testing.T) {
	ctx := context.Background()
	throttle := auth.NewLoginThrottle(newMemoryAttempts(), throttleConfig(2), nil)

	assert.True(t, throttle.Allow(ctx, "a@x.com"))
	assert.True(t, throttle.Allow(ctx, "a@x.com"))
	throttle.Success(ctx, "a@x.com")
	assert.True(t, throttle.Allow(ctx, "a@x.com"))
	assert.True(t, throttle.Allow(ctx, "a@x.com"))
	assert.False(t, throttle.Allow(ctx, "a@x.com"))
}

func TestLoginThrottle_FailsOpen(t *testing.T) {
	ctx := context.Background()
	store := newMemoryAttempts()
	store.err = errors.New("redis down")
	throttle := auth.NewLoginThrottle(store, throttleConfig(1), nil)

	assert.True(t, throttle.Allow(ctx, "a@x.com"))
	assert.True(t, throttle.Allow(ctx, "a@x.com"))
	assert.NotPanics(t, func() { throttle.Success(ctx, "a@x.com") })
}

func TestLoginThrottle_Disabled(t *testing.T) {
	ctx := context.Background()
	throttle := auth.NewLoginThrottle(newMemoryAttempts(), throttleConfig(0), nil)
	assert.Nil(t, throttle)

	for i := 0; i < 10; i++ {
		assert.True(t, throttle.Allow(ctx, "a@x.com"))
	}
	throttle.Success(ctx, "a@x.com")
}
