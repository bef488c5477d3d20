package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newSlotHoldService(t *testing.T, ttl time.Duration) (*SlotHoldService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSlotHoldService(client, newTestLogger(), ttl), mr
}

func TestSlotHoldKey(t *testing.T) {
	date := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "slot:hold:7:2024-06-17:09:00:00", SlotHoldKey(7, date, "09:00:00"))
}

func TestSlotHoldService_AcquireExclusive(t *testing.T) {
	svc, mr := newSlotHoldService(t, 10*time.Second)
	ctx := context.Background()
	date := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)

	hold, err := svc.Acquire(ctx, 7, date, "09:00:00")
	require.NoError(t, err)
	require.NotNil(t, hold)
	assert.Equal(t, 10*time.Second, mr.TTL(hold.Key))

	_, err = svc.Acquire(ctx, 7, date, "09:00:00")
	assert.ErrorIs(t, err, ErrSlotHeld)

	// a different slot is independent
	other, err := svc.Acquire(ctx, 7, date, "10:00:00")
	require.NoError(t, err)
	assert.NotEqual(t, hold.Key, other.Key)

	require.NoError(t, svc.Release(ctx, hold))
	assert.False(t, mr.Exists(hold.Key))

	_, err = svc.Acquire(ctx, 7, date, "09:00:00")
	assert.NoError(t, err)
}

func TestSlotHoldService_ReleaseKeepsForeignHold(t *testing.T) {
	svc, mr := newSlotHoldService(t, time.Second)
	ctx := context.Background()
	date := time.Date(2024, 6, 17, 0, 0, 0, 0, time.UTC)

	stale, err := svc.Acquire(ctx, 3, date, "14:00:00")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	fresh, err := svc.Acquire(ctx, 3, date, "14:00:00")
	require.NoError(t, err)

	require.NoError(t, svc.Release(ctx, stale))
	value, err := mr.Get(fresh.Key)
	require.NoError(t, err)
	assert.Equal(t, fresh.Token, value)

	assert.NoError(t, svc.Release(ctx, nil))
}

func TestSlotHoldService_RedisDown(t *testing.T) {
	svc, mr := newSlotHoldService(t, time.Second)
	mr.Close()

	_, err := svc.Acquire(context.Background(), 1, time.Now(), "09:00:00")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSlotHeld)
}

func TestNewSlotHoldService_DefaultTTL(t *testing.T) {
	svc := NewSlotHoldService(nil, newTestLogger(), 0)
	assert.Equal(t, defaultSlotHoldTTL, svc.ttl)
}
