package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another request is already booking the same doctor slot
var ErrSlotHeld = errors.New("slot is being booked by another request")

// releaseHoldScript deletes the hold only while it still belongs to the caller,
// so an expired hold taken over by another request is never released by mistake.
var releaseHoldScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	RedisSlotHoldKeyPrefix = "slot:hold:"

	defaultSlotHoldTTL = 30 * time.Second
)

// SlotHold is a short-lived claim on one doctor slot
type SlotHold struct {
	Key   string
	Token string
}

// SlotHoldService serializes concurrent writes for the same doctor, date and time.
// The hold only covers the window between availability validation and the insert;
// the partial unique index on appointments is the final guard.
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
	ttl         time.Duration
}

func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger, ttl time.Duration) *SlotHoldService {
	if ttl <= 0 {
		ttl = defaultSlotHoldTTL
	}
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
		ttl:         ttl,
	}
}

// SlotHoldKey returns the Redis key for a doctor slot. clock is the "HH:MM:SS" start time.
func SlotHoldKey(doctorID uint, date time.Time, clock string) string {
	return fmt.Sprintf("%s%d:%s:%s", RedisSlotHoldKeyPrefix, doctorID, date.Format("2006-01-02"), clock)
}

// Acquire claims the slot with SET NX. It returns ErrSlotHeld when the slot is already claimed.
func (s *SlotHoldService) Acquire(ctx context.Context, doctorID uint, date time.Time, clock string) (*SlotHold, error) {
	hold := &SlotHold{
		Key:   SlotHoldKey(doctorID, date, clock),
		Token: uuid.NewString(),
	}

	ok, err := s.redisClient.SetNX(ctx, hold.Key, hold.Token, s.ttl).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire slot hold %s: %+v", hold.Key, err)
		return nil, fmt.Errorf("acquire slot hold %s: %w", hold.Key, err)
	}
	if !ok {
		return nil, ErrSlotHeld
	}

	s.log.Debugf("Acquired slot hold %s", hold.Key)
	return hold, nil
}

// Release drops the hold if the caller still owns it. A nil hold is a no-op.
func (s *SlotHoldService) Release(ctx context.Context, hold *SlotHold) error {
	if hold == nil {
		return nil
	}

	// Uses package-level releaseHoldScript for EVALSHA optimization
	released, err := releaseHoldScript.Run(ctx, s.redisClient, []string{hold.Key}, hold.Token).Int()
	if err != nil {
		s.log.Warnf("Failed to release slot hold %s: %+v", hold.Key, err)
		return fmt.Errorf("release slot hold %s: %w", hold.Key, err)
	}

	if released == 0 {
		s.log.Debugf("Slot hold %s already expired or taken over", hold.Key)
	}
	return nil
}
