package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/metroticket/config"
	"github.com/Domenick1991/metroticket/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	historyTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, historyTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		historyTTL: historyTTL,
	}
}

// Client exposes the underlying client for components that share the
// connection, such as the rate limiter store.
func (c *RedisCache) Client() *redis.Client {
	return c.client
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetBookings returns the cached history for a user, or nil on a miss.
func (c *RedisCache) GetBookings(ctx context.Context, userID string) ([]domain.Booking, error) {
	data, err := c.client.Get(ctx, historyKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var bookings []domain.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// versionTTL outlives any history entry so a version never resets under a
// cached list.
const versionTTL = 24 * time.Hour

// BookingsVersion returns the user's history version, 0 when none is recorded.
// Read it before loading the list that will be passed to SetBookings.
func (c *RedisCache) BookingsVersion(ctx context.Context, userID string) (int64, error) {
	v, err := c.client.Get(ctx, historyVersionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetBookings caches the history only while the version is still the one
// read before loading it. A stale list is dropped silently.
func (c *RedisCache) SetBookings(ctx context.Context, userID string, version int64, bookings []domain.Booking) error {
	payload, err := json.Marshal(bookings)
	if err != nil {
		return err
	}

	vKey := historyVersionKey(userID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, vKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, historyKey(userID), payload, c.historyTTL)
			return nil
		})
		return err
	}, vKey)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

// InvalidateBookings drops the cached history and bumps its version.
func (c *RedisCache) InvalidateBookings(ctx context.Context, userID string) error {
	vKey := historyVersionKey(userID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, vKey)
		pipe.Expire(ctx, vKey, versionTTL)
		pipe.Del(ctx, historyKey(userID))
		return nil
	})
	return err
}

// AcquireConfirmLock guards a single purchase attempt so a repeated tap on
// "confirm" does not issue a second ticket while the first is in flight.
func (c *RedisCache) AcquireConfirmLock(ctx context.Context, userID, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, confirmLockKey(userID, key), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseConfirmLock(ctx context.Context, userID, key string) error {
	return c.client.Del(ctx, confirmLockKey(userID, key)).Err()
}

// ConfirmedBooking returns the booking id recorded for an idempotency key, or
// "" when the key has not produced a booking.
func (c *RedisCache) ConfirmedBooking(ctx context.Context, userID, key string) (string, error) {
	id, err := c.client.Get(ctx, confirmedKey(userID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return id, err
}

func (c *RedisCache) RememberConfirmedBooking(ctx context.Context, userID, key, bookingID string, ttl time.Duration) error {
	return c.client.Set(ctx, confirmedKey(userID, key), bookingID, ttl).Err()
}

func historyKey(userID string) string {
	return fmt.Sprintf("cache:bookings:user:%s", userID)
}

func historyVersionKey(userID string) string {
	return fmt.Sprintf("cache:bookings:version:user:%s", userID)
}

func confirmLockKey(userID, key string) string {
	return fmt.Sprintf("lock:confirm:user:%s:key:%s", userID, key)
}

func confirmedKey(userID, key string) string {
	return fmt.Sprintf("idem:booking:user:%s:key:%s", userID, key)
}
