package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"garage-tracker-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultAlertChannel is the pub/sub channel presentation layers subscribe to.
	DefaultAlertChannel = "garage:alerts"
	// DefaultDedupTTL keeps an alert identity reserved long enough to absorb
	// repeated evaluator wakes on the same day.
	DefaultDedupTTL = 48 * time.Hour
)

// RedisDispatcher publishes maintenance alerts with idempotent presentation:
// the alert's stable (vehicle, item, day) key is claimed with SETNX before
// publishing, so re-running the evaluator inside the warning window surfaces
// each alert once.
type RedisDispatcher struct {
	client  *redis.Client
	channel string
	ttl     time.Duration
}

func NewRedisDispatcher(client *redis.Client, channel string, ttl time.Duration) *RedisDispatcher {
	if channel == "" {
		channel = DefaultAlertChannel
	}
	if ttl <= 0 {
		ttl = DefaultDedupTTL
	}
	return &RedisDispatcher{client: client, channel: channel, ttl: ttl}
}

// DialRedis connects and pings a Redis instance.
func DialRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("dial redis %q: %w", addr, err)
	}

	return client, nil
}

// Dispatch claims the alert identity and publishes the alert payload.
// An already-claimed identity is a quiet no-op.
func (d *RedisDispatcher) Dispatch(ctx context.Context, alert domain.Alert) error {
	if d.client == nil {
		return errors.New("redis dispatcher: client is nil")
	}

	dedupKey := "alert:" + alert.Key()
	claimed, err := d.client.SetNX(ctx, dedupKey, alert.Message, d.ttl).Result()
	if err != nil {
		return fmt.Errorf("dispatch alert: claim %q: %w", dedupKey, err)
	}
	if !claimed {
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"vehicle": alert.VehicleName,
		"item":    alert.ItemKey,
		"message": alert.Message,
		"day":     alert.Day.Format("2006-01-02"),
	})
	if err != nil {
		return fmt.Errorf("dispatch alert: encode payload: %w", err)
	}

	if err := d.client.Publish(ctx, d.channel, payload).Err(); err != nil {
		return fmt.Errorf("dispatch alert: publish to %q: %w", d.channel, err)
	}

	return nil
}
