package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const queueKey = "tickerbrief:events:newsletter"

// Bus is a Redis-backed event queue with at-least-once delivery: an event
// popped but not fully processed before a crash is redelivered by the
// producer retrying, and the run store makes the redelivery safe.
type Bus struct {
	client *redis.Client
}

func NewBus(redisURL string) (*Bus, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	client := redis.NewClient(opt)

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Bus{client: client}, nil
}

func (b *Bus) Close() error {
	return b.client.Close()
}

func (b *Bus) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding event: %w", err)
	}

	return b.client.LPush(ctx, queueKey, payload).Err()
}

// Next blocks up to timeout for the next event. Returns (nil, nil) when the
// queue stayed empty.
func (b *Bus) Next(ctx context.Context, timeout time.Duration) (*Event, error) {
	result, err := b.client.BRPop(ctx, timeout, queueKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var ev Event
	if err := json.Unmarshal([]byte(result[1]), &ev); err != nil {
		return nil, fmt.Errorf("decoding event: %w", err)
	}

	return &ev, nil
}
