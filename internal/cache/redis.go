// Package cache publishes trick events to Redis: an ordered action list per
// run for replay, and a shared channel for live consumers.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jason-s-yu/onetrick/internal/sim"
)

// EventsChannel is the pub/sub channel every action record is published on.
const EventsChannel = "onetrick:events"

// RunKey is the list holding a run's action records in order.
func RunKey(runID uuid.UUID) string {
	return fmt.Sprintf("onetrick:run:%s:events", runID)
}

// ActionRecord is the stored form of one event.
type ActionRecord struct {
	RunID       uuid.UUID     `json:"runId"`
	ActionIndex int           `json:"actionIndex"`
	ActionType  sim.EventType `json:"actionType"`
	Event       sim.Event     `json:"event"`
	Timestamp   int64         `json:"timestamp"` // unix millis
}

// Client is the subset of *redis.Client the sink uses.
type Client interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisSink implements sim.Sink.
type RedisSink struct {
	rdb     Client
	timeout time.Duration
	now     func() time.Time
}

// NewRedisSink wraps a Redis client. Each publish is bounded by a short timeout.
func NewRedisSink(rdb Client) *RedisSink {
	return &RedisSink{rdb: rdb, timeout: 2 * time.Second, now: time.Now}
}

// Connect parses a redis:// URL and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// Record appends the event to the run's list and announces it on EventsChannel.
func (s *RedisSink) Record(ctx context.Context, runID uuid.UUID, ev sim.Event) error {
	rec := ActionRecord{
		RunID:       runID,
		ActionIndex: ev.Seq,
		ActionType:  ev.Type,
		Event:       ev,
		Timestamp:   s.now().UnixMilli(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action %d: %w", ev.Seq, err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.rdb.RPush(ctx, RunKey(runID), data).Err(); err != nil {
		return fmt.Errorf("push action %d: %w", ev.Seq, err)
	}
	if err := s.rdb.Publish(ctx, EventsChannel, data).Err(); err != nil {
		return fmt.Errorf("publish action %d: %w", ev.Seq, err)
	}
	return nil
}
