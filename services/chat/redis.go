package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func channelName(conversationID string) string { return "chat:" + conversationID }
func unseenKey(userID string) string           { return "unseen:" + userID }
func groupSeenKey(userID string) string        { return "groupseen:" + userID }

// RedisBroadcaster publishes chat events over Redis pub/sub so every API
// instance can serve any subscriber.
type RedisBroadcaster struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisBroadcaster(rdb *redis.Client, logger *zap.Logger) *RedisBroadcaster {
	return &RedisBroadcaster{rdb: rdb, logger: logger}
}

func (b *RedisBroadcaster) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode chat event: %w", err)
	}
	if err := b.rdb.Publish(ctx, channelName(ev.ConversationID), payload).Err(); err != nil {
		return fmt.Errorf("publish chat event: %w", err)
	}
	return nil
}

func (b *RedisBroadcaster) Subscribe(ctx context.Context, conversationID string) (<-chan Event, func(), error) {
	ps := b.rdb.Subscribe(ctx, channelName(conversationID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, nil, fmt.Errorf("subscribe %s: %w", conversationID, err)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		for msg := range ps.Channel() {
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn("Dropping malformed chat event", zap.Error(err))
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, func() { _ = ps.Close() }, nil
}

// RedisUnseenTracker stores direct counters in the hash unseen:{user}
// (field = sender) and group markers in groupseen:{user} (field = group,
// value = unix millis).
type RedisUnseenTracker struct {
	rdb *redis.Client
}

func NewRedisUnseenTracker(rdb *redis.Client) *RedisUnseenTracker {
	return &RedisUnseenTracker{rdb: rdb}
}

func (t *RedisUnseenTracker) IncrDirect(ctx context.Context, recipientID, senderID string) error {
	return t.rdb.HIncrBy(ctx, unseenKey(recipientID), senderID, 1).Err()
}

func (t *RedisUnseenTracker) ResetDirect(ctx context.Context, recipientID, senderID string) error {
	return t.rdb.HDel(ctx, unseenKey(recipientID), senderID).Err()
}

func (t *RedisUnseenTracker) DirectCounts(ctx context.Context, userID string) (map[string]int64, error) {
	raw, err := t.rdb.HGetAll(ctx, unseenKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(raw))
	for sender, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		out[sender] = n
	}
	return out, nil
}

func (t *RedisUnseenTracker) MarkGroupSeen(ctx context.Context, userID, groupID string, at time.Time) error {
	return t.rdb.HSet(ctx, groupSeenKey(userID), groupID, at.UnixMilli()).Err()
}

func (t *RedisUnseenTracker) GroupSeenAt(ctx context.Context, userID, groupID string) (time.Time, error) {
	v, err := t.rdb.HGet(ctx, groupSeenKey(userID), groupID).Int64()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(v), nil
}
