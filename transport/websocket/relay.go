package websocket

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix namespaces the Redis pub/sub channels, one per session
const ChannelPrefix = "game2048:session:"

// RedisRelay shares hub broadcasts between server instances over Redis pub/sub.
// Nothing is stored in Redis.
type RedisRelay struct {
	client *redis.Client
	origin string
	logger *slog.Logger
}

type relayEnvelope struct {
	Origin  string          `json:"origin"`
	Payload json.RawMessage `json:"payload"`
}

// NewRedisRelay wraps an existing client. Each relay gets a random origin
// so an instance ignores its own publications.
func NewRedisRelay(client *redis.Client, logger *slog.Logger) *RedisRelay {
	if logger == nil {
		logger = slog.Default()
	}
	b := make([]byte, 8)
	rand.Read(b)
	return &RedisRelay{
		client: client,
		origin: hex.EncodeToString(b),
		logger: logger,
	}
}

// Channel returns the pub/sub channel for a session
func Channel(sessionID string) string {
	return ChannelPrefix + sessionID
}

// Publish sends a hub frame to every other instance
func (r *RedisRelay) Publish(ctx context.Context, sessionID string, data []byte) error {
	env, err := json.Marshal(relayEnvelope{Origin: r.origin, Payload: data})
	if err != nil {
		return fmt.Errorf("marshal relay envelope: %w", err)
	}
	return r.client.Publish(ctx, Channel(sessionID), env).Err()
}

// Subscribe forwards frames published by other instances to deliver until ctx is done
func (r *RedisRelay) Subscribe(ctx context.Context, deliver func(sessionID string, data []byte)) error {
	sub := r.client.PSubscribe(ctx, ChannelPrefix+"*")
	defer sub.Close()

	// Wait for the subscription to be confirmed
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			sessionID, data, ok := r.decode(msg.Channel, msg.Payload)
			if !ok {
				continue
			}
			deliver(sessionID, data)
		}
	}
}

// decode unwraps an envelope, skipping our own frames and junk
func (r *RedisRelay) decode(channel, payload string) (string, []byte, bool) {
	var env relayEnvelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		r.logger.Debug("ignoring malformed relay frame", "channel", channel, "error", err)
		return "", nil, false
	}
	if env.Origin == r.origin {
		return "", nil, false
	}
	return strings.TrimPrefix(channel, ChannelPrefix), env.Payload, true
}
