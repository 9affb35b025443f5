package notification

import (
	"context"
	"fmt"

	"github.com/Nikk8744/F-T-T-sub000/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type envelope struct {
	UserID  uint            `json:"userId"`
	Payload json.RawMessage `json:"payload"`
}

// RedisBroker fans live pushes out to every instance through a redis channel.
// Each instance runs Run to relay messages into its own Directory.
type RedisBroker struct {
	client  *redis.Client
	channel string
	local   *LocalBroker
	logger  logger.Logger
}

func NewRedisBroker(client *redis.Client, channel string, local *LocalBroker, l logger.Logger) *RedisBroker {
	return &RedisBroker{
		client:  client,
		channel: channel,
		local:   local,
		logger:  l,
	}
}

func (b *RedisBroker) Publish(ctx context.Context, userID uint, payload []byte) error {
	data, err := encodeEnvelope(userID, payload)
	if err != nil {
		return err
	}
	if err := b.client.Publish(ctx, b.channel, data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", b.channel, err)
	}
	return nil
}

// Run blocks until ctx is cancelled
func (b *RedisBroker) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.channel, err)
	}
	b.logger.Info("Subscribed to live channel %s", b.channel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.relay(ctx, msg.Payload)
		}
	}
}

func (b *RedisBroker) relay(ctx context.Context, raw string) {
	env, err := decodeEnvelope([]byte(raw))
	if err != nil {
		b.logger.Warn("dropping malformed live message: %v", err)
		return
	}
	if err := b.local.Publish(ctx, env.UserID, env.Payload); err != nil {
		b.logger.Warn("live push to user %d failed: %v", env.UserID, err)
	}
}

func encodeEnvelope(userID uint, payload []byte) ([]byte, error) {
	data, err := json.Marshal(envelope{UserID: userID, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("encode live envelope: %w", err)
	}
	return data, nil
}

func decodeEnvelope(data []byte) (envelope, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return env, err
	}
	if env.UserID == 0 {
		return env, fmt.Errorf("envelope without user id")
	}
	return env, nil
}
