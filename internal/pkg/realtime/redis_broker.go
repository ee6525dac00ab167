package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisBroker publishes change events on a Redis pub/sub channel so every
// server instance can deliver them to its own websocket sessions.
type RedisBroker struct {
	local   *LocalBroker
	client  *redis.Client
	pubsub  *redis.PubSub
	channel string
	logger  zerolog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRedisBroker connects to redisURL and starts relaying channel messages
// to local subscribers.
func NewRedisBroker(ctx context.Context, redisURL, channel string, logger zerolog.Logger) (*RedisBroker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	pubsub := client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		_ = client.Close()
		return nil, fmt.Errorf("redis subscribe failed: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	b := &RedisBroker{
		local:   NewLocalBroker(),
		client:  client,
		pubsub:  pubsub,
		channel: channel,
		logger:  logger.With().Str("component", "redis_broker").Logger(),
		cancel:  cancel,
	}
	b.wg.Add(1)
	go b.relay(runCtx)
	return b, nil
}

func (b *RedisBroker) relay(ctx context.Context) {
	defer b.wg.Done()
	ch := b.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				b.logger.Warn().Err(err).Msg("Dropping malformed change event")
				continue
			}
			b.local.dispatch(ev)
		}
	}
}

// Publish sends the event to every instance, this one included
func (b *RedisBroker) Publish(ctx context.Context, ev ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode change event: %w", err)
	}
	if err := b.client.Publish(ctx, b.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish failed: %w", err)
	}
	return nil
}

func (b *RedisBroker) Subscribe(h Handler) func() {
	return b.local.Subscribe(h)
}

func (b *RedisBroker) Close() error {
	b.cancel()
	err := b.pubsub.Close()
	b.wg.Wait()
	if cerr := b.client.Close(); err == nil {
		err = cerr
	}
	return err
}
