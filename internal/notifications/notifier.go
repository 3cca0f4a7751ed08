// Package notifications publishes domain events to users and administrators
// over Redis pub/sub and streams them to admin websocket clients.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

const (
	userChannelPrefix = "rewear:user:"
	// AdminChannel carries moderation events for every administrator.
	AdminChannel = "rewear:admin"
)

// Publisher is the subset of Notifier used by services.
type Publisher interface {
	PublishUser(ctx context.Context, userID string, event Event) error
	PublishAdmin(ctx context.Context, event Event) error
}

// Notifier provides helpers to publish notifications into Redis channels.
// Without Redis, messages are handed to the local sink instead.
type Notifier struct {
	rdb *redis.Client

	mu   sync.RWMutex
	sink func(channel, payload string)
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// UserChannel derives the Redis channel name for a user.
func UserChannel(userID string) string {
	return userChannelPrefix + userID
}

// PublishUser sends an event to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID string, event Event) error {
	return n.publish(ctx, UserChannel(userID), event)
}

// PublishAdmin sends an event to the administrators' channel.
func (n *Notifier) PublishAdmin(ctx context.Context, event Event) error {
	return n.publish(ctx, AdminChannel, event)
}

func (n *Notifier) publish(ctx context.Context, channel string, event Event) error {
	if n == nil {
		return nil
	}
	payload, err := event.Encode()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if n.rdb == nil {
		n.mu.RLock()
		sink := n.sink
		n.mu.RUnlock()
		if sink != nil {
			sink(channel, payload)
		}
		return nil
	}
	return n.rdb.Publish(ctx, channel, payload).Err()
}

// StartSubscriber subscribes to user and admin channels and calls onMessage
// for each incoming message until ctx is cancelled. Without Redis, onMessage
// becomes the local sink.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(channel, payload string)) error {
	if n.rdb == nil {
		n.mu.Lock()
		n.sink = onMessage
		n.mu.Unlock()
		return nil
	}

	sub := n.rdb.PSubscribe(ctx, userChannelPrefix+"*", AdminChannel)
	// wait for the subscription so publishes right after start are not lost
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe notifications: %w", err)
	}
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							slog.Error("panic in notification subscriber",
								slog.Any("panic", r), slog.String("stack", string(debug.Stack())))
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// UserFromChannel extracts the user id from a user channel name.
func UserFromChannel(channel string) (string, bool) {
	id, ok := strings.CutPrefix(channel, userChannelPrefix)
	return id, ok && id != ""
}
