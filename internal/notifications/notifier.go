// Package notifications provides real-time booking event delivery.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"time"

	"stayhub/internal/models"

	"github.com/redis/go-redis/v9"
)

// BookingEvent is the payload pushed to guests and hosts when a booking is
// created or changes status.
type BookingEvent struct {
	Type       string               `json:"type"`
	BookingID  uint                 `json:"booking_id"`
	PropertyID uint                 `json:"property_id"`
	Status     models.BookingStatus `json:"status"`
	OccurredAt time.Time            `json:"occurred_at"`
}

// Notifier publishes booking events into per-user Redis channels.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishBookingEvent sends a booking event to a user's channel. A nil Redis
// client makes this a no-op so callers need no availability checks.
func (n *Notifier) PublishBookingEvent(ctx context.Context, userID uint, event BookingEvent) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("bookings:user:%d", userID)
	return n.rdb.Publish(ctx, channel, string(payload)).Err()
}

// StartPatternSubscriber subscribes to pattern `bookings:user:*` and calls
// onMessage for each incoming message with the channel name and payload.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "bookings:user:*")
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
							log.Printf("PANIC in booking subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}
