package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event is published on every session-mutating operation (login, logout,
// forced logout). Subscribers compare the session id against their own and
// re-validate their local session when it differs.
type Event struct {
	SessionID string    `json:"session_id"`
	At        time.Time `json:"at"`
}

// EventBus broadcasts session events over redis pub/sub so every API
// instance (and long-lived client connection) observes session changes,
// regardless of which instance handled the mutation.
type EventBus struct {
	rdb     *redis.Client
	channel string
}

func NewEventBus(rdb *redis.Client) *EventBus {
	return &EventBus{rdb: rdb, channel: "sessions.events"}
}

// Publish is best-effort: a bus outage must not fail the auth operation
// that triggered it. Callers log the returned error and move on.
func (b *EventBus) Publish(ctx context.Context, sessionID string, at time.Time) error {
	payload, err := json.Marshal(Event{SessionID: sessionID, At: at.UTC()})
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

// Subscribe delivers decoded events until ctx is cancelled. Malformed
// payloads are dropped.
func (b *EventBus) Subscribe(ctx context.Context) (<-chan Event, func() error) {
	sub := b.rdb.Subscribe(ctx, b.channel)
	out := make(chan Event)
	go forwardEvents(ctx, sub.Channel(), out)
	return out, sub.Close
}

// forwardEvents decodes pub/sub payloads onto out until the input channel
// closes or ctx is cancelled. out is closed on return.
func forwardEvents(ctx context.Context, in <-chan *redis.Message, out chan<- Event) {
	defer close(out)
	for msg := range in {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			continue
		}
		select {
		case out <- ev:
		case <-ctx.Done():
			return
		}
	}
}
