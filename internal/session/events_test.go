package session

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func publishedPayload(t *testing.T, sessionID string) string {
	t.Helper()
	payload, err := json.Marshal(Event{SessionID: sessionID, At: time.Now().UTC()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(payload)
}

func TestForwardEventsDeliversDecodedEvents(t *testing.T) {
	in := make(chan *redis.Message, 2)
	out := make(chan Event, 2)

	in <- &redis.Message{Payload: publishedPayload(t, "sid-1")}
	in <- &redis.Message{Payload: publishedPayload(t, "sid-2")}
	close(in)

	forwardEvents(context.Background(), in, out)

	first, ok := <-out
	if !ok || first.SessionID != "sid-1" {
		t.Fatalf("expected sid-1 first, got %+v (ok=%v)", first, ok)
	}
	second := <-out
	if second.SessionID != "sid-2" {
		t.Fatalf("expected sid-2, got %+v", second)
	}
	if _, open := <-out; open {
		t.Fatal("out should be closed after input closes")
	}
}

func TestForwardEventsDropsMalformedPayloads(t *testing.T) {
	in := make(chan *redis.Message, 3)
	out := make(chan Event, 3)

	in <- &redis.Message{Payload: "{not json"}
	in <- &redis.Message{Payload: publishedPayload(t, "sid-1")}
	in <- &redis.Message{Payload: ""}
	close(in)

	forwardEvents(context.Background(), in, out)

	var got []Event
	for ev := range out {
		got = append(got, ev)
	}
	if len(got) != 1 || got[0].SessionID != "sid-1" {
		t.Fatalf("expected only the well-formed event, got %+v", got)
	}
}

func TestForwardEventsStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	in := make(chan *redis.Message, 1)
	out := make(chan Event) // unbuffered: delivery would block

	in <- &redis.Message{Payload: publishedPayload(t, "sid-1")}
	cancel()

	done := make(chan struct{})
	go func() {
		forwardEvents(ctx, in, out)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("forwardEvents did not stop on cancellation")
	}
}
