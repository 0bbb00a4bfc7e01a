package events

import (
	"context"
	"encoding/json"
	"fmt"
)

// Publisher sends an encoded event to an external channel.
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Forwarder relays dispatched events to a pub/sub channel as JSON.
type Forwarder struct {
	publisher Publisher
	channel   string
}

// NewForwarder builds a forwarder for channel.
func NewForwarder(publisher Publisher, channel string) *Forwarder {
	return &Forwarder{publisher: publisher, channel: channel}
}

// Attach subscribes the forwarder to every event type on d.
func (f *Forwarder) Attach(d Dispatcher) {
	for _, eventType := range AllEventTypes {
		d.Subscribe(eventType, f.Handle)
	}
}

// Handle encodes and publishes a single event.
func (f *Forwarder) Handle(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	if err := f.publisher.Publish(ctx, f.channel, body); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	return nil
}
