package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/family-ledger/internal/core/events"
)

// Publisher is the outbound side of a message broker.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// Envelope is the wire shape of a forwarded event.
type Envelope struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// Forwarder relays bus events to the broker, routed by event type.
type Forwarder struct {
	publisher Publisher
	logger    *slog.Logger
}

func NewForwarder(publisher Publisher, logger *slog.Logger) *Forwarder {
	return &Forwarder{publisher: publisher, logger: logger}
}

// Register subscribes the forwarder to every ledger event type.
func (f *Forwarder) Register(bus *events.EventBus) {
	bus.SubscribeMany(events.LedgerEventTypes, f.Handle)
}

func (f *Forwarder) Handle(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(Envelope{
		ID:         event.EventID(),
		Type:       event.EventType(),
		OccurredAt: event.OccurredAt(),
		Data:       event.Payload(),
	})
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.EventType(), err)
	}

	if err := f.publisher.Publish(ctx, event.EventType(), body); err != nil {
		return fmt.Errorf("forward event %s: %w", event.EventType(), err)
	}

	f.logger.DebugContext(ctx, "event forwarded", "event_type", event.EventType(), "event_id", event.EventID())
	return nil
}
