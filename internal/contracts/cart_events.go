package contracts

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

const (
	CartItemAddedEventName   = "CartItemAdded"
	CartItemRemovedEventName = "CartItemRemoved"
	CartClearedEventName     = "CartCleared"
	CartEventVersion         = 1
	StorefrontProducer       = "storefront-service"
)

var eventNames = map[cart.EventKind]string{
	cart.EventItemAdded:   CartItemAddedEventName,
	cart.EventItemRemoved: CartItemRemovedEventName,
	cart.EventCartCleared: CartClearedEventName,
}

// EventName maps a cart notification kind to its published event name.
func EventName(kind cart.EventKind) (string, bool) {
	name, ok := eventNames[kind]
	return name, ok
}

type EventEnvelope struct {
	EventName     string           `json:"eventName"`
	EventVersion  int              `json:"eventVersion"`
	EventID       string           `json:"eventId"`
	CorrelationID string           `json:"correlationId,omitempty"`
	Producer      string           `json:"producer"`
	PartitionKey  string           `json:"partitionKey"`
	Sequence      int64            `json:"sequence"`
	OccurredAt    time.Time        `json:"occurredAt"`
	Schema        string           `json:"schema"`
	Payload       CartEventPayload `json:"payload"`
}

type CartEventPayload struct {
	CartID    string    `json:"cartId"`
	LineID    string    `json:"lineId,omitempty"`
	Line      *CartLine `json:"line,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type CartLine struct {
	ProductID     int            `json:"productId"`
	ProductName   string         `json:"productName"`
	Quantity      int            `json:"quantity"`
	UnitPrice     string         `json:"unitPrice"`
	Customization map[string]any `json:"customization,omitempty"`
}

type EnvelopeOptions struct {
	Sequence      int64
	Producer      string
	CorrelationID string
	EventID       string
}

// BuildCartEvent wraps a cart notification in the v1 envelope. The cart id is the partition key.
func BuildCartEvent(n cart.Notification, opts EnvelopeOptions) (EventEnvelope, error) {
	name, ok := EventName(n.Kind)
	if !ok {
		return EventEnvelope{}, fmt.Errorf("unknown cart event kind %q", n.Kind)
	}

	eventID := opts.EventID
	if eventID == "" {
		eventID = uuid.NewString()
	}

	occurredAt := n.OccurredAt.UTC()
	if n.OccurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	producer := opts.Producer
	if producer == "" {
		producer = StorefrontProducer
	}

	payload := CartEventPayload{
		CartID:    n.CartID,
		LineID:    n.LineID,
		Timestamp: occurredAt,
	}
	if n.Line != nil {
		payload.Line = &CartLine{
			ProductID:     n.Line.ProductID,
			ProductName:   n.Line.ProductName,
			Quantity:      n.Line.Quantity,
			UnitPrice:     n.Line.UnitPrice.StringFixed(2),
			Customization: n.Line.Customization.Clone(),
		}
	}

	return EventEnvelope{
		EventName:     name,
		EventVersion:  CartEventVersion,
		EventID:       eventID,
		CorrelationID: opts.CorrelationID,
		Producer:      producer,
		PartitionKey:  n.CartID,
		Sequence:      opts.Sequence,
		OccurredAt:    occurredAt,
		Schema:        fmt.Sprintf("bakery.cart.%s.v%d", n.Kind, CartEventVersion),
		Payload:       payload,
	}, nil
}

func (e EventEnvelope) Validate() error {
	if _, err := uuid.Parse(e.EventID); err != nil {
		return fmt.Errorf("eventId: %w", err)
	}
	if e.EventVersion != CartEventVersion {
		return fmt.Errorf("unexpected eventVersion %d", e.EventVersion)
	}
	if e.PartitionKey == "" {
		return errors.New("missing partitionKey")
	}
	if e.Sequence <= 0 {
		return errors.New("sequence must be positive")
	}
	if e.Payload.CartID != e.PartitionKey {
		return fmt.Errorf("payload cartId %q does not match partitionKey %q", e.Payload.CartID, e.PartitionKey)
	}
	if e.EventName != CartClearedEventName && e.Payload.LineID == "" {
		return fmt.Errorf("%s: missing lineId", e.EventName)
	}
	return nil
}
