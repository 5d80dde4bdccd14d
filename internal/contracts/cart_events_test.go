package contracts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

func addedNotification(now time.Time) cart.Notification {
	line := cart.LineItem{
		ID:            "line-1",
		ProductID:     2,
		ProductName:   "Chocolate Celebration Cake",
		Quantity:      2,
		Customization: cart.Customization{"size": "8 inch"},
		UnitPrice:     decimal.NewFromInt(45),
	}
	return cart.Notification{
		Kind:       cart.EventItemAdded,
		CartID:     "cart-1",
		LineID:     line.ID,
		Line:       &line,
		OccurredAt: now,
	}
}

func TestBuildCartEvent(t *testing.T) {
	now := time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

	env, err := BuildCartEvent(addedNotification(now), EnvelopeOptions{
		Sequence:      7,
		CorrelationID: "53b0fd3e-8d6b-49af-8c1f-12cf4182c2f7",
		EventID:       "73b0fd3e-8d6b-49af-8c1f-12cf4182c2f7",
	})
	require.NoError(t, err)

	assert.Equal(t, CartItemAddedEventName, env.EventName)
	assert.Equal(t, CartEventVersion, env.EventVersion)
	assert.Equal(t, "73b0fd3e-8d6b-49af-8c1f-12cf4182c2f7", env.EventID)
	assert.Equal(t, StorefrontProducer, env.Producer)
	assert.Equal(t, "cart-1", env.PartitionKey)
	assert.Equal(t, int64(7), env.Sequence)
	assert.Equal(t, "bakery.cart.item-added.v1", env.Schema)
	assert.Equal(t, now, env.Payload.Timestamp)
	require.NotNil(t, env.Payload.Line)
	assert.Equal(t, "45.00", env.Payload.Line.UnitPrice)
	assert.Equal(t, "8 inch", env.Payload.Line.Customization["size"])
	assert.NoError(t, env.Validate())
}

func TestBuildCartEvent_Defaults(t *testing.T) {
	env, err := BuildCartEvent(cart.Notification{Kind: cart.EventCartCleared, CartID: "cart-9"}, EnvelopeOptions{Sequence: 1})
	require.NoError(t, err)

	_, err = uuid.Parse(env.EventID)
	assert.NoError(t, err)
	assert.False(t, env.OccurredAt.IsZero())
	assert.Nil(t, env.Payload.Line)
	assert.NoError(t, env.Validate())

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), `"line"`)
}

func TestBuildCartEvent_UnknownKind(t *testing.T) {
	_, err := BuildCartEvent(cart.Notification{Kind: "checked-out", CartID: "c"}, EnvelopeOptions{})
	assert.Error(t, err)
}

func TestEventEnvelope_Validate(t *testing.T) {
	now := time.Now()
	makeEnvelope := func() EventEnvelope {
		env, err := BuildCartEvent(addedNotification(now), EnvelopeOptions{Sequence: 1})
		require.NoError(t, err)
		return env
	}

	tests := []struct {
		name   string
		mutate func(*EventEnvelope)
	}{
		{name: "bad event id", mutate: func(e *EventEnvelope) { e.EventID = "nope" }},
		{name: "wrong version", mutate: func(e *EventEnvelope) { e.EventVersion = 2 }},
		{name: "missing partition key", mutate: func(e *EventEnvelope) { e.PartitionKey = "" }},
		{name: "missing sequence", mutate: func(e *EventEnvelope) { e.Sequence = 0 }},
		{name: "cart id mismatch", mutate: func(e *EventEnvelope) { e.Payload.CartID = "other" }},
		{name: "missing line id", mutate: func(e *EventEnvelope) { e.Payload.LineID = "" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := makeEnvelope()
			tc.mutate(&env)
			assert.Error(t, env.Validate())
		})
	}
}
