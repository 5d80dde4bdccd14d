package events

import (
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

const (
	EventsExchange            = "bakery.events"
	CartItemAddedRoutingKey   = "cart.item-added.v1"
	CartItemRemovedRoutingKey = "cart.item-removed.v1"
	CartClearedRoutingKey     = "cart.cleared.v1"
	CartEventsTopic           = "bakery.cart.events"
)

var routingKeys = map[cart.EventKind]string{
	cart.EventItemAdded:   CartItemAddedRoutingKey,
	cart.EventItemRemoved: CartItemRemovedRoutingKey,
	cart.EventCartCleared: CartClearedRoutingKey,
}

// RoutingKey returns the AMQP routing key a notification kind is published under.
func RoutingKey(kind cart.EventKind) (string, bool) {
	key, ok := routingKeys[kind]
	return key, ok
}

func declareEventsExchange(ch *amqp.Channel) error {
	return ch.ExchangeDeclare(
		EventsExchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
}
