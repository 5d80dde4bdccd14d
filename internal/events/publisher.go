package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/contracts"
)

// Publisher ships an enveloped cart event to a broker.
type Publisher interface {
	Publish(ctx context.Context, kind cart.EventKind, env contracts.EventEnvelope) error
	Close() error
}

type RabbitPublisher struct {
	ch *amqp.Channel
}

func NewRabbitPublisher(conn *amqp.Connection) (*RabbitPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err := declareEventsExchange(ch); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare events exchange: %w", err)
	}

	return &RabbitPublisher{ch: ch}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, kind cart.EventKind, env contracts.EventEnvelope) error {
	routingKey, ok := RoutingKey(kind)
	if !ok {
		return fmt.Errorf("no routing key for %q", kind)
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", env.EventName, err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		EventsExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			MessageId:     env.EventID,
			CorrelationId: env.CorrelationID,
			Timestamp:     env.OccurredAt,
			Body:          body,
		},
	)
}

func (p *RabbitPublisher) Close() error {
	return p.ch.Close()
}

// KafkaPublisher writes envelopes to a topic keyed by cart id, so one cart's events stay ordered.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	})
}

func NewKafkaPublisherWithWriter(w *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, kind cart.EventKind, env contracts.EventEnvelope) error {
	data, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal %s envelope: %w", env.EventName, err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(env.PartitionKey),
		Value: data,
		Time:  env.OccurredAt,
		Headers: []kafka.Header{
			{Key: "eventName", Value: []byte(env.EventName)},
			{Key: "kind", Value: []byte(kind)},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
