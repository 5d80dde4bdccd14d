package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/contracts"
)

const (
	DefaultBufferSize = 256
	publishTimeout    = 5 * time.Second
)

// AsyncNotifier envelopes cart notifications and hands them to broker publishers on a
// background worker. Notify never blocks: when the buffer is full the event is dropped.
type AsyncNotifier struct {
	queue      chan cart.Notification
	publishers []Publisher
	seq        *Sequencer
	logger     *zap.Logger
	producer   string
}

type AsyncOptions struct {
	BufferSize int
	Producer   string
	Sequencer  *Sequencer
}

func NewAsyncNotifier(logger *zap.Logger, publishers []Publisher, opts AsyncOptions) *AsyncNotifier {
	size := opts.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	seq := opts.Sequencer
	if seq == nil {
		seq = NewSequencer()
	}
	return &AsyncNotifier{
		queue:      make(chan cart.Notification, size),
		publishers: publishers,
		seq:        seq,
		logger:     logger,
		producer:   opts.Producer,
	}
}

func (a *AsyncNotifier) Notify(n cart.Notification) {
	select {
	case a.queue <- n:
	default:
		a.logger.Warn("notification buffer full, dropping event",
			zap.String("event", string(n.Kind)),
			zap.String("cart_id", n.CartID),
		)
	}
}

// Run publishes queued notifications until ctx is cancelled, then flushes what is
// already buffered and closes the publishers.
func (a *AsyncNotifier) Run(ctx context.Context) error {
	defer a.closePublishers()
	for {
		select {
		case n := <-a.queue:
			a.publish(ctx, n)
		case <-ctx.Done():
			a.drain()
			return nil
		}
	}
}

func (a *AsyncNotifier) drain() {
	flushCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	for {
		select {
		case n := <-a.queue:
			a.publish(flushCtx, n)
		default:
			return
		}
	}
}

func (a *AsyncNotifier) publish(ctx context.Context, n cart.Notification) {
	env, err := contracts.BuildCartEvent(n, contracts.EnvelopeOptions{
		Sequence:      a.seq.Next(n.CartID),
		Producer:      a.producer,
		CorrelationID: n.CorrelationID,
	})
	if err == nil {
		err = env.Validate()
	}
	if err != nil {
		a.logger.Error("build cart event", zap.Error(err), zap.String("cart_id", n.CartID))
		return
	}

	for _, p := range a.publishers {
		pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
		err := p.Publish(pubCtx, n.Kind, env)
		cancel()
		if err != nil {
			a.logger.Error("publish cart event",
				zap.Error(err),
				zap.String("event_name", env.EventName),
				zap.String("event_id", env.EventID),
				zap.Int64("sequence", env.Sequence),
				zap.String("correlation_id", env.CorrelationID),
			)
		}
	}
}

func (a *AsyncNotifier) closePublishers() {
	for _, p := range a.publishers {
		if err := p.Close(); err != nil {
			a.logger.Warn("close publisher", zap.Error(err))
		}
	}
}
