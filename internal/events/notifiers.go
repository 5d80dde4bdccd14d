package events

import (
	"sync"

	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

// LogNotifier writes one structured log line per cart notification.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (l *LogNotifier) Notify(n cart.Notification) {
	fields := []zap.Field{
		zap.String("event", string(n.Kind)),
		zap.String("cart_id", n.CartID),
	}
	if n.LineID != "" {
		fields = append(fields, zap.String("line_id", n.LineID))
	}
	if n.Line != nil {
		fields = append(fields,
			zap.Int("product_id", n.Line.ProductID),
			zap.String("product_name", n.Line.ProductName),
			zap.Int("quantity", n.Line.Quantity),
		)
	}
	l.logger.Info("cart notification", fields...)
}

// Fanout delivers every notification to each notifier in order.
type Fanout []cart.Notifier

func (f Fanout) Notify(n cart.Notification) {
	for _, target := range f {
		target.Notify(n)
	}
}

// Recorder keeps every notification it receives. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []cart.Notification
}

func (r *Recorder) Notify(n cart.Notification) {
	r.mu.Lock()
	r.events = append(r.events, n)
	r.mu.Unlock()
}

func (r *Recorder) Notifications() []cart.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]cart.Notification(nil), r.events...)
}

func (r *Recorder) Kinds() []cart.EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]cart.EventKind, 0, len(r.events))
	for _, n := range r.events {
		kinds = append(kinds, n.Kind)
	}
	return kinds
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
