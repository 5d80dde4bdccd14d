package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one merged cart entry: a product/customization pair and its quantity.
// Name, image and price are snapshots taken when the line was first added.
type LineItem struct {
	ID            string          `json:"id"`
	ProductID     int             `json:"productId"`
	ProductName   string          `json:"productName"`
	ProductImage  string          `json:"productImage"`
	Quantity      int             `json:"quantity"`
	Customization Customization   `json:"customization"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
}

// Subtotal is UnitPrice * Quantity, unrounded.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is the ordered line list. Order is insertion order.
type State struct {
	Items []LineItem `json:"items"`
}

func (s State) indexOf(lineID string) int {
	for i := range s.Items {
		if s.Items[i].ID == lineID {
			return i
		}
	}
	return -1
}

type EventKind string

const (
	EventItemAdded   EventKind = "item-added"
	EventItemRemoved EventKind = "item-removed"
	EventCartCleared EventKind = "cart-cleared"
)

// Notification is what the store signals to the presentation layer after a mutation.
type Notification struct {
	Kind       EventKind
	CartID     string
	LineID     string
	Line       *LineItem
	OccurredAt time.Time

	// CorrelationID is the id of the request that caused the change, if any.
	CorrelationID string
}

// Notifier receives store notifications. Implementations must not block.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

type noopNotifier struct{}

func (noopNotifier) Notify(Notification) {}
