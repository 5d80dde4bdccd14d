package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

// Store owns one cart. It is not safe for concurrent use; the owner serializes calls.
type Store struct {
	id       string
	state    State
	notifier Notifier
	newID    func() string
	now      func() time.Time

	correlationID string
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithIDGenerator replaces the uuid line id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(id string, opts ...Option) *Store {
	s := &Store{
		id:       id,
		state:    State{Items: []LineItem{}},
		notifier: noopNotifier{},
		newID:    uuid.NewString,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) ID() string { return s.id }

// AddItem snapshots product into a candidate line and merges or appends it.
// The returned line reflects the merged quantity.
func (s *Store) AddItem(p catalog.Product, c Customization, quantity int) LineItem {
	price := p.BasePrice
	if override, ok := c.PriceOverride(); ok {
		price = override
	}

	candidate := LineItem{
		ID:            s.newID(),
		ProductID:     p.ID,
		ProductName:   p.Name,
		ProductImage:  p.PrimaryImage(),
		Quantity:      quantity,
		Customization: c.Clone(),
		UnitPrice:     price,
	}

	s.state = Apply(s.state, AddLine{Line: candidate})

	line := candidate
	if i := s.state.findMatch(candidate); i >= 0 {
		line = s.state.Items[i]
	}
	s.emit(EventItemAdded, line.ID, &line)
	return line
}

// UpdateQuantity sets the quantity of a line. Quantity <= 0 is RemoveItem.
func (s *Store) UpdateQuantity(lineID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(lineID)
		return
	}
	s.state = Apply(s.state, SetQuantity{LineID: lineID, Quantity: quantity})
}

func (s *Store) RemoveItem(lineID string) {
	var removed *LineItem
	if i := s.state.indexOf(lineID); i >= 0 {
		l := s.state.Items[i]
		removed = &l
	}
	s.state = Apply(s.state, RemoveLine{LineID: lineID})
	s.emit(EventItemRemoved, lineID, removed)
}

func (s *Store) Clear() {
	s.state = Apply(s.state, ClearLines{})
	s.emit(EventCartCleared, "", nil)
}

// Items returns a copy of the line list in insertion order.
func (s *Store) Items() []LineItem {
	out := make([]LineItem, len(s.state.Items))
	for i, l := range s.state.Items {
		l.Customization = l.Customization.Clone()
		out[i] = l
	}
	return out
}

// Line returns the line with the given id.
func (s *Store) Line(lineID string) (LineItem, bool) {
	i := s.state.indexOf(lineID)
	if i < 0 {
		return LineItem{}, false
	}
	return s.state.Items[i], true
}

// Total is the unrounded sum of UnitPrice * Quantity.
func (s *Store) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.state.Items {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (s *Store) ItemCount() int {
	count := 0
	for _, l := range s.state.Items {
		count += l.Quantity
	}
	return count
}

// SetCorrelationID tags the notifications of subsequent calls with id.
func (s *Store) SetCorrelationID(id string) {
	s.correlationID = id
}

func (s *Store) emit(kind EventKind, lineID string, line *LineItem) {
	s.notifier.Notify(Notification{
		Kind:          kind,
		CartID:        s.id,
		LineID:        lineID,
		Line:          line,
		OccurredAt:    s.now().UTC(),
		CorrelationID: s.correlationID,
	})
}
