package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestRegistry_AcquireReusesSession(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))

	a := r.Acquire("s1")
	b := r.Acquire("s1")
	c := r.Acquire("s2")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, "s1", a.Cart.ID())
	assert.Equal(t, 2, r.Len())

	_, ok := r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_SessionsAreIsolated(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	p := catalog.Product{ID: 1, Name: "Cake", BasePrice: decimal.NewFromInt(20)}

	r.Acquire("s1").Cart.AddItem(p, nil, 2)

	assert.Equal(t, 2, r.Acquire("s1").Cart.ItemCount())
	assert.Equal(t, 0, r.Acquire("s2").Cart.ItemCount())
}

func TestRegistry_NotifierIsWired(t *testing.T) {
	var kinds []cart.EventKind
	r := NewRegistry(zaptest.NewLogger(t), WithNotifier(cart.NotifierFunc(func(n cart.Notification) {
		kinds = append(kinds, n.Kind)
	})))

	s := r.Acquire("s1")
	s.Cart.AddItem(catalog.Product{ID: 1, BasePrice: decimal.NewFromInt(5)}, nil, 1)
	s.Cart.Clear()

	assert.Equal(t, []cart.EventKind{cart.EventItemAdded, cart.EventCartCleared}, kinds)
}

func TestRegistry_SweepEvictsIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	var active []int
	var evicted []string
	r := NewRegistry(zaptest.NewLogger(t),
		WithClock(clock.Now),
		WithIdleTTL(10*time.Minute),
		WithActiveObserver(func(n int) { active = append(active, n) }),
		WithEvictHook(func(id string) { evicted = append(evicted, id) }),
	)

	r.Acquire("old")
	clock.Advance(8 * time.Minute)
	r.Acquire("fresh")
	clock.Advance(4 * time.Minute)

	assert.Equal(t, 1, r.Sweep())
	assert.Equal(t, []string{"old"}, evicted)
	assert.Equal(t, []int{1, 2, 1}, active)

	_, ok := r.Lookup("old")
	assert.False(t, ok)
	_, ok = r.Lookup("fresh")
	assert.True(t, ok)

	assert.Equal(t, 0, r.Sweep())
}

func TestRegistry_AcquireRefreshesLastSeen(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(zaptest.NewLogger(t), WithClock(clock.Now), WithIdleTTL(time.Minute))

	r.Acquire("s1")
	clock.Advance(50 * time.Second)
	r.Acquire("s1")
	clock.Advance(50 * time.Second)

	assert.Equal(t, 0, r.Sweep())
}

func TestRegistry_SweepKeepsSessionInUse(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	r := NewRegistry(zaptest.NewLogger(t), WithClock(clock.Now), WithIdleTTL(time.Minute))
	p := catalog.Product{ID: 1, BasePrice: decimal.NewFromInt(3)}

	err := r.Do("s1", func(s *Session) error {
		clock.Advance(5 * time.Minute)
		assert.Equal(t, 0, r.Sweep())
		s.Cart.AddItem(p, nil, 2)
		return nil
	})
	require.NoError(t, err)

	s, ok := r.Lookup("s1")
	require.True(t, ok)
	assert.Equal(t, 2, s.Cart.ItemCount())

	// finishing the call counts as activity
	assert.Equal(t, 0, r.Sweep())
	clock.Advance(2 * time.Minute)
	assert.Equal(t, 1, r.Sweep())
}

func TestSession_DoSerializes(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))
	s := r.Acquire("s1")
	p := catalog.Product{ID: 1, BasePrice: decimal.NewFromInt(1)}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(s *Session) error {
				s.Cart.AddItem(p, nil, 1)
				return nil
			})
		}()
	}
	wg.Wait()

	require.Len(t, s.Cart.Items(), 1)
	assert.Equal(t, 50, s.Cart.ItemCount())
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t), WithIdleTTL(time.Millisecond))
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
