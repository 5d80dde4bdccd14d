package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/designer"
)

const DefaultIdleTTL = 30 * time.Minute

// Session is one shopper's cart and cake designer. Callers serialize access with Do.
type Session struct {
	ID       string
	Cart     *cart.Store
	Designer *designer.Configurator

	mu sync.Mutex
}

// Do runs fn while holding the session lock, so requests for one session apply in order.
func (s *Session) Do(fn func(s *Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

type entry struct {
	session  *Session
	lastSeen time.Time
	inUse    int
}

type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry

	logger   *zap.Logger
	notifier cart.Notifier
	idleTTL  time.Duration
	now      func() time.Time
	observe  func(active int)
	onEvict  func(id string)
}

type Option func(*Registry)

// WithNotifier sets the notifier every new session's cart reports to.
func WithNotifier(n cart.Notifier) Option {
	return func(r *Registry) { r.notifier = n }
}

func WithIdleTTL(ttl time.Duration) Option {
	return func(r *Registry) {
		if ttl > 0 {
			r.idleTTL = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithActiveObserver is called with the session count after every create or evict.
func WithActiveObserver(fn func(active int)) Option {
	return func(r *Registry) { r.observe = fn }
}

func WithEvictHook(fn func(id string)) Option {
	return func(r *Registry) { r.onEvict = fn }
}

func NewRegistry(logger *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		logger:   logger,
		idleTTL:  DefaultIdleTTL,
		now:      time.Now,
		observe:  func(int) {},
		onEvict:  func(string) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// Acquire returns the session for id, creating it when absent, and marks it as seen.
func (r *Registry) Acquire(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.acquireLocked(id).session
}

// Do runs fn on the session for id under its lock. The session cannot be evicted
// until fn returns.
func (r *Registry) Do(id string, fn func(s *Session) error) error {
	r.mu.Lock()
	e := r.acquireLocked(id)
	e.inUse++
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		e.inUse--
		e.lastSeen = r.now()
		r.mu.Unlock()
	}()
	return e.session.Do(fn)
}

func (r *Registry) acquireLocked(id string) *entry {
	now := r.now()
	if e, ok := r.sessions[id]; ok {
		e.lastSeen = now
		return e
	}

	opts := []cart.Option{cart.WithClock(r.now)}
	if r.notifier != nil {
		opts = append(opts, cart.WithNotifier(r.notifier))
	}
	s := &Session{
		ID:       id,
		Cart:     cart.NewStore(id, opts...),
		Designer: designer.New(designer.WithClock(r.now)),
	}
	e := &entry{session: s, lastSeen: now}
	r.sessions[id] = e
	r.logger.Debug("session created", zap.String("session_id", id))
	r.observe(len(r.sessions))
	return e
}

// Lookup returns an existing session without creating or touching it.
func (r *Registry) Lookup(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	return e.session, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many were removed.
// Sessions with a Do call in flight are kept.
func (r *Registry) Sweep() int {
	r.mu.Lock()
	cutoff := r.now().Add(-r.idleTTL)
	var evicted []string
	for id, e := range r.sessions {
		if e.inUse == 0 && e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			evicted = append(evicted, id)
		}
	}
	active := len(r.sessions)
	r.mu.Unlock()

	for _, id := range evicted {
		r.onEvict(id)
	}
	if len(evicted) > 0 {
		r.logger.Info("evicted idle sessions", zap.Int("evicted", len(evicted)), zap.Int("active", active))
		r.observe(active)
	}
	return len(evicted)
}

// Run sweeps idle sessions periodically until ctx is cancelled.
func (r *Registry) Run(ctx context.Context) error {
	interval := r.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}
