package checkout

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/cart"
)

// CartSource hands out the cart store of a user.
type CartSource interface {
	Store(ctx context.Context, userID string) (*cart.Store, error)
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithReference overrides the confirmation reference generator.
func WithReference(ref func() string) Option {
	return func(m *Manager) { m.reference = ref }
}

func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func WithValidator(v *validator.Validate) Option {
	return func(m *Manager) { m.validate = v }
}

// RandomReference returns "MT-" followed by seven random digits.
func RandomReference() string {
	return fmt.Sprintf("MT-%07d", rand.IntN(10_000_000))
}

// Manager keeps at most one checkout session per user.
type Manager struct {
	carts     CartSource
	sink      BookingSink
	validate  *validator.Validate
	now       func() time.Time
	reference func() string
	log       *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(carts CartSource, sink BookingSink, opts ...Option) *Manager {
	m := &Manager{
		carts:     carts,
		sink:      sink,
		now:       time.Now,
		reference: RandomReference,
		log:       zap.NewNop(),
		sessions:  make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.validate == nil {
		m.validate = NewValidator()
	}
	return m
}

// Begin opens a fresh session on the details step, replacing any previous
// one. An empty cart yields ErrEmptyCart and undated entries a
// *MissingDatesError.
func (m *Manager) Begin(ctx context.Context, userID string) (*Session, error) {
	store, err := m.carts.Store(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := checkCart(store.List()); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if prev, ok := m.sessions[userID]; ok {
		if err := prev.retire(); err != nil {
			return nil, err
		}
	}
	s := &Session{
		userID:    userID,
		store:     store,
		sink:      m.sink,
		validate:  m.validate,
		now:       m.now,
		reference: m.reference,
		log:       m.log,
		step:      StepDetails,
	}
	s.hold = store.Subscribe(cart.ListenerFunc(func() {}))
	m.sessions[userID] = s
	return s, nil
}

func (m *Manager) Session(userID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[userID]
	if !ok {
		return nil, ErrNoSession
	}
	return s, nil
}

// Abandon drops the user's session. A session that is finalizing cannot be
// abandoned.
func (m *Manager) Abandon(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userID]; ok {
		if err := s.retire(); err != nil {
			return err
		}
	}
	delete(m.sessions, userID)
	return nil
}
