// Package cart holds the pending purchase selections of one user session and
// tells interested observers whenever they change.
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

// SlotKey names the persisted slot that holds the serialized cart.
const SlotKey = "medictrip-cart"

var (
	ErrInvalidPackage   = apperr.Validation("package id is required")
	ErrAlreadyInCart    = apperr.Conflict("package already in cart")
	ErrEntryNotFound    = apperr.NotFound("cart entry not found")
	ErrTravelDateInPast = apperr.Validation("travel date cannot be in the past")
)

// Entry is a package selected for purchase. TravelDate is nil until chosen.
type Entry struct {
	models.Package
	TravelDate *time.Time `json:"travel_date,omitempty"`
}

func (e Entry) clone() Entry {
	e.Includes = slices.Clone(e.Includes)
	if e.TravelDate != nil {
		d := *e.TravelDate
		e.TravelDate = &d
	}
	return e
}

// Slot is the durable storage behind a Store. Load returns an empty payload
// when nothing has been saved yet.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, payload []byte) error
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Store is the single source of truth for one user's cart. Every mutation is
// written through to the slot before observers are notified.
type Store struct {
	slot Slot
	now  func() time.Time
	log  *zap.Logger

	mu      sync.Mutex
	entries []Entry

	subMu sync.Mutex
	subs  []*Subscription
}

// Open restores a store from its slot.
func Open(ctx context.Context, slot Slot, opts ...Option) (*Store, error) {
	s := &Store{slot: slot, now: time.Now, log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	payload, err := slot.Load(ctx)
	if err != nil {
		return nil, apperr.Remote("load cart", err)
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &s.entries); err != nil {
			s.log.Warn("discarding unreadable cart slot", zap.Error(err))
			s.entries = nil
		}
	}
	return s, nil
}

func (s *Store) List() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Total is the sum of entry prices, recomputed on every call.
func (s *Store) Total() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, e := range s.entries {
		total = total.Add(e.Price)
	}
	return total
}

func (s *Store) Add(ctx context.Context, pkg models.Package) error {
	if pkg.ID == "" {
		return ErrInvalidPackage
	}
	return s.mutate(ctx, func(entries []Entry) ([]Entry, error) {
		if indexOf(entries, pkg.ID) >= 0 {
			return nil, ErrAlreadyInCart
		}
		pkg.Includes = slices.Clone(pkg.Includes)
		return append(entries, Entry{Package: pkg}), nil
	})
}

// Remove drops the entry for id. Removing an id that is not in the cart is
// not an error.
func (s *Store) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, func(entries []Entry) ([]Entry, error) {
		return slices.DeleteFunc(entries, func(e Entry) bool { return e.ID == id }), nil
	})
}

func (s *Store) SetTravelDate(ctx context.Context, id string, date time.Time) error {
	day := Day(date)
	if day.Before(Day(s.now())) {
		return ErrTravelDateInPast
	}
	return s.mutate(ctx, func(entries []Entry) ([]Entry, error) {
		i := indexOf(entries, id)
		if i < 0 {
			return nil, ErrEntryNotFound
		}
		entries[i].TravelDate = &day
		return entries, nil
	})
}

func (s *Store) Clear(ctx context.Context) error {
	return s.mutate(ctx, func([]Entry) ([]Entry, error) {
		return []Entry{}, nil
	})
}

// RemoveBooked drops the entries that were booked at checkout, in one write
// with one notification. An entry added after the snapshot, or whose travel
// date changed since, was not booked and stays in the cart.
func (s *Store) RemoveBooked(ctx context.Context, booked []Entry) error {
	return s.mutate(ctx, func(entries []Entry) ([]Entry, error) {
		return slices.DeleteFunc(entries, func(e Entry) bool {
			i := indexOf(booked, e.ID)
			return i >= 0 && sameDate(booked[i].TravelDate, e.TravelDate)
		}), nil
	})
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func (s *Store) mutate(ctx context.Context, change func([]Entry) ([]Entry, error)) error {
	s.mu.Lock()
	next, err := change(slices.Clone(s.entries))
	if err == nil {
		err = s.commit(ctx, next)
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// commit must be called with s.mu held.
func (s *Store) commit(ctx context.Context, next []Entry) error {
	if next == nil {
		next = []Entry{}
	}
	payload, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.slot.Save(ctx, payload); err != nil {
		return apperr.Remote("save cart", err)
	}
	s.entries = next
	return nil
}

func indexOf(entries []Entry, id string) int {
	return slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
}

// MissingTravelDates returns the package ids of entries without a travel date,
// in cart order.
func MissingTravelDates(entries []Entry) []string {
	var ids []string
	for _, e := range entries {
		if e.TravelDate == nil {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
