package cart

import (
	"context"
	"sync"
	"time"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
)

// SlotStore persists slots for many users.
type SlotStore interface {
	LoadSlot(ctx context.Context, userID, key string) ([]byte, error)
	SaveSlot(ctx context.Context, userID, key string, payload []byte) error
}

type userSlot struct {
	store  SlotStore
	userID string
}

func (u userSlot) Load(ctx context.Context) ([]byte, error) {
	return u.store.LoadSlot(ctx, u.userID, SlotKey)
}

func (u userSlot) Save(ctx context.Context, payload []byte) error {
	return u.store.SaveSlot(ctx, u.userID, SlotKey, payload)
}

// Registry hands out one Store per user, opened from the user's slot on first
// use and shared by every caller afterwards. Stores that sit idle without
// listeners are dropped by Sweep and reopened from their slot on next use.
type Registry struct {
	slots SlotStore
	opts  []Option

	mu       sync.Mutex
	stores   map[string]*Store
	lastUsed map[string]time.Time
}

func NewRegistry(slots SlotStore, opts ...Option) *Registry {
	return &Registry{
		slots:    slots,
		opts:     opts,
		stores:   make(map[string]*Store),
		lastUsed: make(map[string]time.Time),
	}
}

func (r *Registry) Store(ctx context.Context, userID string) (*Store, error) {
	if userID == "" {
		return nil, apperr.Validation("user id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[userID]; ok {
		r.lastUsed[userID] = time.Now()
		return s, nil
	}
	s, err := Open(ctx, userSlot{store: r.slots, userID: userID}, r.opts...)
	if err != nil {
		return nil, err
	}
	r.stores[userID] = s
	r.lastUsed[userID] = time.Now()
	return s, nil
}

// Len is the number of open stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

// Sweep drops stores last handed out before cutoff that have no listeners,
// and returns how many were dropped.
func (r *Registry) Sweep(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for userID, s := range r.stores {
		if r.lastUsed[userID].Before(cutoff) && s.Listeners() == 0 {
			delete(r.stores, userID)
			delete(r.lastUsed, userID)
			n++
		}
	}
	return n
}

// RunJanitor sweeps stores idle for longer than maxIdle every interval until
// ctx is done.
func (r *Registry) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now.Add(-maxIdle))
		}
	}
}
