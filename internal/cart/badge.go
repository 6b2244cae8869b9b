package cart

import (
	"sync"
	"sync/atomic"
)

// Badge mirrors the number of entries in a store. It only observes; it never
// mutates the cart.
type Badge struct {
	store   *Store
	sub     *Subscription
	count   atomic.Int64
	changed chan struct{}
	once    sync.Once
}

// Mount subscribes to store and initializes the count. Call Unmount when the
// badge is no longer displayed.
func Mount(store *Store) *Badge {
	b := &Badge{store: store, changed: make(chan struct{}, 1)}
	b.sub = store.Subscribe(b)
	b.count.Store(int64(store.Len()))
	return b
}

func (b *Badge) Count() int {
	return int(b.count.Load())
}

// Changed receives a signal after each cart change. Signals coalesce, so
// readers should call Count rather than count signals.
func (b *Badge) Changed() <-chan struct{} {
	return b.changed
}

func (b *Badge) CartChanged() {
	b.count.Store(int64(b.store.Len()))
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

func (b *Badge) Unmount() {
	b.once.Do(func() {
		b.store.Unsubscribe(b.sub)
	})
}
