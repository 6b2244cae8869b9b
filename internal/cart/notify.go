package cart

import (
	"slices"

	"go.uber.org/zap"
)

// Listener is told that the cart changed. It carries no payload; listeners
// re-read the store for current state.
type Listener interface {
	CartChanged()
}

type ListenerFunc func()

func (f ListenerFunc) CartChanged() { f() }

// Subscription identifies one registered listener.
type Subscription struct {
	listener Listener
}

func (s *Store) Subscribe(l Listener) *Subscription {
	sub := &Subscription{listener: l}

	s.subMu.Lock()
	s.subs = append(s.subs, sub)
	s.subMu.Unlock()
	return sub
}

// Unsubscribe is safe to call more than once.
func (s *Store) Unsubscribe(sub *Subscription) {
	s.subMu.Lock()
	s.subs = slices.DeleteFunc(s.subs, func(x *Subscription) bool { return x == sub })
	s.subMu.Unlock()
}

func (s *Store) Listeners() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}

func (s *Store) notify() {
	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()

	s.log.Debug("cart-updated", zap.Int("listeners", len(subs)))
	for _, sub := range subs {
		sub.listener.CartChanged()
	}
}
