// Package checkout drives a cart through traveler details, payment and
// confirmation.
package checkout

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/cart"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
)

// BookingSink records the pending bookings of a completed checkout. It must
// either accept every entry or none.
type BookingSink interface {
	RecordPending(ctx context.Context, userID, reference string, entries []cart.Entry) ([]models.Booking, error)
}

// Confirmation is shown once a checkout completes. The reference is for
// display only.
type Confirmation struct {
	Reference   string           `json:"reference"`
	ConfirmedAt time.Time        `json:"confirmed_at"`
	Bookings    []models.Booking `json:"bookings"`
	Total       decimal.Decimal  `json:"total"`
}

// Snapshot is a point-in-time view of a session.
type Snapshot struct {
	Step         Step
	Busy         bool
	Details      TravelerDetails
	Confirmation *Confirmation
}

type Session struct {
	userID    string
	store     *cart.Store
	sink      BookingSink
	validate  *validator.Validate
	now       func() time.Time
	reference func() string
	log       *zap.Logger
	hold      *cart.Subscription

	mu           sync.Mutex
	step         Step
	busy         bool
	details      TravelerDetails
	payment      PaymentDetails
	confirmation *Confirmation
	retired      bool
}

// release lets the cart registry drop the store once the session no longer
// needs it.
func (s *Session) release() {
	s.store.Unsubscribe(s.hold)
}

// retire ends a session that is being replaced or abandoned. A finalizing
// session cannot be retired.
func (s *Session) retire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrBusy
	}
	s.retired = true
	s.release()
	return nil
}

// checkCart refuses an empty cart or one with undated entries.
func checkCart(entries []cart.Entry) error {
	if len(entries) == 0 {
		return ErrEmptyCart
	}
	if missing := cart.MissingTravelDates(entries); len(missing) > 0 {
		return &MissingDatesError{PackageIDs: missing}
	}
	return nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Step: s.step, Busy: s.busy, Details: s.details}
	if s.confirmation != nil {
		c := *s.confirmation
		snap.Confirmation = &c
	}
	return snap
}

func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// transitionLocked must be called with s.mu held. No step may be taken once
// the cart is empty.
func (s *Session) transitionLocked(to Step) error {
	if s.retired {
		return ErrNoSession
	}
	if s.busy {
		return ErrBusy
	}
	if !s.step.CanTransition(to) {
		return ErrIllegalTransition
	}
	if s.store.Len() == 0 {
		return ErrEmptyCart
	}
	return nil
}

func (s *Session) SubmitDetails(d TravelerDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transitionLocked(StepPayment); err != nil {
		return err
	}
	if err := checkPresence(s.validate, d); err != nil {
		return err
	}
	s.details = d
	s.step = StepPayment
	return nil
}

// Back returns from payment to details. Entered values are kept.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transitionLocked(StepDetails); err != nil {
		return err
	}
	s.step = StepDetails
	return nil
}

// SubmitPayment completes the checkout. The bookings are recorded first and
// only once the sink has accepted all of them are the booked entries removed
// from the cart. A sink
// failure leaves the session on the payment step with the cart intact.
func (s *Session) SubmitPayment(ctx context.Context, p PaymentDetails) (*Confirmation, error) {
	s.mu.Lock()
	if err := s.transitionLocked(StepConfirmation); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if err := checkPresence(s.validate, p); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	entries := s.store.List()
	if err := checkCart(entries); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.payment = p
	s.busy = true
	s.mu.Unlock()

	conf, err := s.finalize(ctx, entries)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		return nil, err
	}
	s.step = StepConfirmation
	s.confirmation = conf
	s.release()
	c := *conf
	return &c, nil
}

func (s *Session) finalize(ctx context.Context, entries []cart.Entry) (*Confirmation, error) {
	ref := s.reference()
	bookings, err := s.sink.RecordPending(ctx, s.userID, ref, entries)
	if err != nil {
		s.log.Error("record bookings failed",
			zap.String("user_id", s.userID),
			zap.String("reference", ref),
			zap.Error(err))
		if !errors.Is(err, apperr.ErrRemote) {
			err = apperr.Remote("record bookings", err)
		}
		return nil, err
	}

	if err := s.store.RemoveBooked(ctx, entries); err != nil {
		// Bookings are already committed; the checkout still succeeded.
		s.log.Error("clear cart after checkout failed",
			zap.String("user_id", s.userID),
			zap.String("reference", ref),
			zap.Error(err))
	}

	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Price)
	}
	s.log.Info("checkout completed",
		zap.String("user_id", s.userID),
		zap.String("reference", ref),
		zap.Int("bookings", len(bookings)))

	return &Confirmation{
		Reference:   ref,
		ConfirmedAt: s.now(),
		Bookings:    bookings,
		Total:       total,
	}, nil
}
