package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Eursukkul/booking-microservice/storefront-service/internal/apperr"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/cart"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/models"
	"github.com/Eursukkul/booking-microservice/storefront-service/internal/repository"
)

var (
	ErrBookingNotFound       = apperr.NotFound("booking not found")
	ErrBookingNotCancellable = apperr.Conflict("only pending bookings can be cancelled")
	ErrInvalidStatus         = apperr.Validation("invalid booking status")
	ErrNothingToBook         = apperr.Validation("no cart entries to book")
)

type BookingService interface {
	RecordPending(ctx context.Context, userID, reference string, entries []cart.Entry) ([]models.Booking, error)
	ListBookings(ctx context.Context, userID string, status *models.BookingStatus) ([]models.Booking, error)
	GetBooking(ctx context.Context, userID, id string) (*models.Booking, error)
	CancelBooking(ctx context.Context, userID, id string) (*models.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	publisher Publisher
	log       *zap.Logger
}

func NewBookingService(repo repository.BookingRepository, publisher Publisher, log *zap.Logger) BookingService {
	if log == nil {
		log = zap.NewNop()
	}
	return &bookingService{repo: repo, publisher: publisher, log: log}
}

// RecordPending inserts one pending booking per cart entry. Either every
// booking is stored or none is.
func (s *bookingService) RecordPending(ctx context.Context, userID, reference string, entries []cart.Entry) ([]models.Booking, error) {
	if len(entries) == 0 {
		return nil, ErrNothingToBook
	}

	bookings := make([]models.Booking, len(entries))
	for i, e := range entries {
		if e.TravelDate == nil {
			return nil, apperr.Validationf("travel date missing for package %s", e.ID)
		}
		bookings[i] = models.Booking{
			UserID:     userID,
			PackageID:  e.ID,
			Title:      e.Title,
			Hospital:   e.Hospital,
			Location:   e.Location,
			Price:      e.Price,
			TravelDate: cart.Day(*e.TravelDate),
			Status:     models.StatusPending,
			Reference:  reference,
		}
	}

	err := s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range bookings {
			if err := s.repo.Create(ctx, tx, &bookings[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperr.Remote("insert bookings", err)
	}

	for i := range bookings {
		s.publish("booking.created", &bookings[i])
	}
	return bookings, nil
}

func (s *bookingService) ListBookings(ctx context.Context, userID string, status *models.BookingStatus) ([]models.Booking, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidStatus
	}
	bookings, err := s.repo.FindByUser(ctx, userID, status)
	if err != nil {
		return nil, apperr.Remote("list bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) GetBooking(ctx context.Context, userID, id string) (*models.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, apperr.Remote("get booking", err)
	}
	if booking.UserID != userID {
		return nil, ErrBookingNotFound
	}
	return booking, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID, id string) (*models.Booking, error) {
	var result *models.Booking

	err := s.repo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		booking, err := s.repo.FindByIDForUpdate(ctx, tx, id)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		if err != nil {
			return err
		}
		if booking.UserID != userID {
			return ErrBookingNotFound
		}
		if booking.Status != models.StatusPending {
			return ErrBookingNotCancellable
		}

		if err := s.repo.UpdateStatus(ctx, tx, booking.ID, models.StatusCancelled); err != nil {
			return err
		}
		booking.Status = models.StatusCancelled
		result = booking
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) || errors.Is(err, ErrBookingNotCancellable) {
			return nil, err
		}
		return nil, apperr.Remote("cancel booking", err)
	}

	s.publish("booking.cancelled", result)
	return result, nil
}

func (s *bookingService) publish(routingKey string, booking *models.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, booking); err != nil {
		s.log.Warn("publish booking event failed",
			zap.String("routing_key", routingKey),
			zap.String("booking_id", booking.ID),
			zap.Error(err))
	}
}
