package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/events"
	"github.com/quickfix/booking-service/internal/repository"
	"github.com/quickfix/booking-service/internal/validation"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

// BookingService handles the public booking flow: submission, lookup by id,
// and per-customer tracking.
type BookingService struct {
	bookings   repository.BookingRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewBookingService builds the service.
func NewBookingService(bookings repository.BookingRepository, dispatcher events.Dispatcher) *BookingService {
	return &BookingService{
		bookings:   bookings,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// SetClock overrides the validation clock.
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateBooking validates the submission, persists it with status pending,
// and fires the confirmation notification. Notification delivery is
// best-effort and never fails the booking.
func (s *BookingService) CreateBooking(ctx context.Context, sub validation.BookingSubmission) (*domain.Booking, error) {
	draft, err := validation.ValidateBooking(sub, s.now())
	if err != nil {
		return nil, err
	}

	booking, err := s.bookings.Create(ctx, draft)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventBookingCreated,
		BookingID: booking.ID,
		Timestamp: s.now(),
		Payload:   events.BookingCreatedPayload{Booking: *booking},
	})
	return booking, nil
}

// GetBooking fetches one booking by id.
func (s *BookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Booking")
		}
		return nil, err
	}
	return booking, nil
}

// ListBookingsByEmail returns the customer's bookings newest first. Lookup is
// case-insensitive since stored emails are lower-cased.
func (s *BookingService) ListBookingsByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}
