package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/events"
	"github.com/quickfix/booking-service/internal/repository"
	"github.com/quickfix/booking-service/internal/validation"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

// recordingDispatcher captures published events synchronously.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}

var serviceNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func validServiceSubmission() validation.BookingSubmission {
	return validation.BookingSubmission{
		CustomerName: "Jane Doe",
		Email:        "JANE@X.COM",
		Phone:        "+15551234567",
		Address: domain.Address{
			Street:  "1 Main St",
			City:    "Metropolis",
			State:   "NY",
			ZipCode: "10001",
		},
		ServiceType:        "plumbing",
		ServiceDescription: "Leaking kitchen sink under cabinet",
		PreferredDate:      serviceNow.AddDate(0, 0, 1).Format(time.RFC3339),
		PreferredTime:      "morning",
		Urgency:            "medium",
	}
}

func newBookingFixture(t *testing.T) (*BookingService, *repository.MemoryBookingRepository, *recordingDispatcher) {
	t.Helper()
	repo := repository.NewMemoryBookingRepository()
	dispatcher := &recordingDispatcher{}
	svc := NewBookingService(repo, dispatcher)
	svc.SetClock(func() time.Time { return serviceNow })
	return svc, repo, dispatcher
}

func TestCreateBookingRoundTrip(t *testing.T) {
	svc, _, dispatcher := newBookingFixture(t)
	ctx := context.Background()

	created, err := svc.CreateBooking(ctx, validServiceSubmission())
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.BookingStatusPending, created.Status)
	assert.Equal(t, "jane@x.com", created.Email)

	fetched, err := svc.GetBooking(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", fetched.CustomerName)
	assert.Equal(t, "+15551234567", fetched.Phone)
	assert.Equal(t, domain.ServiceTypePlumbing, fetched.ServiceType)
	assert.Equal(t, "Leaking kitchen sink under cabinet", fetched.ServiceDescription)
	assert.Equal(t, domain.TimeSlotMorning, fetched.PreferredTime)
	assert.Equal(t, domain.UrgencyMedium, fetched.Urgency)
	assert.Equal(t, "1 Main St", fetched.Address.Street)

	published := dispatcher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventBookingCreated, published[0].Type)
	assert.Equal(t, created.ID, published[0].BookingID)
}

func TestCreateBookingValidationFailureDoesNotPublish(t *testing.T) {
	svc, _, dispatcher := newBookingFixture(t)

	sub := validServiceSubmission()
	sub.PreferredDate = serviceNow.AddDate(0, 0, -1).Format(time.RFC3339)

	_, err := svc.CreateBooking(context.Background(), sub)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
	assert.Empty(t, dispatcher.published())
}

func TestGetBookingNotFound(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	_, err := svc.GetBooking(context.Background(), "missing-id")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListBookingsByEmailNewestFirst(t *testing.T) {
	svc, repo, _ := newBookingFixture(t)
	ctx := context.Background()

	clock := serviceNow
	repo.SetClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	first, err := svc.CreateBooking(ctx, validServiceSubmission())
	require.NoError(t, err)
	second, err := svc.CreateBooking(ctx, validServiceSubmission())
	require.NoError(t, err)

	other := validServiceSubmission()
	other.Email = "someone.else@x.com"
	_, err = svc.CreateBooking(ctx, other)
	require.NoError(t, err)

	// Mixed-case lookup matches the lower-cased stored email.
	bookings, err := svc.ListBookingsByEmail(ctx, "Jane@X.com")
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID)
	assert.Equal(t, first.ID, bookings[1].ID)
}

func TestListBookingsByEmailEmpty(t *testing.T) {
	svc, _, _ := newBookingFixture(t)

	bookings, err := svc.ListBookingsByEmail(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Empty(t, bookings)
}
