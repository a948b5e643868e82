package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/events"
	"github.com/quickfix/booking-service/internal/repository"
	"github.com/quickfix/booking-service/internal/validation"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

func newAdminFixture(t *testing.T) (*AdminService, *BookingService, *repository.MemoryBookingRepository, *recordingDispatcher) {
	t.Helper()
	repo := repository.NewMemoryBookingRepository()
	dispatcher := &recordingDispatcher{}
	bookingSvc := NewBookingService(repo, dispatcher)
	bookingSvc.SetClock(func() time.Time { return serviceNow })
	adminSvc := NewAdminService(repo, dispatcher, nil, zap.NewNop())
	return adminSvc, bookingSvc, repo, dispatcher
}

func seedBookings(t *testing.T, svc *BookingService, repo *repository.MemoryBookingRepository, n int) []domain.Booking {
	t.Helper()
	ctx := context.Background()

	clock := serviceNow
	repo.SetClock(func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	})

	types := []string{"plumbing", "electrical", "cleaning"}
	created := make([]domain.Booking, 0, n)
	for i := 0; i < n; i++ {
		sub := validServiceSubmission()
		sub.ServiceType = types[i%len(types)]
		booking, err := svc.CreateBooking(ctx, sub)
		require.NoError(t, err)
		created = append(created, *booking)
	}
	return created
}

func TestListBookingsPagination(t *testing.T) {
	adminSvc, bookingSvc, repo, _ := newAdminFixture(t)
	seedBookings(t, bookingSvc, repo, 7)

	result, err := adminSvc.ListBookings(context.Background(),
		repository.BookingFilter{},
		repository.BookingSort{By: "createdAt", Order: "desc"},
		repository.BookingPage{Page: 2, Limit: 3})
	require.NoError(t, err)

	assert.Len(t, result.Bookings, 3)
	assert.Equal(t, 2, result.Pagination.CurrentPage)
	assert.Equal(t, 3, result.Pagination.TotalPages)
	assert.Equal(t, 7, result.Pagination.TotalBookings)
	assert.True(t, result.Pagination.HasNextPage)
	assert.True(t, result.Pagination.HasPrevPage)
	assert.Equal(t, 7, result.Stats[domain.BookingStatusPending])
}

func TestListBookingsFilterByServiceType(t *testing.T) {
	adminSvc, bookingSvc, repo, _ := newAdminFixture(t)
	seedBookings(t, bookingSvc, repo, 6)

	electrical := domain.ServiceTypeElectrical
	result, err := adminSvc.ListBookings(context.Background(),
		repository.BookingFilter{ServiceType: &electrical},
		repository.BookingSort{},
		repository.BookingPage{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Pagination.TotalBookings)
	for _, booking := range result.Bookings {
		assert.Equal(t, domain.ServiceTypeElectrical, booking.ServiceType)
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	adminSvc, bookingSvc, repo, dispatcher := newAdminFixture(t)
	created := seedBookings(t, bookingSvc, repo, 1)[0]
	ctx := context.Background()

	cost := 150.0
	notes := "technician assigned"
	updated, err := adminSvc.UpdateBookingStatus(ctx, created.ID, validation.StatusUpdate{
		Status:        domain.BookingStatusConfirmed,
		Notes:         &notes,
		EstimatedCost: &cost,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusConfirmed, updated.Status)
	require.NotNil(t, updated.Notes)
	assert.Equal(t, "technician assigned", *updated.Notes)
	require.NotNil(t, updated.EstimatedCost)
	assert.Equal(t, 150.0, *updated.EstimatedCost)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	// One created event from seeding plus exactly one status-changed event.
	published := dispatcher.published()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventBookingStatusChanged, published[1].Type)
	payload, ok := published[1].Payload.(events.BookingStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.BookingStatusPending, payload.OldStatus)
}

func TestUpdateBookingStatusPartial(t *testing.T) {
	adminSvc, bookingSvc, repo, _ := newAdminFixture(t)
	created := seedBookings(t, bookingSvc, repo, 1)[0]
	ctx := context.Background()

	cost := 99.0
	_, err := adminSvc.UpdateBookingStatus(ctx, created.ID, validation.StatusUpdate{
		Status:        domain.BookingStatusConfirmed,
		EstimatedCost: &cost,
	})
	require.NoError(t, err)

	// Omitted notes stay untouched on a later status-only update.
	updated, err := adminSvc.UpdateBookingStatus(ctx, created.ID, validation.StatusUpdate{
		Status: domain.BookingStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusInProgress, updated.Status)
	require.NotNil(t, updated.EstimatedCost)
	assert.Equal(t, 99.0, *updated.EstimatedCost)
	assert.Nil(t, updated.Notes)
}

func TestUpdateBookingStatusInvalidLeavesRecordUnchanged(t *testing.T) {
	adminSvc, bookingSvc, repo, _ := newAdminFixture(t)
	created := seedBookings(t, bookingSvc, repo, 1)[0]
	ctx := context.Background()

	_, err := adminSvc.UpdateBookingStatus(ctx, created.ID, validation.StatusUpdate{
		Status: "archived",
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)

	stored, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPending, stored.Status)
	assert.Equal(t, created.UpdatedAt, stored.UpdatedAt)
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	adminSvc, _, _, _ := newAdminFixture(t)

	_, err := adminSvc.UpdateBookingStatus(context.Background(), "missing", validation.StatusUpdate{
		Status: domain.BookingStatusConfirmed,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteBooking(t *testing.T) {
	adminSvc, bookingSvc, repo, _ := newAdminFixture(t)
	created := seedBookings(t, bookingSvc, repo, 1)[0]
	ctx := context.Background()

	require.NoError(t, adminSvc.DeleteBooking(ctx, created.ID))

	_, err := repo.GetByID(ctx, created.ID)
	require.Error(t, err)

	err = adminSvc.DeleteBooking(ctx, created.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetDashboardStats(t *testing.T) {
	adminSvc, bookingSvc, repo, _ := newAdminFixture(t)
	created := seedBookings(t, bookingSvc, repo, 7)
	ctx := context.Background()

	_, err := adminSvc.UpdateBookingStatus(ctx, created[0].ID, validation.StatusUpdate{
		Status: domain.BookingStatusCompleted,
	})
	require.NoError(t, err)

	stats, err := adminSvc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 7, stats.TotalBookings)
	assert.Equal(t, 6, stats.PendingBookings)
	assert.Equal(t, 1, stats.CompletedBookings)
	assert.Equal(t, 3, stats.ServiceStats[domain.ServiceTypePlumbing])
	require.Len(t, stats.RecentBookings, 5)
	assert.Equal(t, created[6].ID, stats.RecentBookings[0].ID)
}
