package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/events"
	"github.com/quickfix/booking-service/internal/repository"
	"github.com/quickfix/booking-service/internal/validation"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

const (
	statsCacheKey = "quickfix:dashboard:stats"
	statsCacheTTL = 30 * time.Second
)

// AdminService composes store operations for the authenticated dashboard.
// Access control is enforced by the auth middleware, not re-checked here.
type AdminService struct {
	bookings   repository.BookingRepository
	dispatcher events.Dispatcher
	cache      *redis.Client
	logger     *zap.Logger
}

// NewAdminService builds the service. cache may be nil; stats queries then
// always hit the store directly.
func NewAdminService(bookings repository.BookingRepository, dispatcher events.Dispatcher, cache *redis.Client, logger *zap.Logger) *AdminService {
	return &AdminService{
		bookings:   bookings,
		dispatcher: dispatcher,
		cache:      cache,
		logger:     logger,
	}
}

// Pagination describes a page of results, 1-indexed.
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	TotalPages    int  `json:"totalPages"`
	TotalBookings int  `json:"totalBookings"`
	HasNextPage   bool `json:"hasNextPage"`
	HasPrevPage   bool `json:"hasPrevPage"`
}

// BookingListResult bundles a page of bookings with pagination metadata and
// the status breakdown over all bookings.
type BookingListResult struct {
	Bookings   []domain.Booking
	Pagination Pagination
	Stats      map[domain.BookingStatus]int
}

// ListBookings returns a filtered, sorted, paginated page plus the status
// breakdown. The total count runs as a separate query over the same filter,
// so metadata is exact up to concurrent writes.
func (s *AdminService) ListBookings(ctx context.Context, filter repository.BookingFilter, sort repository.BookingSort, page repository.BookingPage) (*BookingListResult, error) {
	if page.Page < 1 {
		page.Page = 1
	}
	if page.Limit <= 0 {
		page.Limit = 10
	}

	bookings, total, err := s.bookings.ListFiltered(ctx, filter, sort, page)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	stats, err := s.bookings.AggregateByStatus(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	totalPages := (total + page.Limit - 1) / page.Limit
	return &BookingListResult{
		Bookings: bookings,
		Pagination: Pagination{
			CurrentPage:   page.Page,
			TotalPages:    totalPages,
			TotalBookings: total,
			HasNextPage:   page.Page < totalPages,
			HasPrevPage:   page.Page > 1,
		},
		Stats: stats,
	}, nil
}

// UpdateBookingStatus applies a partial admin mutation: status always, notes
// and estimated cost only when supplied. Publishes a status-changed event;
// notification failure never affects the result.
func (s *AdminService) UpdateBookingStatus(ctx context.Context, id string, update validation.StatusUpdate) (*domain.Booking, error) {
	if err := validation.ValidateStatusUpdate(update); err != nil {
		return nil, err
	}

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Booking")
		}
		return nil, err
	}
	oldStatus := current.Status

	// Any enum value may be written at any time; irregular jumps are only
	// logged so technician workflows stay unblocked.
	if !domain.RegularTransition(oldStatus, update.Status) {
		s.logger.Warn("irregular status transition",
			zap.String("booking_id", id),
			zap.String("from", string(oldStatus)),
			zap.String("to", string(update.Status)))
	}

	booking, err := s.bookings.UpdateStatus(ctx, id, update)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Booking")
		}
		return nil, err
	}

	s.invalidateStatsCache(ctx)

	if booking.Status != oldStatus {
		s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventBookingStatusChanged,
			BookingID: booking.ID,
			Timestamp: time.Now(),
			Payload: events.BookingStatusChangedPayload{
				Booking:   *booking,
				OldStatus: oldStatus,
			},
		})
	}
	return booking, nil
}

// DeleteBooking removes a booking permanently.
func (s *AdminService) DeleteBooking(ctx context.Context, id string) error {
	if err := s.bookings.Delete(ctx, id); err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("Booking")
		}
		return err
	}
	s.invalidateStatsCache(ctx)
	return nil
}

// RecentBooking is the trimmed view shown on the dashboard.
type RecentBooking struct {
	ID           string               `json:"id"`
	CustomerName string               `json:"customerName"`
	ServiceType  domain.ServiceType   `json:"serviceType"`
	Status       domain.BookingStatus `json:"status"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// DashboardStats aggregates counters for the admin dashboard.
type DashboardStats struct {
	TotalBookings     int                        `json:"totalBookings"`
	PendingBookings   int                        `json:"pendingBookings"`
	CompletedBookings int                        `json:"completedBookings"`
	ServiceStats      map[domain.ServiceType]int `json:"serviceStats"`
	RecentBookings    []RecentBooking            `json:"recentBookings"`
}

// GetDashboardStats computes dashboard counters, serving from the Redis
// cache when fresh. Cache failures degrade to direct queries.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	if cached := s.cachedStats(ctx); cached != nil {
		return cached, nil
	}

	byStatus, err := s.bookings.AggregateByStatus(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	byService, err := s.bookings.AggregateByServiceType(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	recent, err := s.bookings.ListRecent(ctx, 5)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	total := 0
	for _, count := range byStatus {
		total += count
	}
	stats := &DashboardStats{
		TotalBookings:     total,
		PendingBookings:   byStatus[domain.BookingStatusPending],
		CompletedBookings: byStatus[domain.BookingStatusCompleted],
		ServiceStats:      byService,
		RecentBookings:    make([]RecentBooking, 0, len(recent)),
	}
	for _, booking := range recent {
		stats.RecentBookings = append(stats.RecentBookings, RecentBooking{
			ID:           booking.ID,
			CustomerName: booking.CustomerName,
			ServiceType:  booking.ServiceType,
			Status:       booking.Status,
			CreatedAt:    booking.CreatedAt,
		})
	}

	s.storeStatsCache(ctx, stats)
	return stats, nil
}

func (s *AdminService) cachedStats(ctx context.Context) *DashboardStats {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("stats cache read failed", zap.Error(err))
		}
		return nil
	}
	var stats DashboardStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *AdminService) storeStatsCache(ctx context.Context, stats *DashboardStats) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, statsCacheKey, raw, statsCacheTTL).Err(); err != nil {
		s.logger.Debug("stats cache write failed", zap.Error(err))
	}
}

func (s *AdminService) invalidateStatsCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, statsCacheKey).Err(); err != nil {
		s.logger.Debug("stats cache invalidation failed", zap.Error(err))
	}
}
