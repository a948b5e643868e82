package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/validation"
)

// MemoryBookingRepository is an in-process BookingRepository used by tests
// and local development without Postgres.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	now      func() time.Time
}

// NewMemoryBookingRepository builds an empty in-memory store.
func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings: make(map[string]*domain.Booking),
		now:      time.Now,
	}
}

// SetClock overrides the timestamp source.
func (r *MemoryBookingRepository) SetClock(now func() time.Time) {
	r.now = now
}

func (r *MemoryBookingRepository) Create(_ context.Context, draft *validation.BookingDraft) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.now()
	booking := &domain.Booking{
		ID:                 uuid.NewString(),
		CustomerName:       draft.CustomerName,
		Email:              draft.Email,
		Phone:              draft.Phone,
		Address:            draft.Address,
		ServiceType:        draft.ServiceType,
		ServiceDescription: draft.ServiceDescription,
		PreferredDate:      draft.PreferredDate,
		PreferredTime:      draft.PreferredTime,
		Urgency:            draft.Urgency,
		Status:             domain.BookingStatusPending,
		CreatedAt:          ts,
		UpdatedAt:          ts,
	}
	r.bookings[booking.ID] = booking
	copied := *booking
	return &copied, nil
}

func (r *MemoryBookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *booking
	return &copied, nil
}

func (r *MemoryBookingRepository) ListByEmail(_ context.Context, email string) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	var result []domain.Booking
	for _, booking := range r.bookings {
		if booking.Email == email {
			result = append(result, *booking)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *MemoryBookingRepository) ListFiltered(_ context.Context, filter BookingFilter, sortReq BookingSort, page BookingPage) ([]domain.Booking, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []domain.Booking
	for _, booking := range r.bookings {
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		if filter.ServiceType != nil && booking.ServiceType != *filter.ServiceType {
			continue
		}
		matched = append(matched, *booking)
	}
	total := len(matched)

	asc := strings.EqualFold(sortReq.Order, "asc")
	sort.Slice(matched, func(i, j int) bool {
		if asc {
			return lessBooking(matched[i], matched[j], sortReq.By)
		}
		return lessBooking(matched[j], matched[i], sortReq.By)
	})

	pageNum := page.Page
	if pageNum < 1 {
		pageNum = 1
	}
	limit := page.Limit
	if limit <= 0 {
		limit = 10
	}
	start := (pageNum - 1) * limit
	if start >= total {
		return nil, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func lessBooking(a, b domain.Booking, by string) bool {
	switch by {
	case "updatedAt":
		return a.UpdatedAt.Before(b.UpdatedAt)
	case "preferredDate":
		return a.PreferredDate.Before(b.PreferredDate)
	case "status":
		return a.Status < b.Status
	case "serviceType":
		return a.ServiceType < b.ServiceType
	case "urgency":
		return a.Urgency < b.Urgency
	default:
		return a.CreatedAt.Before(b.CreatedAt)
	}
}

func (r *MemoryBookingRepository) UpdateStatus(_ context.Context, id string, update validation.StatusUpdate) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	booking.Status = update.Status
	if update.Notes != nil {
		notes := *update.Notes
		booking.Notes = &notes
	}
	if update.EstimatedCost != nil {
		cost := *update.EstimatedCost
		booking.EstimatedCost = &cost
	}
	booking.UpdatedAt = r.now()
	copied := *booking
	return &copied, nil
}

func (r *MemoryBookingRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.bookings[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.bookings, id)
	return nil
}

func (r *MemoryBookingRepository) AggregateByStatus(_ context.Context) (map[domain.BookingStatus]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[domain.BookingStatus]int)
	for _, booking := range r.bookings {
		result[booking.Status]++
	}
	return result, nil
}

func (r *MemoryBookingRepository) AggregateByServiceType(_ context.Context) (map[domain.ServiceType]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[domain.ServiceType]int)
	for _, booking := range r.bookings {
		result[booking.ServiceType]++
	}
	return result, nil
}

func (r *MemoryBookingRepository) ListRecent(_ context.Context, limit int) ([]domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []domain.Booking
	for _, booking := range r.bookings {
		result = append(result, *booking)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// MemoryAdminRepository is an in-process AdminRepository for tests.
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	admins map[string]*domain.Admin
}

// NewMemoryAdminRepository builds an empty in-memory admin store.
func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{admins: make(map[string]*domain.Admin)}
}

func (r *MemoryAdminRepository) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if admin.ID == "" {
		admin.ID = uuid.NewString()
	}
	ts := time.Now()
	admin.CreatedAt = ts
	admin.UpdatedAt = ts
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *MemoryAdminRepository) Update(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.admins[admin.ID]; !ok {
		return pgx.ErrNoRows
	}
	admin.UpdatedAt = time.Now()
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *MemoryAdminRepository) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	admin, ok := r.admins[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *admin
	return &copied, nil
}

func (r *MemoryAdminRepository) GetByLogin(_ context.Context, usernameOrEmail string) (*domain.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, admin := range r.admins {
		if admin.Username == usernameOrEmail || admin.Email == usernameOrEmail {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *MemoryAdminRepository) Count(_ context.Context) (int, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := len(r.admins)
	active := 0
	for _, admin := range r.admins {
		if admin.Active {
			active++
		}
	}
	return total, active, nil
}
