package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/validation"
)

// BookingFilter captures admin search parameters.
type BookingFilter struct {
	Status      *domain.BookingStatus
	ServiceType *domain.ServiceType
}

// BookingSort controls list ordering. Column names are whitelisted in the
// implementation; unknown values fall back to created_at descending.
type BookingSort struct {
	By    string
	Order string
}

// BookingPage is a 1-indexed pagination request.
type BookingPage struct {
	Page  int
	Limit int
}

// BookingRepository encapsulates booking persistence.
type BookingRepository interface {
	Create(ctx context.Context, draft *validation.BookingDraft) (*domain.Booking, error)
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	ListFiltered(ctx context.Context, filter BookingFilter, sort BookingSort, page BookingPage) ([]domain.Booking, int, error)
	UpdateStatus(ctx context.Context, id string, update validation.StatusUpdate) (*domain.Booking, error)
	Delete(ctx context.Context, id string) error
	AggregateByStatus(ctx context.Context) (map[domain.BookingStatus]int, error)
	AggregateByServiceType(ctx context.Context) (map[domain.ServiceType]int, error)
	ListRecent(ctx context.Context, limit int) ([]domain.Booking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository returns a Postgres-backed implementation.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `id, customer_name, email, phone, street, city, state, zip_code,
        service_type, service_description, preferred_date, preferred_time, urgency,
        status, estimated_cost, notes, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, draft *validation.BookingDraft) (*domain.Booking, error) {
	const query = `
        INSERT INTO bookings (customer_name, email, phone, street, city, state, zip_code,
            service_type, service_description, preferred_date, preferred_time, urgency, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
        RETURNING ` + bookingColumns

	row := r.pool.QueryRow(ctx, query,
		draft.CustomerName,
		draft.Email,
		draft.Phone,
		draft.Address.Street,
		draft.Address.City,
		draft.Address.State,
		draft.Address.ZipCode,
		draft.ServiceType,
		draft.ServiceDescription,
		draft.PreferredDate,
		draft.PreferredTime,
		draft.Urgency,
		domain.BookingStatusPending,
	)
	return scanBooking(row)
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id=$1`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *bookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings
        WHERE email=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, strings.ToLower(email))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

var sortColumns = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"preferredDate": "preferred_date",
	"status":        "status",
	"serviceType":   "service_type",
	"urgency":       "urgency",
}

func (r *bookingRepository) ListFiltered(ctx context.Context, filter BookingFilter, sort BookingSort, page BookingPage) ([]domain.Booking, int, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.ServiceType != nil {
		args = append(args, *filter.ServiceType)
		clauses = append(clauses, fmt.Sprintf("service_type=$%d", len(args)))
	}
	where := strings.Join(clauses, " AND ")

	// Exact total over the same filter so pagination metadata stays correct.
	var total int
	countQuery := "SELECT COUNT(*) FROM bookings WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	column, ok := sortColumns[sort.By]
	if !ok {
		column = "created_at"
	}
	direction := "DESC"
	if strings.EqualFold(sort.Order, "asc") {
		direction = "ASC"
	}

	pageNum := page.Page
	if pageNum < 1 {
		pageNum = 1
	}
	limit := page.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := (pageNum - 1) * limit

	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`,
		bookingColumns, where, column, direction, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	bookings, err := scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, update validation.StatusUpdate) (*domain.Booking, error) {
	sets := []string{"status=$1", "updated_at=NOW()"}
	args := []any{update.Status}

	if update.Notes != nil {
		args = append(args, *update.Notes)
		sets = append(sets, fmt.Sprintf("notes=$%d", len(args)))
	}
	if update.EstimatedCost != nil {
		args = append(args, *update.EstimatedCost)
		sets = append(sets, fmt.Sprintf("estimated_cost=$%d", len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE bookings SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), bookingColumns)

	return scanBooking(r.pool.QueryRow(ctx, query, args...))
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) AggregateByStatus(ctx context.Context) (map[domain.BookingStatus]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM bookings GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.BookingStatus]int)
	for rows.Next() {
		var status domain.BookingStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		result[status] = count
	}
	return result, rows.Err()
}

func (r *bookingRepository) AggregateByServiceType(ctx context.Context) (map[domain.ServiceType]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT service_type, COUNT(*) FROM bookings GROUP BY service_type`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[domain.ServiceType]int)
	for rows.Next() {
		var serviceType domain.ServiceType
		var count int
		if err := rows.Scan(&serviceType, &count); err != nil {
			return nil, err
		}
		result[serviceType] = count
	}
	return result, rows.Err()
}

func (r *bookingRepository) ListRecent(ctx context.Context, limit int) ([]domain.Booking, error) {
	if limit <= 0 {
		limit = 5
	}
	query := fmt.Sprintf(`SELECT %s FROM bookings ORDER BY created_at DESC LIMIT %d`, bookingColumns, limit)
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	if err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.Email,
		&booking.Phone,
		&booking.Address.Street,
		&booking.Address.City,
		&booking.Address.State,
		&booking.Address.ZipCode,
		&booking.ServiceType,
		&booking.ServiceDescription,
		&booking.PreferredDate,
		&booking.PreferredTime,
		&booking.Urgency,
		&booking.Status,
		&booking.EstimatedCost,
		&booking.Notes,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	var result []domain.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *booking)
	}
	return result, rows.Err()
}
