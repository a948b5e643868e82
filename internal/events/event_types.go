package events

import (
	"time"

	"github.com/quickfix/booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBookingCreated       EventType = "booking_created"
	EventBookingStatusChanged EventType = "booking_status_changed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	BookingID string      `json:"booking_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// BookingCreatedPayload carries the snapshot the notification sink renders.
type BookingCreatedPayload struct {
	Booking domain.Booking `json:"booking"`
}

// BookingStatusChangedPayload payload.
type BookingStatusChangedPayload struct {
	Booking   domain.Booking       `json:"booking"`
	OldStatus domain.BookingStatus `json:"old_status"`
}
