package dto

import (
	"time"

	"github.com/quickfix/booking-service/internal/domain"
)

// AddressRequest is the nested address payload.
type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

// CreateBookingRequest is the public submission payload.
type CreateBookingRequest struct {
	CustomerName       string         `json:"customerName"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone"`
	Address            AddressRequest `json:"address"`
	ServiceType        string         `json:"serviceType"`
	ServiceDescription string         `json:"serviceDescription"`
	PreferredDate      string         `json:"preferredDate"`
	PreferredTime      string         `json:"preferredTime"`
	Urgency            string         `json:"urgency"`
}

// BookingCreatedResponse is the trimmed 201 payload.
type BookingCreatedResponse struct {
	BookingID     string               `json:"bookingId"`
	CustomerName  string               `json:"customerName"`
	ServiceType   domain.ServiceType   `json:"serviceType"`
	PreferredDate time.Time            `json:"preferredDate"`
	Status        domain.BookingStatus `json:"status"`
}

// BookingResponse is the full booking view.
type BookingResponse struct {
	ID                 string               `json:"id"`
	CustomerName       string               `json:"customerName"`
	Email              string               `json:"email"`
	Phone              string               `json:"phone"`
	Address            domain.Address       `json:"address"`
	ServiceType        domain.ServiceType   `json:"serviceType"`
	ServiceDescription string               `json:"serviceDescription"`
	PreferredDate      time.Time            `json:"preferredDate"`
	PreferredTime      domain.TimeSlot      `json:"preferredTime"`
	Urgency            domain.Urgency       `json:"urgency"`
	Status             domain.BookingStatus `json:"status"`
	EstimatedCost      *float64             `json:"estimatedCost,omitempty"`
	Notes              *string              `json:"notes,omitempty"`
	CreatedAt          time.Time            `json:"createdAt"`
	UpdatedAt          time.Time            `json:"updatedAt"`
}

// NewBookingResponse maps the domain entity.
func NewBookingResponse(booking *domain.Booking) BookingResponse {
	return BookingResponse{
		ID:                 booking.ID,
		CustomerName:       booking.CustomerName,
		Email:              booking.Email,
		Phone:              booking.Phone,
		Address:            booking.Address,
		ServiceType:        booking.ServiceType,
		ServiceDescription: booking.ServiceDescription,
		PreferredDate:      booking.PreferredDate,
		PreferredTime:      booking.PreferredTime,
		Urgency:            booking.Urgency,
		Status:             booking.Status,
		EstimatedCost:      booking.EstimatedCost,
		Notes:              booking.Notes,
		CreatedAt:          booking.CreatedAt,
		UpdatedAt:          booking.UpdatedAt,
	}
}

// NewBookingResponses maps a slice.
func NewBookingResponses(bookings []domain.Booking) []BookingResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for i := range bookings {
		items = append(items, NewBookingResponse(&bookings[i]))
	}
	return items
}
