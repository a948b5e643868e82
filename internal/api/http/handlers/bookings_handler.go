package handlers

import (
	"net/http"
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfix/booking-service/internal/api/dto"
	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/service"
	"github.com/quickfix/booking-service/internal/validation"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

// BookingsHandler manages the public booking endpoints.
type BookingsHandler struct {
	service *service.BookingService
}

// NewBookingsHandler constructs handler.
func NewBookingsHandler(bookingService *service.BookingService) *BookingsHandler {
	return &BookingsHandler{service: bookingService}
}

// CreateBooking POST /api/bookings.
func (h *BookingsHandler) CreateBooking(c *fiber.Ctx) error {
	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation failed", []apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		})
	}

	booking, err := h.service.CreateBooking(c.UserContext(), validation.BookingSubmission{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		Phone:        req.Phone,
		Address: domain.Address{
			Street:  req.Address.Street,
			City:    req.Address.City,
			State:   req.Address.State,
			ZipCode: req.Address.ZipCode,
		},
		ServiceType:        req.ServiceType,
		ServiceDescription: req.ServiceDescription,
		PreferredDate:      req.PreferredDate,
		PreferredTime:      req.PreferredTime,
		Urgency:            req.Urgency,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Booking created successfully",
		"data": dto.BookingCreatedResponse{
			BookingID:     booking.ID,
			CustomerName:  booking.CustomerName,
			ServiceType:   booking.ServiceType,
			PreferredDate: booking.PreferredDate,
			Status:        booking.Status,
		},
	})
}

// GetBooking GET /api/bookings/:id.
func (h *BookingsHandler) GetBooking(c *fiber.Ctx) error {
	booking, err := h.service.GetBooking(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewBookingResponse(booking),
	})
}

// GetBookingsByEmail GET /api/bookings/customer/:email.
func (h *BookingsHandler) GetBookingsByEmail(c *fiber.Ctx) error {
	email, err := url.PathUnescape(c.Params("email"))
	if err != nil {
		email = c.Params("email")
	}
	bookings, err := h.service.ListBookingsByEmail(c.UserContext(), email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(bookings),
		"data":    dto.NewBookingResponses(bookings),
	})
}
