package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfix/booking-service/internal/api/dto"
	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/repository"
	"github.com/quickfix/booking-service/internal/service"
	"github.com/quickfix/booking-service/internal/validation"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

// AdminHandler exposes the authenticated dashboard endpoints plus login.
type AdminHandler struct {
	authService  *service.AuthService
	adminService *service.AdminService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService, adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{authService: authService, adminService: adminService}
}

// Login POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation failed", []apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		})
	}

	var fields []apperrors.FieldError
	if strings.TrimSpace(req.Username) == "" {
		fields = append(fields, apperrors.FieldError{Field: "username", Message: "Username is required"})
	}
	if len(req.Password) < 6 {
		fields = append(fields, apperrors.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("Validation failed", fields)
	}

	admin, token, _, err := h.authService.Login(c.UserContext(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"token": token,
			"admin": dto.NewAdminResponse(admin),
		},
	})
}

// ListBookings GET /api/admin/bookings.
func (h *AdminHandler) ListBookings(c *fiber.Ctx) error {
	filter := repository.BookingFilter{}
	if status := c.Query("status"); status != "" {
		s := domain.BookingStatus(status)
		filter.Status = &s
	}
	if serviceType := c.Query("serviceType"); serviceType != "" {
		t := domain.ServiceType(serviceType)
		filter.ServiceType = &t
	}

	sort := repository.BookingSort{
		By:    c.Query("sortBy", "createdAt"),
		Order: c.Query("sortOrder", "desc"),
	}
	page := repository.BookingPage{
		Page:  parseIntQuery(c.Query("page"), 1),
		Limit: parseIntQuery(c.Query("limit"), 10),
	}

	result, err := h.adminService.ListBookings(c.UserContext(), filter, sort, page)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       dto.NewBookingResponses(result.Bookings),
		"pagination": result.Pagination,
		"stats":      result.Stats,
	})
}

// UpdateBooking PUT /api/admin/bookings/:id.
func (h *AdminHandler) UpdateBooking(c *fiber.Ctx) error {
	var req dto.UpdateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("Validation failed", []apperrors.FieldError{
			{Field: "body", Message: "invalid JSON payload"},
		})
	}

	booking, err := h.adminService.UpdateBookingStatus(c.UserContext(), c.Params("id"), validation.StatusUpdate{
		Status:        domain.BookingStatus(req.Status),
		Notes:         req.Notes,
		EstimatedCost: req.EstimatedCost,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking updated successfully",
		"data":    dto.NewBookingResponse(booking),
	})
}

// DeleteBooking DELETE /api/admin/bookings/:id.
func (h *AdminHandler) DeleteBooking(c *fiber.Ctx) error {
	if err := h.adminService.DeleteBooking(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Booking deleted successfully",
	})
}

// DashboardStats GET /api/admin/dashboard/stats.
func (h *AdminHandler) DashboardStats(c *fiber.Ctx) error {
	stats, err := h.adminService.GetDashboardStats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}

func parseIntQuery(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
