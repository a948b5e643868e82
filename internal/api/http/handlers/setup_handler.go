package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/quickfix/booking-service/internal/api/dto"
	"github.com/quickfix/booking-service/internal/service"
)

// SetupHandler exposes the bootstrap endpoints used before the first admin
// exists. CreateAdmin refuses once any admin account is present.
type SetupHandler struct {
	authService *service.AuthService
}

// NewSetupHandler constructs handler.
func NewSetupHandler(authService *service.AuthService) *SetupHandler {
	return &SetupHandler{authService: authService}
}

// AdminStatus GET /api/setup/admin-status.
func (h *SetupHandler) AdminStatus(c *fiber.Ctx) error {
	status, err := h.authService.AdminStatus(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"totalAdmins":    status.TotalAdmins,
			"activeAdmins":   status.ActiveAdmins,
			"hasAdmin":       status.HasAdmin,
			"canCreateAdmin": status.CanCreateAdmin,
		},
	})
}

// CreateAdmin POST /api/setup/create-admin.
func (h *SetupHandler) CreateAdmin(c *fiber.Ctx) error {
	admin, err := h.authService.CreateBootstrapAdmin(c.UserContext())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Admin created successfully",
		"data":    dto.NewAdminResponse(admin),
	})
}
