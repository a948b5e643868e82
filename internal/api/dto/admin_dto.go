package dto

import "github.com/quickfix/booking-service/internal/domain"

// AdminLoginRequest payload. Username also matches the admin email.
type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminResponse is the authenticated admin view.
type AdminResponse struct {
	ID       string           `json:"id"`
	Username string           `json:"username"`
	Email    string           `json:"email"`
	Role     domain.AdminRole `json:"role"`
}

// NewAdminResponse maps the domain entity.
func NewAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:       admin.ID,
		Username: admin.Username,
		Email:    admin.Email,
		Role:     admin.Role,
	}
}

// UpdateBookingRequest is the admin mutation payload. Notes and estimatedCost
// are pointers so an omitted field is distinguishable from an empty one.
type UpdateBookingRequest struct {
	Status        string   `json:"status"`
	Notes         *string  `json:"notes"`
	EstimatedCost *float64 `json:"estimatedCost"`
}
