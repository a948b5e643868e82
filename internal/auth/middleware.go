package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/repository"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

const principalKey = "auth_admin"

// AdminMiddleware validates bearer tokens and loads the admin principal.
// Beyond the signature/expiry check it re-reads the account, so deactivating
// an admin invalidates outstanding tokens on their next request.
type AdminMiddleware struct {
	tokens *TokenManager
	admins repository.AdminRepository
}

// NewAdminMiddleware constructs middleware.
func NewAdminMiddleware(tokens *TokenManager, admins repository.AdminRepository) *AdminMiddleware {
	return &AdminMiddleware{tokens: tokens, admins: admins}
}

// Handle enforces authentication for protected routes. All failures produce
// the same 401 so callers cannot distinguish missing, malformed and revoked
// tokens.
func (m *AdminMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("Access denied. No token provided.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("Access denied. Invalid token.")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("Access denied. Invalid token.")
	}

	admin, err := m.admins.GetByID(c.UserContext(), claims.AdminID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("Access denied. Invalid token.")
		}
		return apperrors.ToDomainError(err)
	}
	if !admin.Active {
		return apperrors.NewUnauthorized("Access denied. Invalid token.")
	}

	c.Locals(principalKey, admin)
	return c.Next()
}

// AdminFromContext retrieves the authenticated admin.
func AdminFromContext(c *fiber.Ctx) (*domain.Admin, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	admin, ok := val.(*domain.Admin)
	return admin, ok
}
