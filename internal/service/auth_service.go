package service

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/quickfix/booking-service/internal/auth"
	"github.com/quickfix/booking-service/internal/config"
	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/repository"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

// Login failure messages. The original dashboard intentionally differentiates
// the two cases; kept for behavioral fidelity even though it leaks whether an
// account exists.
const (
	MsgAdminNotFound     = "Invalid credentials. Admin user not found."
	MsgIncorrectPassword = "Invalid credentials. Incorrect password."
)

// AuthService coordinates admin credential verification and token issuance.
type AuthService struct {
	admins     repository.AdminRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	seed       config.AdminSeedConfig
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, admins repository.AdminRepository) *AuthService {
	return &AuthService{
		admins:     admins,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
		seed:       cfg.AdminSeed,
	}
}

// VerifyCredentials matches username or email against active admins and
// compares the bcrypt hash. An inactive account fails the same way as an
// unknown one.
func (s *AuthService) VerifyCredentials(ctx context.Context, usernameOrEmail, password string) (*domain.Admin, error) {
	admin, err := s.admins.GetByLogin(ctx, usernameOrEmail)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized(MsgAdminNotFound)
		}
		return nil, err
	}
	if !admin.Active {
		return nil, apperrors.NewUnauthorized(MsgAdminNotFound)
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(MsgIncorrectPassword)
	}
	return admin, nil
}

// Login authenticates and issues a signed bearer token.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.VerifyCredentials(ctx, usernameOrEmail, password)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	token, exp, err := s.tokenMgr.GenerateToken(admin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// Authorize verifies a raw bearer token and re-checks that the admin still
// exists and is active. Revocation takes effect on this round-trip; there is
// no server-side token list.
func (s *AuthService) Authorize(ctx context.Context, token string) (*domain.Admin, error) {
	claims, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		return nil, apperrors.NewUnauthorized("Access denied. Invalid token.")
	}
	admin, err := s.admins.GetByID(ctx, claims.AdminID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewUnauthorized("Access denied. Invalid token.")
		}
		return nil, err
	}
	if !admin.Active {
		return nil, apperrors.NewUnauthorized("Access denied. Invalid token.")
	}
	return admin, nil
}

// SetupStatus reports whether the bootstrap admin exists yet.
type SetupStatus struct {
	TotalAdmins    int
	ActiveAdmins   int
	HasAdmin       bool
	CanCreateAdmin bool
}

// AdminStatus returns bootstrap state for the setup endpoints.
func (s *AuthService) AdminStatus(ctx context.Context) (*SetupStatus, error) {
	total, active, err := s.admins.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &SetupStatus{
		TotalAdmins:    total,
		ActiveAdmins:   active,
		HasAdmin:       total > 0,
		CanCreateAdmin: total == 0,
	}, nil
}

// CreateBootstrapAdmin creates the configured super-admin account. It refuses
// when any admin already exists; resets go through the seed CLI instead.
func (s *AuthService) CreateBootstrapAdmin(ctx context.Context) (*domain.Admin, error) {
	total, _, err := s.admins.Count(ctx)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		return nil, apperrors.NewConflict("Admin already exists. Use the seed command to reset the password.")
	}

	hash, err := auth.HashPassword(s.seed.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	admin := &domain.Admin{
		Username:     s.seed.Username,
		Email:        strings.ToLower(s.seed.Email),
		PasswordHash: hash,
		Role:         domain.AdminRoleSuperAdmin,
		Active:       true,
	}
	if err := s.admins.Create(ctx, admin); err != nil {
		return nil, err
	}
	return admin, nil
}

// SeedAdmin creates the bootstrap admin, or resets its password when the
// account already exists. Used by the seed CLI.
func (s *AuthService) SeedAdmin(ctx context.Context) (*domain.Admin, bool, error) {
	admin, err := s.admins.GetByLogin(ctx, s.seed.Username)
	if err != nil && err != pgx.ErrNoRows {
		return nil, false, err
	}
	if err == pgx.ErrNoRows {
		created, createErr := s.CreateBootstrapAdmin(ctx)
		if createErr != nil {
			return nil, false, createErr
		}
		return created, true, nil
	}

	hash, err := auth.HashPassword(s.seed.Password, s.bcryptCost)
	if err != nil {
		return nil, false, err
	}
	admin.PasswordHash = hash
	if err := s.admins.Update(ctx, admin); err != nil {
		return nil, false, err
	}
	return admin, false, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
