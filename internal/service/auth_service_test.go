package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickfix/booking-service/internal/auth"
	"github.com/quickfix/booking-service/internal/config"
	"github.com/quickfix/booking-service/internal/domain"
	"github.com/quickfix/booking-service/internal/repository"
	apperrors "github.com/quickfix/booking-service/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTLHours: 24,
			BcryptCost:    4,
		},
		AdminSeed: config.AdminSeedConfig{
			Username: "admin",
			Email:    "admin@quickfix.com",
			Password: "admin123456",
		},
	}
}

func newAuthFixture(t *testing.T) (*AuthService, *repository.MemoryAdminRepository, *domain.Admin) {
	t.Helper()
	admins := repository.NewMemoryAdminRepository()
	svc := NewAuthService(testAuthConfig(), admins)

	hash, err := auth.HashPassword("admin123456", 4)
	require.NoError(t, err)
	admin := &domain.Admin{
		Username:     "admin",
		Email:        "admin@quickfix.com",
		PasswordHash: hash,
		Role:         domain.AdminRoleSuperAdmin,
		Active:       true,
	}
	require.NoError(t, admins.Create(context.Background(), admin))
	return svc, admins, admin
}

func TestVerifyCredentials(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	admin, err := svc.VerifyCredentials(ctx, "admin", "admin123456")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)

	// Email works as the login identifier too.
	admin, err = svc.VerifyCredentials(ctx, "admin@quickfix.com", "admin123456")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
}

func TestVerifyCredentialsDifferentiatedFailures(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.VerifyCredentials(ctx, "nobody", "admin123456")
	require.Error(t, err)
	assert.Equal(t, MsgAdminNotFound, apperrors.ToDomainError(err).Message)

	_, err = svc.VerifyCredentials(ctx, "admin", "wrong-password")
	require.Error(t, err)
	assert.Equal(t, MsgIncorrectPassword, apperrors.ToDomainError(err).Message)
}

func TestVerifyCredentialsInactiveBehavesAsNotFound(t *testing.T) {
	svc, admins, admin := newAuthFixture(t)
	ctx := context.Background()

	admin.Active = false
	require.NoError(t, admins.Update(ctx, admin))

	_, err := svc.VerifyCredentials(ctx, "admin", "admin123456")
	require.Error(t, err)
	assert.Equal(t, MsgAdminNotFound, apperrors.ToDomainError(err).Message)
}

func TestLoginIssuesAuthorizableToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	admin, token, expiresAt, err := svc.Login(ctx, "admin", "admin123456")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	authorized, err := svc.Authorize(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, authorized.ID)
}

func TestAuthorizeRejectsDeactivatedAdmin(t *testing.T) {
	svc, admins, admin := newAuthFixture(t)
	ctx := context.Background()

	_, token, _, err := svc.Login(ctx, "admin", "admin123456")
	require.NoError(t, err)

	admin.Active = false
	require.NoError(t, admins.Update(ctx, admin))

	_, err = svc.Authorize(ctx, token)
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
}

func TestAuthorizeRejectsTamperedToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Authorize(context.Background(), "garbage.token.value")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.ToDomainError(err).HTTPStatus)
}

func TestCreateBootstrapAdmin(t *testing.T) {
	admins := repository.NewMemoryAdminRepository()
	svc := NewAuthService(testAuthConfig(), admins)
	ctx := context.Background()

	status, err := svc.AdminStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.CanCreateAdmin)

	admin, err := svc.CreateBootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.Equal(t, domain.AdminRoleSuperAdmin, admin.Role)
	assert.True(t, admin.Active)

	status, err = svc.AdminStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.HasAdmin)
	assert.False(t, status.CanCreateAdmin)

	// Second attempt refuses once any admin exists.
	_, err = svc.CreateBootstrapAdmin(ctx)
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.ToDomainError(err).HTTPStatus)
}

func TestSeedAdminResetsPassword(t *testing.T) {
	svc, admins, admin := newAuthFixture(t)
	ctx := context.Background()

	// Break the stored hash; the seed run should restore the configured password.
	lost, err := auth.HashPassword("forgotten-password", 4)
	require.NoError(t, err)
	admin.PasswordHash = lost
	require.NoError(t, admins.Update(ctx, admin))

	_, err = svc.VerifyCredentials(ctx, "admin", "admin123456")
	require.Error(t, err)

	_, created, err := svc.SeedAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)

	_, err = svc.VerifyCredentials(ctx, "admin", "admin123456")
	require.NoError(t, err)
}

func TestSeedAdminCreatesWhenMissing(t *testing.T) {
	admins := repository.NewMemoryAdminRepository()
	svc := NewAuthService(testAuthConfig(), admins)
	ctx := context.Background()

	admin, created, err := svc.SeedAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "admin", admin.Username)

	_, err = svc.VerifyCredentials(ctx, "admin", "admin123456")
	require.NoError(t, err)
}
