package domain

import "time"

// AdminRole enumerates operator roles. The platform ships with a single
// bootstrap super-admin.
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super-admin"
	AdminRoleAdmin      AdminRole = "admin"
)

// Admin models a dashboard operator account.
type Admin struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         AdminRole
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
