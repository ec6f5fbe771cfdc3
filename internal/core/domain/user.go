package domain

import "time"

// UserRole is the role a user holds within their tenant.
type UserRole string

const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// User represents an authenticated member of a tenant.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	TenantID     string   `json:"tenantID"`
	Email        string   `json:"email"` // Unique within a tenant among live rows
	PasswordHash string   `json:"-"`
	FirstName    string   `json:"firstName"`
	LastName     string   `json:"lastName"`
	Role         UserRole `json:"role"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`

	// Refresh token state. The raw token is never stored, only its hash.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}
