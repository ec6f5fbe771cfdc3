package dto

import "time"

// RegisterRequest defines data for registering a new tenant with its first admin user.
type RegisterRequest struct {
	TenantName      string `json:"tenantName" binding:"required"`
	TenantDomain    string `json:"tenantDomain" binding:"required,hostname_rfc1123"`
	DefaultCurrency string `json:"defaultCurrency" binding:"omitempty,iso4217"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName"`
}

// LoginRequest defines the credentials for a password login.
type LoginRequest struct {
	TenantDomain string `json:"tenantDomain" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token        string       `json:"token"`
	RefreshToken string       `json:"refreshToken"`
	ExpiresAt    time.Time    `json:"expiresAt"`
	User         UserResponse `json:"user"`
}

// RefreshTokenRequest carries a refresh token for rotation.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}
