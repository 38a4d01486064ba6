// Package dto defines the JSON bodies the API accepts and returns.
package dto

import (
	"time"

	"github.com/minn-platform/backend/internal/domain/entity"
)

// RegisterRequest is the signup form. Role carries no binding tag so an
// unknown value reaches the use case and reports its domain code instead
// of a generic bind failure.
type RegisterRequest struct {
	FirstName    string `json:"first_name" binding:"required,min=1,max=100"`
	LastName     string `json:"last_name" binding:"required,min=1,max=100"`
	Email        string `json:"email" binding:"required,email"`
	Country      string `json:"country" binding:"required,min=1,max=100"`
	Organization string `json:"organization" binding:"max=200"`
	Role         string `json:"role"`
	Password     string `json:"password" binding:"required"`
}

// LoginRequest authenticates an account. Accounts sign in with the
// generated username, not the email address.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token to redeem for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest carries the refresh token to revoke.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ForgotPasswordRequest starts the password reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest redeems a reset token. The strength of the new
// password is never enforced here; the meter on the reset page is
// advisory only.
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterResponse confirms a new account. Username sits at the top
// level because the signup page shows it to the user as their sign-in
// name.
type RegisterResponse struct {
	Message  string       `json:"message"`
	Username string       `json:"username"`
	User     UserResponse `json:"user"`
}

// AuthResponse is the token pair plus account profile a login returns.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// TokenResponse is the fresh pair a refresh returns.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// MessageResponse carries a human-readable status line.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserResponse is the account as the API exposes it. It carries the
// public identifier, never the internal primary key.
type UserResponse struct {
	UserID       string    `json:"user_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Country      string    `json:"country"`
	Organization string    `json:"organization,omitempty"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// ErrorResponse is the uniform error body. Code is the stable identifier
// clients match on; Error is for humans and may change.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// ToUserResponse maps a domain account onto its API shape.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		UserID:       user.PublicID,
		Username:     user.Username,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Country:      user.Country,
		Organization: user.Organization,
		Role:         string(user.Role),
		CreatedAt:    user.CreatedAt,
	}
}
