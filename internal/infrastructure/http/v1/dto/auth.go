package dto

import (
	"time"

	"bahikhata/internal/domain/auth"
)

// SignupRequest provisions a company with its owner user.
type SignupRequest struct {
	CompanyName string `json:"companyName" binding:"required"`
	FullName    string `json:"fullName"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"companyId"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
}

// FromUser creates UserResponse from auth.User.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		CompanyID: u.CompanyID.String(),
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
	}
}

// LoginResponse carries the issued token and the user.
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// SignupResponse returns the new company id.
type SignupResponse struct {
	CompanyID string `json:"companyId"`
}
