// Package auth provides the thin authentication layer: user accounts,
// password verification and JWT issuance. Every token carries the
// user's company id, which scopes all further data access.
package auth

import (
	"context"
	"regexp"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
)

// Roles. The owner is created at provisioning; staff users are added
// later by the owner.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// User represents one login of a company.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	CompanyID    id.ID     `db:"company_id" json:"companyId"`
	Email        string    `db:"email" json:"email"`
	FullName     string    `db:"full_name" json:"fullName"`
	Role         string    `db:"role" json:"role"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// NewUser creates a user with a pre-hashed password.
func NewUser(companyID id.ID, email, fullName, role, passwordHash string) *User {
	return &User{
		ID:           id.New(),
		CompanyID:    companyID,
		Email:        email,
		FullName:     fullName,
		Role:         role,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

// Validate checks required fields.
func (u *User) Validate(ctx context.Context) error {
	if u.Email == "" {
		return apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if !emailPattern.MatchString(u.Email) {
		return apperror.NewValidation("invalid email").WithDetail("field", "email")
	}
	if id.IsNil(u.CompanyID) {
		return apperror.NewValidation("company is required").WithDetail("field", "companyId")
	}
	return nil
}

// Credentials for login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Token is an issued access token.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}
