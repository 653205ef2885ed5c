// Package company provides tenant provisioning: creating a company
// with its owner user and the seed chart of accounts every posting
// flow relies on.
package company

import (
	"context"
	"strings"
	"time"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
)

// Company is one tenant. All business rows carry its id.
type Company struct {
	ID            id.ID     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	GSTIN         *string   `db:"gstin" json:"gstin,omitempty"`
	State         *string   `db:"state" json:"state,omitempty"`
	FinancialYear *string   `db:"financial_year" json:"financialYear,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// New creates a Company.
func New(name string) *Company {
	return &Company{
		ID:        id.New(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks required fields.
func (c *Company) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("company name is required").
			WithDetail("field", "name")
	}
	return nil
}

// SignupInput is the provisioning request.
type SignupInput struct {
	CompanyName string `json:"companyName"`
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}
