// Package godown provides the Godown master, an optional storage
// location dimension on stock movements.
package godown

import (
	"context"
	"strings"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/entity"
	"bahikhata/internal/core/id"
)

// Godown is a warehouse or storage location.
type Godown struct {
	entity.Base

	CompanyID id.ID  `db:"company_id" json:"companyId"`
	Name      string `db:"name" json:"name"`
}

// New creates a Godown.
func New(companyID id.ID, name string) *Godown {
	return &Godown{
		Base:      entity.NewBase(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(name),
	}
}

// Validate implements entity.Validatable.
func (g *Godown) Validate(ctx context.Context) error {
	if strings.TrimSpace(g.Name) == "" {
		return apperror.NewValidation("godown name is required").
			WithDetail("field", "name")
	}
	if id.IsNil(g.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	return nil
}
