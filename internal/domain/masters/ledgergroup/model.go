// Package ledgergroup provides the LedgerGroup master.
// Groups classify ledgers into a tree and carry the accounting nature
// that decides the sign convention of every balance under them.
package ledgergroup

import (
	"context"
	"strings"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/entity"
	"bahikhata/internal/core/id"
)

// Nature is the accounting nature of a group.
// Asset and Expense balances grow with debits, Liability and Income
// balances grow with credits.
type Nature string

const (
	NatureAsset     Nature = "Asset"
	NatureLiability Nature = "Liability"
	NatureIncome    Nature = "Income"
	NatureExpense   Nature = "Expense"
)

// IsDebitNature reports whether balances of this nature are
// debit-positive.
func (n Nature) IsDebitNature() bool {
	return n == NatureAsset || n == NatureExpense
}

// LedgerGroup classifies ledgers. System groups are seeded at company
// provisioning and cannot be deleted.
type LedgerGroup struct {
	entity.Base

	CompanyID id.ID  `db:"company_id" json:"companyId"`
	Name      string `db:"name" json:"name"`
	ParentID  *id.ID `db:"parent_id" json:"parentId,omitempty"`
	Nature    Nature `db:"nature" json:"nature"`
	IsSystem  bool   `db:"is_system" json:"isSystem"`
}

// New creates a LedgerGroup with required fields.
func New(companyID id.ID, name string, nature Nature) *LedgerGroup {
	return &LedgerGroup{
		Base:      entity.NewBase(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(name),
		Nature:    nature,
	}
}

// Validate implements entity.Validatable.
func (g *LedgerGroup) Validate(ctx context.Context) error {
	if strings.TrimSpace(g.Name) == "" {
		return apperror.NewValidation("group name is required").
			WithDetail("field", "name")
	}
	if id.IsNil(g.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	if !isValidNature(g.Nature) {
		return apperror.NewValidation("invalid group nature").
			WithDetail("field", "nature").
			WithDetail("value", string(g.Nature))
	}
	return nil
}

func isValidNature(n Nature) bool {
	switch n {
	case NatureAsset, NatureLiability, NatureIncome, NatureExpense:
		return true
	}
	return false
}
