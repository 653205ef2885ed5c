// Package ledger provides the Ledger master. A ledger is one account:
// a party, a bank, a tax head or an expense head. Its group decides the
// balance sign convention.
package ledger

import (
	"context"
	"regexp"
	"strings"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/entity"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
)

// GSTIN format: 2-digit state code, PAN, entity number, Z, checksum.
var gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

// Ledger represents one account in the books.
type Ledger struct {
	entity.Base

	CompanyID      id.ID       `db:"company_id" json:"companyId"`
	Name           string      `db:"name" json:"name"`
	GroupID        id.ID       `db:"ledger_group_id" json:"ledgerGroupId"`
	GSTIN          *string     `db:"gstin" json:"gstin,omitempty"`
	OpeningBalance types.Money `db:"opening_balance" json:"openingBalance"`
}

// New creates a Ledger with required fields.
func New(companyID, groupID id.ID, name string) *Ledger {
	return &Ledger{
		Base:      entity.NewBase(),
		CompanyID: companyID,
		GroupID:   groupID,
		Name:      strings.TrimSpace(name),
	}
}

// Validate implements entity.Validatable.
func (l *Ledger) Validate(ctx context.Context) error {
	if strings.TrimSpace(l.Name) == "" {
		return apperror.NewValidation("ledger name is required").
			WithDetail("field", "name")
	}
	if id.IsNil(l.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	if id.IsNil(l.GroupID) {
		return apperror.NewValidation("ledger group is required").
			WithDetail("field", "ledgerGroupId")
	}
	if l.GSTIN != nil && *l.GSTIN != "" && !gstinPattern.MatchString(*l.GSTIN) {
		return apperror.NewValidation("invalid GSTIN").
			WithDetail("field", "gstin").
			WithDetail("value", *l.GSTIN)
	}
	return nil
}
