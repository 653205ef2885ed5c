package dto

import (
	"github.com/shopspring/decimal"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/core/types"
	"bahikhata/internal/domain/masters/ledger"
)

// CreateLedgerGroupRequest creates a ledger group.
type CreateLedgerGroupRequest struct {
	Name     string  `json:"name" binding:"required"`
	Nature   string  `json:"nature" binding:"required"`
	ParentID *string `json:"parentId"`
}

// UpdateLedgerGroupRequest renames or re-parents a group.
type UpdateLedgerGroupRequest struct {
	Name     string  `json:"name" binding:"required"`
	ParentID *string `json:"parentId"`
}

// CreateLedgerRequest creates a ledger.
type CreateLedgerRequest struct {
	Name           string      `json:"name" binding:"required"`
	GroupID        string      `json:"ledgerGroupId" binding:"required"`
	GSTIN          *string     `json:"gstin"`
	OpeningBalance types.Money `json:"openingBalance"`
}

// UpdateLedgerRequest updates a ledger. Nil fields stay unchanged.
type UpdateLedgerRequest struct {
	Name           *string      `json:"name"`
	GSTIN          *string      `json:"gstin"`
	GroupID        *string      `json:"ledgerGroupId"`
	OpeningBalance *types.Money `json:"openingBalance"`
}

// ToInput converts the request into the service input.
func (r UpdateLedgerRequest) ToInput() (ledger.UpdateInput, error) {
	in := ledger.UpdateInput{
		Name:           r.Name,
		GSTIN:          r.GSTIN,
		OpeningBalance: r.OpeningBalance,
	}
	if r.GroupID != nil {
		parsed, err := id.Parse(*r.GroupID)
		if err != nil {
			return in, apperror.NewValidation("invalid ledger group id").
				WithDetail("field", "ledgerGroupId")
		}
		in.GroupID = &parsed
	}
	return in, nil
}

// CreateStockItemRequest creates a stock item.
type CreateStockItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	ArticleNo string          `json:"articleNo"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit" binding:"required"`
	GSTRate   decimal.Decimal `json:"gstRate"`
}

// UpdateStockItemRequest rewrites the editable fields of an item.
type UpdateStockItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	ArticleNo string          `json:"articleNo"`
	Category  string          `json:"category"`
	Unit      string          `json:"unit" binding:"required"`
	GSTRate   decimal.Decimal `json:"gstRate"`
}

// CreateGodownRequest creates a godown.
type CreateGodownRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateGodownRequest renames a godown.
type UpdateGodownRequest struct {
	Name string `json:"name" binding:"required"`
}
