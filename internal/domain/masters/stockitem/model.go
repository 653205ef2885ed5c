// Package stockitem provides the StockItem master for inventory goods.
package stockitem

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/entity"
	"bahikhata/internal/core/id"
)

var hundred = decimal.NewFromInt(100)

// StockItem is master data for one traded good. GSTRate is the default
// tax percentage applied to voucher lines referencing the item.
type StockItem struct {
	entity.Base

	CompanyID id.ID           `db:"company_id" json:"companyId"`
	Name      string          `db:"name" json:"name"`
	ArticleNo string          `db:"article_no" json:"articleNo"`
	Category  string          `db:"category" json:"category"`
	Unit      string          `db:"unit" json:"unit"`
	GSTRate   decimal.Decimal `db:"gst_rate" json:"gstRate"`
}

// New creates a StockItem with required fields.
func New(companyID id.ID, name, unit string, gstRate decimal.Decimal) *StockItem {
	return &StockItem{
		Base:      entity.NewBase(),
		CompanyID: companyID,
		Name:      strings.TrimSpace(name),
		Unit:      unit,
		GSTRate:   gstRate,
	}
}

// Validate implements entity.Validatable.
func (i *StockItem) Validate(ctx context.Context) error {
	if strings.TrimSpace(i.Name) == "" {
		return apperror.NewValidation("item name is required").
			WithDetail("field", "name")
	}
	if id.IsNil(i.CompanyID) {
		return apperror.NewValidation("company is required").
			WithDetail("field", "companyId")
	}
	if strings.TrimSpace(i.Unit) == "" {
		return apperror.NewValidation("unit is required").
			WithDetail("field", "unit")
	}
	if i.GSTRate.IsNegative() || i.GSTRate.GreaterThan(hundred) {
		return apperror.NewValidation("gst rate must be between 0 and 100").
			WithDetail("field", "gstRate").
			WithDetail("value", i.GSTRate.String())
	}
	return nil
}
