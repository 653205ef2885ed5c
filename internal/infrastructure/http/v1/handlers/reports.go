package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/domain/reports"
)

// ReportsHandler exposes the derived read models.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// LedgerBalance handles GET /reports/ledger-balance/:ledgerId.
func (h *ReportsHandler) LedgerBalance(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	ledgerID, ok := h.ParseIDParam(c, "ledgerId")
	if !ok {
		return
	}

	balance, err := h.service.GetLedgerBalance(c.Request.Context(), companyID, ledgerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, balance)
}

// TrialBalance handles GET /reports/trial-balance.
func (h *ReportsHandler) TrialBalance(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	report, err := h.service.GetTrialBalance(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, report)
}

// StockSummary handles GET /reports/stock-summary.
func (h *ReportsHandler) StockSummary(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	rows, err := h.service.GetStockSummary(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"rows": rows})
}

// Outstanding handles GET /reports/outstanding.
func (h *ReportsHandler) Outstanding(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	balances, err := h.service.GetOutstanding(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"balances": balances})
}

// LedgerStatement handles GET /reports/ledger-statement/:ledgerId with
// optional from/to date bounds.
func (h *ReportsHandler) LedgerStatement(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	ledgerID, ok := h.ParseIDParam(c, "ledgerId")
	if !ok {
		return
	}

	var filter reports.StatementFilter
	if filter.FromDate, ok = h.parseDateQuery(c, "from"); !ok {
		return
	}
	if filter.ToDate, ok = h.parseDateQuery(c, "to"); !ok {
		return
	}

	statement, err := h.service.GetLedgerStatement(c.Request.Context(), companyID, ledgerID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, statement)
}

func (h *ReportsHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid date, expected YYYY-MM-DD").WithDetail("param", key))
		return nil, false
	}
	return &parsed, true
}
