package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/infrastructure/http/v1/dto"
	"bahikhata/internal/infrastructure/storage/postgres"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// Tables whose change history may be requested over the API.
var auditableTables = map[string]bool{
	"companies":     true,
	"ledger_groups": true,
	"ledgers":       true,
	"stock_items":   true,
	"godowns":       true,
	"vouchers":      true,
}

// AuditHistory reads the change trail of a record. Satisfied by
// postgres.AuditService.
type AuditHistory interface {
	GetRecordHistory(ctx context.Context, companyID id.ID, tableName string, recordID id.ID, limit int) ([]postgres.AuditEntry, error)
}

// AuditHandler serves the audit trail of audited records.
type AuditHandler struct {
	*BaseHandler
	history AuditHistory
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, history AuditHistory) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		history:     history,
	}
}

// History handles GET /audit/:table/:recordId - returns the change
// history of one record, newest first.
func (h *AuditHandler) History(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	table := c.Param("table")
	if !auditableTables[table] {
		h.Error(c, apperror.NewValidation("unknown audit table").
			WithDetail("table", table))
		return
	}

	recordID, ok := h.ParseIDParam(c, "recordId")
	if !ok {
		return
	}

	limit := h.ParseIntQuery(c, "limit", defaultHistoryLimit)
	if limit <= 0 || limit > maxHistoryLimit {
		limit = defaultHistoryLimit
	}

	entries, err := h.history.GetRecordHistory(c.Request.Context(), companyID, table, recordID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromAuditEntries(entries))
}
