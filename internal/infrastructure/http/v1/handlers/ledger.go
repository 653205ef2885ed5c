package handlers

import (
	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/masters/ledger"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// LedgerHandler handles ledger CRUD.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{BaseHandler: base, service: service}
}

// Create handles POST /ledgers.
func (h *LedgerHandler) Create(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	var req dto.CreateLedgerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	groupID, err := id.Parse(req.GroupID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid ledger group id").WithDetail("field", "ledgerGroupId"))
		return
	}

	l := ledger.New(companyID, groupID, req.Name)
	l.GSTIN = req.GSTIN
	l.OpeningBalance = req.OpeningBalance

	if err := h.service.Create(c.Request.Context(), l); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, l.ID)
}

// Get handles GET /ledgers/:id.
func (h *LedgerHandler) Get(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	ledgerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	l, err := h.service.GetByID(c.Request.Context(), companyID, ledgerID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, l)
}

// List handles GET /ledgers.
func (h *LedgerHandler) List(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	filter := ledger.Filter{
		Search: c.Query("search"),
		Limit:  h.ParseIntQuery(c, "limit", 0),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if raw := c.Query("groupId"); raw != "" {
		groupID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid group id").WithDetail("param", "groupId"))
			return
		}
		filter.GroupID = &groupID
	}

	ledgers, err := h.service.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      ledgers,
		TotalCount: int64(len(ledgers)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Update handles PUT /ledgers/:id.
func (h *LedgerHandler) Update(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	ledgerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateLedgerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	in, err := req.ToInput()
	if err != nil {
		h.Error(c, err)
		return
	}

	l, err := h.service.Update(c.Request.Context(), companyID, ledgerID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, l)
}

// Delete handles DELETE /ledgers/:id.
func (h *LedgerHandler) Delete(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	ledgerID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), companyID, ledgerID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
