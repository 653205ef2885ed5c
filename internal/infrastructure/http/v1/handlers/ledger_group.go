package handlers

import (
	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/masters/ledgergroup"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// LedgerGroupHandler handles ledger group CRUD.
type LedgerGroupHandler struct {
	*BaseHandler
	service *ledgergroup.Service
}

// NewLedgerGroupHandler creates a new ledger group handler.
func NewLedgerGroupHandler(base *BaseHandler, service *ledgergroup.Service) *LedgerGroupHandler {
	return &LedgerGroupHandler{BaseHandler: base, service: service}
}

// Create handles POST /ledger-groups.
func (h *LedgerGroupHandler) Create(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	var req dto.CreateLedgerGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	group := ledgergroup.New(companyID, req.Name, ledgergroup.Nature(req.Nature))
	if req.ParentID != nil {
		parentID, err := id.Parse(*req.ParentID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid parent id").WithDetail("field", "parentId"))
			return
		}
		group.ParentID = &parentID
	}

	if err := h.service.Create(c.Request.Context(), group); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, group.ID)
}

// Get handles GET /ledger-groups/:id.
func (h *LedgerGroupHandler) Get(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	groupID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	group, err := h.service.GetByID(c.Request.Context(), companyID, groupID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, group)
}

// List handles GET /ledger-groups.
func (h *LedgerGroupHandler) List(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	groups, err := h.service.List(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: groups, TotalCount: int64(len(groups))})
}

// Update handles PUT /ledger-groups/:id.
func (h *LedgerGroupHandler) Update(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	groupID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateLedgerGroupRequest
	if !h.BindJSON(c, &req) {
		return
	}

	var parentID *id.ID
	if req.ParentID != nil {
		parsed, err := id.Parse(*req.ParentID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid parent id").WithDetail("field", "parentId"))
			return
		}
		parentID = &parsed
	}

	group, err := h.service.Update(c.Request.Context(), companyID, groupID, req.Name, parentID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, group)
}

// Delete handles DELETE /ledger-groups/:id.
func (h *LedgerGroupHandler) Delete(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	groupID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), companyID, groupID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
