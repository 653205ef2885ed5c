package handlers

import (
	"github.com/gin-gonic/gin"

	"bahikhata/internal/domain/masters/godown"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// GodownHandler handles godown CRUD.
type GodownHandler struct {
	*BaseHandler
	service *godown.Service
}

// NewGodownHandler creates a new godown handler.
func NewGodownHandler(base *BaseHandler, service *godown.Service) *GodownHandler {
	return &GodownHandler{BaseHandler: base, service: service}
}

// Create handles POST /godowns.
func (h *GodownHandler) Create(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	var req dto.CreateGodownRequest
	if !h.BindJSON(c, &req) {
		return
	}

	g := godown.New(companyID, req.Name)
	if err := h.service.Create(c.Request.Context(), g); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, g.ID)
}

// Get handles GET /godowns/:id.
func (h *GodownHandler) Get(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	godownID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), companyID, godownID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, g)
}

// List handles GET /godowns.
func (h *GodownHandler) List(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	godowns, err := h.service.List(c.Request.Context(), companyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{Items: godowns, TotalCount: int64(len(godowns))})
}

// Update handles PUT /godowns/:id.
func (h *GodownHandler) Update(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	godownID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateGodownRequest
	if !h.BindJSON(c, &req) {
		return
	}

	g, err := h.service.Update(c.Request.Context(), companyID, godownID, req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, g)
}

// Delete handles DELETE /godowns/:id.
func (h *GodownHandler) Delete(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	godownID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), companyID, godownID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
