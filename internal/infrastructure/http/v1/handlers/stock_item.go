package handlers

import (
	"github.com/gin-gonic/gin"

	"bahikhata/internal/domain/masters/stockitem"
	"bahikhata/internal/infrastructure/http/v1/dto"
)

// StockItemHandler handles stock item CRUD.
type StockItemHandler struct {
	*BaseHandler
	service *stockitem.Service
}

// NewStockItemHandler creates a new stock item handler.
func NewStockItemHandler(base *BaseHandler, service *stockitem.Service) *StockItemHandler {
	return &StockItemHandler{BaseHandler: base, service: service}
}

// Create handles POST /stock-items.
func (h *StockItemHandler) Create(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	var req dto.CreateStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := stockitem.New(companyID, req.Name, req.Unit, req.GSTRate)
	item.ArticleNo = req.ArticleNo
	item.Category = req.Category

	if err := h.service.Create(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, item.ID)
}

// Get handles GET /stock-items/:id.
func (h *StockItemHandler) Get(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), companyID, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, item)
}

// List handles GET /stock-items.
func (h *StockItemHandler) List(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	filter := stockitem.Filter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    h.ParseIntQuery(c, "limit", 0),
		Offset:   h.ParseIntQuery(c, "offset", 0),
	}

	items, err := h.service.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: int64(len(items)),
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Update handles PUT /stock-items/:id.
func (h *StockItemHandler) Update(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := stockitem.New(companyID, req.Name, req.Unit, req.GSTRate)
	item.ID = itemID
	item.ArticleNo = req.ArticleNo
	item.Category = req.Category

	updated, err := h.service.Update(c.Request.Context(), item)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Delete handles DELETE /stock-items/:id.
func (h *StockItemHandler) Delete(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), companyID, itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}
