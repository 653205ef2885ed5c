package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/registers/stock"
)

// StockHandler exposes the stock register.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock register handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{BaseHandler: base, service: service}
}

// Quantity handles GET /stock/:itemId/quantity. Optional godownId,
// shade and lot query parameters narrow the dimension.
func (h *StockHandler) Quantity(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "itemId")
	if !ok {
		return
	}

	filter, ok := h.parseDimensionFilter(c)
	if !ok {
		return
	}

	qty, err := h.service.CurrentQuantity(c.Request.Context(), companyID, itemID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{
		"stockItemId": itemID,
		"quantity":    qty,
	})
}

// Movements handles GET /stock/:itemId/movements, newest first.
func (h *StockHandler) Movements(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	itemID, ok := h.ParseIDParam(c, "itemId")
	if !ok {
		return
	}

	dims, ok := h.parseDimensionFilter(c)
	if !ok {
		return
	}
	filter := stock.HistoryFilter{
		Filter: dims,
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if filter.FromDate, ok = h.parseDateQuery(c, "from"); !ok {
		return
	}
	if filter.ToDate, ok = h.parseDateQuery(c, "to"); !ok {
		return
	}

	movements, err := h.service.MovementHistory(c.Request.Context(), companyID, itemID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{
		"stockItemId": itemID,
		"movements":   movements,
	})
}

func (h *StockHandler) parseDimensionFilter(c *gin.Context) (stock.Filter, bool) {
	filter := stock.Filter{
		Shade: c.Query("shade"),
		Lot:   c.Query("lot"),
	}
	if raw := c.Query("godownId"); raw != "" {
		godownID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid godown id").WithDetail("param", "godownId"))
			return filter, false
		}
		filter.GodownID = &godownID
	}
	return filter, true
}

func (h *StockHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
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
