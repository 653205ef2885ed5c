package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bahikhata/internal/core/apperror"
	"bahikhata/internal/core/id"
	"bahikhata/internal/domain/voucher"
)

const dateLayout = "2006-01-02"

// VoucherHandler handles voucher posting and retrieval.
type VoucherHandler struct {
	*BaseHandler
	service *voucher.Service
}

// NewVoucherHandler creates a new voucher handler.
func NewVoucherHandler(base *BaseHandler, service *voucher.Service) *VoucherHandler {
	return &VoucherHandler{BaseHandler: base, service: service}
}

// Post handles POST /vouchers. The request body binds straight to
// voucher.PostInput; amounts arrive as JSON numbers in rupees and
// quantities in display units.
func (h *VoucherHandler) Post(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	var in voucher.PostInput
	if !h.BindJSON(c, &in) {
		return
	}

	posted, err := h.service.Post(c.Request.Context(), companyID, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, posted)
}

// Get handles GET /vouchers/:id with items and journal entries.
func (h *VoucherHandler) Get(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}
	voucherID, ok := h.ParseIDParam(c, "id")
	if !ok {
		return
	}

	v, err := h.service.GetByID(c.Request.Context(), companyID, voucherID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, v)
}

// List handles GET /vouchers with filtering and pagination.
func (h *VoucherHandler) List(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	filter, ok := h.parseListFilter(c)
	if !ok {
		return
	}

	result, err := h.service.List(c.Request.Context(), companyID, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// NextNumber handles GET /vouchers/next-number?type=. The returned
// number is advisory and not reserved.
func (h *VoucherHandler) NextNumber(c *gin.Context) {
	companyID, ok := h.CompanyID(c)
	if !ok {
		return
	}

	t := voucher.Type(c.Query("type"))
	number, err := h.service.NextNumberPreview(c.Request.Context(), companyID, t)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"type": t, "nextNumber": number})
}

func (h *VoucherHandler) parseListFilter(c *gin.Context) (voucher.ListFilter, bool) {
	filter := voucher.ListFilter{
		Limit:  h.ParseIntQuery(c, "limit", 50),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}

	if raw := c.Query("type"); raw != "" {
		t := voucher.Type(raw)
		if !t.IsValid() {
			h.Error(c, apperror.NewValidation("invalid voucher type").WithDetail("param", "type"))
			return filter, false
		}
		filter.Type = &t
	}
	if raw := c.Query("partyLedgerId"); raw != "" {
		partyID, err := id.Parse(raw)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid party ledger id").WithDetail("param", "partyLedgerId"))
			return filter, false
		}
		filter.PartyLedgerID = &partyID
	}

	var ok bool
	if filter.FromDate, ok = h.parseDateQuery(c, "from"); !ok {
		return filter, false
	}
	if filter.ToDate, ok = h.parseDateQuery(c, "to"); !ok {
		return filter, false
	}

	return filter, true
}

func (h *VoucherHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
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
