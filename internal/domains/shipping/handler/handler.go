package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront-backend/internal/domains/shipping/model"
	"storefront-backend/internal/domains/shipping/service"
	"storefront-backend/internal/shared/response"
)

type ShippingHandler struct {
	service service.ShippingService
}

func NewShippingHandler(service service.ShippingService) *ShippingHandler {
	return &ShippingHandler{service: service}
}

// GetSettings handles GET /shipping-settings. Public: the storefront
// reads the threshold to render the "add X more for free shipping"
// banner.
func (h *ShippingHandler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load shipping settings")
		return
	}
	response.Success(c, http.StatusOK, settings)
}

// Quote handles GET /shipping-settings/quote?subtotal=... and returns
// the full cost breakdown for a cart.
func (h *ShippingHandler) Quote(c *gin.Context) {
	subtotal, err := decimal.NewFromString(c.Query("subtotal"))
	if err != nil || subtotal.IsNegative() {
		response.BadRequest(c, "subtotal must be a non-negative number")
		return
	}

	quote, err := h.service.QuoteForCart(c.Request.Context(), subtotal)
	if err != nil {
		response.InternalServerError(c, "Failed to quote shipping")
		return
	}
	response.Success(c, http.StatusOK, quote)
}

// UpdateSettings handles POST /admin/shipping-settings.
func (h *ShippingHandler) UpdateSettings(c *gin.Context) {
	var req model.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	settings, err := h.service.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Failed to update shipping settings")
		return
	}
	response.Success(c, http.StatusCreated, settings)
}

// History handles GET /admin/shipping-settings/history.
func (h *ShippingHandler) History(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	history, err := h.service.History(c.Request.Context(), limit)
	if err != nil {
		response.InternalServerError(c, "Failed to load shipping settings history")
		return
	}
	response.Success(c, http.StatusOK, history)
}
