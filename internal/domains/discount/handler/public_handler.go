package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/domains/discount/service"
	"storefront-backend/internal/shared/response"
)

// PublicHandler serves the storefront-facing discount endpoints.
type PublicHandler struct {
	service service.DiscountService
}

func NewPublicHandler(service service.DiscountService) *PublicHandler {
	return &PublicHandler{service: service}
}

// ValidateCode handles POST /discounts/validate. It is a dry run: the
// storefront calls it whenever the customer types a code, so it must
// never change state.
func (h *PublicHandler) ValidateCode(c *gin.Context) {
	var req model.ValidateCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeInvalidInput), "Validation failed", err)
		return
	}

	quote, err := h.service.ValidateCode(c.Request.Context(), req)
	if err != nil {
		respondDiscountError(c, err)
		return
	}

	response.Success(c, http.StatusOK, quote)
}

// UseCode handles POST /discounts/use, committing one use of the code.
func (h *PublicHandler) UseCode(c *gin.Context) {
	var req model.UseCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeInvalidInput), "Validation failed", err)
		return
	}

	if err := h.service.UseCode(c.Request.Context(), req); err != nil {
		respondDiscountError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"code": model.NormalizeCode(req.Code), "used": true})
}

// respondDiscountError maps business errors onto the response envelope.
// Unknown errors become a 500 without leaking internals.
func respondDiscountError(c *gin.Context, err error) {
	var appErr *model.AppError
	if errors.As(err, &appErr) {
		if appErr.Details != nil {
			response.ErrorWithDetails(c, appErr.HTTPStatus, string(appErr.Code), appErr.Message, appErr.Details)
			return
		}
		response.ErrorResponse(c, appErr.HTTPStatus, string(appErr.Code), appErr.Message)
		return
	}
	response.InternalServerError(c, "Something went wrong")
}
