package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	discountmodel "storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/service"
	"storefront-backend/internal/shared/response"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Checkout handles POST /orders
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	order, err := h.service.Checkout(c.Request.Context(), userID, req)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, order)
}

// List handles GET /orders for the authenticated customer.
func (h *OrderHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var q model.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Normalize()

	orders, total, err := h.service.ListForUser(c.Request.Context(), userID, q)
	if err != nil {
		response.InternalServerError(c, "Failed to list orders")
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  q.Page,
		Limit: q.Limit,
		Total: int(total),
	})
}

// Get handles GET /orders/:id for the authenticated customer.
func (h *OrderHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.service.GetForUser(c.Request.Context(), userID, orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// Cancel handles POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	if err := h.service.Cancel(c.Request.Context(), userID, orderID); err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"cancelled": true})
}

// AdminList handles GET /admin/orders
func (h *OrderHandler) AdminList(c *gin.Context) {
	var q model.ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Normalize()

	orders, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list orders")
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, orders, &response.Meta{
		Page:  q.Page,
		Limit: q.Limit,
		Total: int(total),
	})
}

// AdminGet handles GET /admin/orders/:id
func (h *OrderHandler) AdminGet(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	order, err := h.service.Get(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

// UpdateStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	var req model.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	order, err := h.service.UpdateStatus(c.Request.Context(), orderID, req)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, order)
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		response.Unauthorized(c, "Authentication required")
		return uuid.Nil, false
	}
	return id, true
}

func respondOrderError(c *gin.Context, err error) {
	// Discount failures surface with their own codes so the
	// storefront can message them the same way as validation.
	var appErr *discountmodel.AppError
	if errors.As(err, &appErr) {
		if appErr.Details != nil {
			response.ErrorWithDetails(c, appErr.HTTPStatus, string(appErr.Code), appErr.Message, appErr.Details)
			return
		}
		response.ErrorResponse(c, appErr.HTTPStatus, string(appErr.Code), appErr.Message)
		return
	}

	switch {
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, "Order not found")
	case errors.Is(err, model.ErrNotOwner):
		response.Forbidden(c, "Order belongs to another user")
	case errors.Is(err, model.ErrEmptyCart):
		response.BadRequest(c, "Cart is empty")
	case errors.Is(err, model.ErrProductUnavailable):
		response.Conflict(c, "A product in your cart is unavailable or out of stock")
	case errors.Is(err, model.ErrInvalidTransition):
		response.Conflict(c, "Order cannot change to that status")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
