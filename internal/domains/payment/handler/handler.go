package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	ordermodel "storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/payment/model"
	"storefront-backend/internal/domains/payment/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(service service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Create handles POST /payments
func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req model.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	payment, err := h.service.CreatePayment(c.Request.Context(), userID, req)
	if err != nil {
		if errors.Is(err, model.ErrChargeFailed) {
			// The payment row is returned so the storefront can show
			// the decline reason.
			response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "PAY_CHARGE_FAILED", "Charge was declined", payment)
			return
		}
		respondPaymentError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, payment)
}

// Status handles GET /payments/orders/:orderId
func (h *PaymentHandler) Status(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, err := uuid.Parse(c.Param("orderId"))
	if err != nil {
		response.BadRequest(c, "Invalid order id")
		return
	}

	payment, err := h.service.GetStatus(c.Request.Context(), userID, orderID)
	if err != nil {
		respondPaymentError(c, err)
		return
	}
	response.Success(c, http.StatusOK, payment)
}

// Webhook handles POST /webhooks/omise. Always answers 200 for events
// we chose to ignore, so the provider stops retrying them.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	var event model.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		response.BadRequest(c, "Invalid webhook payload")
		return
	}

	if err := h.service.HandleWebhook(c.Request.Context(), event); err != nil {
		logger.Error("webhook processing", err)
		// Non-200 makes the provider redeliver later.
		response.InternalServerError(c, "Webhook processing failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"received": true})
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

func respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, "Payment not found")
	case errors.Is(err, model.ErrOrderNotPayable):
		response.Conflict(c, "Order is not awaiting payment")
	case errors.Is(err, ordermodel.ErrNotFound):
		response.NotFound(c, "Order not found")
	case errors.Is(err, ordermodel.ErrNotOwner):
		response.Forbidden(c, "Order belongs to another user")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
