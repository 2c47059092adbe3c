package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/discount/model"
	"storefront-backend/internal/domains/discount/service"
	"storefront-backend/internal/shared/response"
	"storefront-backend/pkg/logger"
)

// AdminHandler serves discount code management. All routes sit behind
// the auth and admin middlewares.
type AdminHandler struct {
	service service.DiscountService
}

func NewAdminHandler(service service.DiscountService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Create handles POST /admin/discounts
func (h *AdminHandler) Create(c *gin.Context) {
	var req model.CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeInvalidInput), "Validation failed", err)
		return
	}

	d, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondDiscountError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, d)
}

// Update handles PUT /admin/discounts/:id
func (h *AdminHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount id")
		return
	}

	var req model.UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, string(model.ErrCodeInvalidInput), "Validation failed", err)
		return
	}

	d, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondDiscountError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d)
}

// Get handles GET /admin/discounts/:id
func (h *AdminHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount id")
		return
	}

	d, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondDiscountError(c, err)
		return
	}

	response.Success(c, http.StatusOK, d)
}

// List handles GET /admin/discounts
func (h *AdminHandler) List(c *gin.Context) {
	var q model.ListDiscountsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Normalize()

	codes, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		respondDiscountError(c, err)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, codes, &response.Meta{
		Page:  q.Page,
		Limit: q.Limit,
		Total: int(total),
	})
}

// Deactivate handles DELETE /admin/discounts/:id. Codes are disabled,
// never removed.
func (h *AdminHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid discount id")
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		respondDiscountError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deactivated": true})
}

// ExportUsage handles GET /admin/discount-usage/:code/export and
// streams an XLSX workbook.
func (h *AdminHandler) ExportUsage(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Missing discount code")
		return
	}

	f, err := h.service.ExportUsage(c.Request.Context(), code)
	if err != nil {
		respondDiscountError(c, err)
		return
	}

	filename := fmt.Sprintf("discount-usage-%s.xlsx", model.NormalizeCode(code))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		logger.Error("write usage export", err)
	}
}
