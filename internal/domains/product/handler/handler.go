package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"storefront-backend/internal/domains/product/model"
	"storefront-backend/internal/domains/product/service"
	"storefront-backend/internal/shared/response"
)

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products. The storefront only sees active products.
func (h *ProductHandler) List(c *gin.Context) {
	var q model.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Status = model.StatusActive
	q.Normalize()

	products, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list products")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, &response.Meta{
		Page:  q.Page,
		Limit: q.Limit,
		Total: int(total),
	})
}

// Get handles GET /products/:slug. Product pages link by slug; a raw
// UUID still resolves so old links keep working.
func (h *ProductHandler) Get(c *gin.Context) {
	key := c.Param("slug")

	var p *model.Product
	var err error
	if id, parseErr := uuid.Parse(key); parseErr == nil {
		p, err = h.service.GetByID(c.Request.Context(), id)
	} else {
		p, err = h.service.GetBySlug(c.Request.Context(), key)
	}
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create handles POST /admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	p, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.InternalServerError(c, "Failed to create product")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Update handles PUT /admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VAL_INVALID_INPUT", "Validation failed", err)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Delete handles DELETE /admin/products/:id. The product is
// deactivated, not removed, so order history stays intact.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid product id")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondProductError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// AdminList handles GET /admin/products, including inactive products.
func (h *ProductHandler) AdminList(c *gin.Context) {
	var q model.ListProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Normalize()

	products, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		response.InternalServerError(c, "Failed to list products")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, products, &response.Meta{
		Page:  q.Page,
		Limit: q.Limit,
		Total: int(total),
	})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		response.NotFound(c, "Product not found")
	case errors.Is(err, model.ErrSlugTaken):
		response.Conflict(c, "Product slug already in use")
	default:
		response.InternalServerError(c, "Something went wrong")
	}
}
