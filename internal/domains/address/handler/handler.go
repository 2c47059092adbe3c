package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront-backend/internal/domains/address/service"
	"storefront-backend/internal/shared/response"
)

type AddressHandler struct {
	service service.AddressService
}

func NewAddressHandler(service service.AddressService) *AddressHandler {
	return &AddressHandler{service: service}
}

// Provinces handles GET /addresses/provinces
func (h *AddressHandler) Provinces(c *gin.Context) {
	provinces, err := h.service.Provinces(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, "Failed to load provinces")
		return
	}
	response.Success(c, http.StatusOK, provinces)
}

// Districts handles GET /addresses/provinces/:id/districts
func (h *AddressHandler) Districts(c *gin.Context) {
	provinceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid province id")
		return
	}

	districts, err := h.service.Districts(c.Request.Context(), provinceID)
	if err != nil {
		response.InternalServerError(c, "Failed to load districts")
		return
	}
	response.Success(c, http.StatusOK, districts)
}

// ZipLookup handles GET /addresses/zip/:code. Thai zip codes are five
// digits; one code may resolve to several subdistricts.
func (h *AddressHandler) ZipLookup(c *gin.Context) {
	code := c.Param("code")
	if len(code) != 5 {
		response.BadRequest(c, "Zip code must be 5 digits")
		return
	}
	if _, err := strconv.Atoi(code); err != nil {
		response.BadRequest(c, "Zip code must be 5 digits")
		return
	}

	entries, err := h.service.ByZipCode(c.Request.Context(), code)
	if err != nil {
		response.InternalServerError(c, "Failed to look up zip code")
		return
	}
	if len(entries) == 0 {
		response.NotFound(c, "Zip code not found")
		return
	}
	response.Success(c, http.StatusOK, entries)
}

// Subdistricts handles GET /addresses/districts/:id/subdistricts
func (h *AddressHandler) Subdistricts(c *gin.Context) {
	districtID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid district id")
		return
	}

	subdistricts, err := h.service.Subdistricts(c.Request.Context(), districtID)
	if err != nil {
		response.InternalServerError(c, "Failed to load subdistricts")
		return
	}
	response.Success(c, http.StatusOK, subdistricts)
}
