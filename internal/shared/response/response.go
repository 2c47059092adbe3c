package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body every endpoint returns. Exactly one of Data and
// Error is set; Meta only accompanies paginated listings.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// ErrorBody carries a stable machine-readable code alongside the
// human-readable message. Details holds structured context such as the
// below-minimum amounts from the discount taxonomy.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page       int `json:"page,omitempty"`
	Limit      int `json:"limit,omitempty"`
	Total      int `json:"total,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Envelope{Success: true, Data: data})
}

// SuccessWithMeta fills in TotalPages when the caller left it at zero.
func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	if meta != nil && meta.TotalPages == 0 && meta.Limit > 0 {
		meta.TotalPages = (meta.Total + meta.Limit - 1) / meta.Limit
	}
	c.JSON(statusCode, Envelope{Success: true, Data: data, Meta: meta})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	fail(c, statusCode, &ErrorBody{Code: code, Message: message})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	fail(c, statusCode, &ErrorBody{Code: code, Message: message, Details: details})
}

func fail(c *gin.Context, statusCode int, body *ErrorBody) {
	c.JSON(statusCode, Envelope{Success: false, Error: body})
}

// Shorthands for the common failure statuses. Handlers with their own
// error taxonomy (discount, payment) call ErrorResponse directly with
// the domain code instead.

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}
