package model

type ErrorCode string

const (
	// Validation failures (storefront-facing)
	ErrCodeInvalidCartTotal ErrorCode = "DISCOUNT_INVALID_CART_TOTAL" // 400
	ErrCodeNotFound         ErrorCode = "DISCOUNT_NOT_FOUND"          // 404
	ErrCodeExpired          ErrorCode = "DISCOUNT_EXPIRED"            // 404
	ErrCodeExhausted        ErrorCode = "DISCOUNT_EXHAUSTED"          // 404
	ErrCodeBelowMinimum     ErrorCode = "DISCOUNT_BELOW_MINIMUM"      // 400

	// Admin operation failures
	ErrCodeDuplicateCode ErrorCode = "DISCOUNT_DUPLICATE_CODE" // 409
	ErrCodeInvalidInput  ErrorCode = "VAL_INVALID_INPUT"       // 400

	// System errors
	ErrCodeInternal ErrorCode = "SYS_INTERNAL_ERROR" // 500
)

// AppError is a business error with a stable code and an HTTP status.
// All discount failures are expected conditions, not exceptions.
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	HTTPStatus int                    `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Predefined errors
var (
	ErrInvalidCartTotal = &AppError{
		Code:       ErrCodeInvalidCartTotal,
		Message:    "Cart total must be greater than zero",
		HTTPStatus: 400,
	}

	ErrNotFound = &AppError{
		Code:       ErrCodeNotFound,
		Message:    "Discount code not found or inactive",
		HTTPStatus: 404,
	}

	ErrExpired = &AppError{
		Code:       ErrCodeExpired,
		Message:    "Discount code has expired",
		HTTPStatus: 404,
	}

	ErrExhausted = &AppError{
		Code:       ErrCodeExhausted,
		Message:    "Discount code has reached its usage limit",
		HTTPStatus: 404,
	}

	ErrDuplicateCode = &AppError{
		Code:       ErrCodeDuplicateCode,
		Message:    "Discount code already exists",
		HTTPStatus: 409,
	}
)

// NewBelowMinimumError carries the minimum amount so the storefront can
// show the customer how far they are from qualifying.
func NewBelowMinimumError(minAmount, cartTotal string) *AppError {
	return &AppError{
		Code:       ErrCodeBelowMinimum,
		Message:    "Cart total does not meet the minimum of " + minAmount + " THB",
		HTTPStatus: 400,
		Details: map[string]interface{}{
			"min_amount": minAmount,
			"cart_total": cartTotal,
		},
	}
}
