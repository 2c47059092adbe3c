package model

import "errors"

var (
	ErrNotFound           = errors.New("order not found")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductUnavailable = errors.New("product unavailable or out of stock")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrNotOwner           = errors.New("order belongs to another user")
)
