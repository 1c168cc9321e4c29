package services

import "errors"

// Service-level error taxonomy. Controllers map these onto HTTP codes;
// nothing below this line ever leaks a gorm error for a missing row.
var (
	ErrOrderNotFound   = errors.New("order not found or not assigned to you")
	ErrDishNotFound    = errors.New("dish not found")
	ErrPartnerNotFound = errors.New("delivery partner not found")
	ErrEmptyCart       = errors.New("your cart is empty")
	ErrDraftRequired   = errors.New("delivery details are required before checkout")
	ErrInvalidStatus   = errors.New("status must not be empty")
	ErrInvalidPrice    = errors.New("invalid price")
	ErrForbidden       = errors.New("you do not have permission")
)
