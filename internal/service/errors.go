package service

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthorized = errors.New("unauthorized")

	// Cart.
	ErrQuantityInvalid  = errors.New("quantity must be >= 1")
	ErrCartEmpty        = errors.New("cart is empty")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrVariantNotFound  = errors.New("product size not found")

	// Payment intent / commit verification.
	ErrInvalidTotal              = errors.New("invalid cart total")
	ErrMissingPaymentReference   = errors.New("payment_intent_id is required")
	ErrMissingAttemptID          = errors.New("attempt_id is required")
	ErrPaymentPreparationFailed  = errors.New("payment could not be prepared")
	ErrInvalidPaymentReference   = errors.New("invalid payment_intent_id")
	ErrPaymentNotCompleted       = errors.New("payment not completed")
	ErrAmountMismatch            = errors.New("paid amount does not match cart total")
	ErrCurrencyMismatch          = errors.New("invalid currency")
	ErrPaymentOwnershipMismatch  = errors.New("payment does not belong to this user")

	// Cancellation.
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancelable  = errors.New("only paid orders can be canceled")
	ErrCancelWindowExpired = errors.New("cancellation window has expired")
	ErrRefundFailed        = errors.New("refund failed")
)

// InsufficientStockError reports how much of a variant is actually available
// versus what the operation asked for.
type InsufficientStockError struct {
	ProductName string
	SizeName    string
	Available   int64
	Requested   int64
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("not enough stock for size %q of %q: available %d, requested %d",
			e.SizeName, e.ProductName, e.Available, e.Requested)
	}
	return fmt.Sprintf("not enough stock: available %d, requested %d", e.Available, e.Requested)
}

type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries field-level failures for malformed input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string { return "validation failed" }

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}
