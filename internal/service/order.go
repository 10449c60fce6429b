package service

import (
	"context"
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/models"

	"github.com/google/uuid"
)

// Config is checkout policy, injected at construction. Currency is the single
// supported settlement currency; CancelWindow bounds self-service refunds.
type Config struct {
	Currency     string
	CancelWindow time.Duration
}

// ShippingDetails is the client-supplied shipping snapshot. Items and totals
// are never taken from the client.
type ShippingDetails struct {
	FullName      string
	Address       string
	City          string
	State         string
	PostalCode    string
	Country       string
	PaymentMethod models.PaymentMethod
}

func (d ShippingDetails) Validate() error {
	verr := &ValidationError{}
	if d.FullName == "" {
		verr.add("full_name", "is required")
	}
	if d.Address == "" {
		verr.add("address", "is required")
	}
	if d.City == "" {
		verr.add("city", "is required")
	}
	if d.PostalCode == "" {
		verr.add("postal_code", "is required")
	}
	if d.Country == "" {
		verr.add("country", "is required")
	}
	if !d.PaymentMethod.Valid() {
		verr.add("payment_method", "must be one of: card, paypal")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

type CreateOrderInput struct {
	PaymentIntentID string
	Shipping        ShippingDetails
}

// PaymentIntentResult is returned to the client so it can confirm the payment.
type PaymentIntentResult struct {
	ClientSecret    string
	PaymentIntentID string
}

type OrderService interface {
	// CreatePaymentIntent prices the current cart and asks the processor for
	// an authorization under a deterministic idempotency key.
	CreatePaymentIntent(ctx context.Context, attemptID string) (*PaymentIntentResult, error)
	// CreateOrder verifies a confirmed payment reference against the cart and
	// atomically materializes the order, debiting inventory and clearing the
	// cart. Idempotent per payment reference: a replay returns the existing
	// order with created=false.
	CreateOrder(ctx context.Context, in CreateOrderInput) (order *models.Order, created bool, err error)
	ListMyOrders(ctx context.Context) ([]models.Order, error)
	// CancelOrder refunds and cancels a paid order within the cancel window.
	CancelOrder(ctx context.Context, orderID uuid.UUID) (*models.Order, error)
}
