package service

import (
	"context"
)

// Payment statuses as reported by the processor.
const PaymentStatusSucceeded = "succeeded"

// CardDetails is display metadata extracted best-effort from the processor's
// charge/payment-method objects. Any of the fields may be empty.
type CardDetails struct {
	Brand      string
	Last4      string
	HolderName string
}

// PaymentIntent is the typed boundary view of the processor's intent object.
type PaymentIntent struct {
	ID             string
	ClientSecret   string
	Status         string
	AmountReceived int64
	Currency       string
	Metadata       map[string]string
	Card           CardDetails
}

type CreateIntentInput struct {
	AmountCents    int64
	Currency       string
	IdempotencyKey string
	ReceiptEmail   string
	Description    string
	Metadata       map[string]string
}

// PaymentProcessor is the external card processor boundary.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (*PaymentIntent, error)
	// RetrieveIntent expands charge and payment-method details so card display
	// fields can be captured.
	RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error)
	Refund(ctx context.Context, paymentIntentID string) error
}
