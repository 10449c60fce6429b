package service

import (
	"context"

	"github.com/google/uuid"
)

type NotificationItem struct {
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

// OrderNotification is the payload handed to the notifier after a commit or
// cancellation. It carries only snapshot data so the consumer never has to
// read the database.
type OrderNotification struct {
	OrderID     uuid.UUID          `json:"order_id"`
	PublicID    string             `json:"public_id"`
	Email       string             `json:"email"`
	TotalAmount string             `json:"total_amount"`
	Currency    string             `json:"currency"`
	Items       []NotificationItem `json:"items"`
}

// Notifier is fire-and-forget: failures are logged by the caller and never
// affect the outcome of the committed transaction.
type Notifier interface {
	OrderConfirmed(ctx context.Context, n OrderNotification) error
	OrderCanceled(ctx context.Context, n OrderNotification) error
	RefundInitiated(ctx context.Context, n OrderNotification) error
}
