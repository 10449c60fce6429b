package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/segmentio/kafka-go"
)

// EmailMessage is the contract consumed by the notification worker.
type EmailMessage struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data"`
}

// EmailNotifier publishes order emails to Kafka. It implements
// service.Notifier; delivery itself is handled by a separate worker.
type EmailNotifier struct {
	writer *kafka.Writer
}

func NewEmailNotifier(brokers []string, topic string) *EmailNotifier {
	return &EmailNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
		},
	}
}

func (p *EmailNotifier) OrderConfirmed(ctx context.Context, n service.OrderNotification) error {
	return p.send(ctx, n, "order_confirmation", fmt.Sprintf("Your TRESSE order %s is confirmed", n.PublicID))
}

func (p *EmailNotifier) OrderCanceled(ctx context.Context, n service.OrderNotification) error {
	return p.send(ctx, n, "order_canceled", fmt.Sprintf("Your TRESSE order %s has been canceled", n.PublicID))
}

func (p *EmailNotifier) RefundInitiated(ctx context.Context, n service.OrderNotification) error {
	return p.send(ctx, n, "refund_initiated", fmt.Sprintf("Refund initiated for order %s", n.PublicID))
}

func (p *EmailNotifier) send(ctx context.Context, n service.OrderNotification, template, subject string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	items := make([]map[string]any, 0, len(n.Items))
	for _, it := range n.Items {
		items = append(items, map[string]any{
			"product_name": it.ProductName,
			"size":         it.Size,
			"quantity":     it.Quantity,
			"unit_price":   it.UnitPrice,
		})
	}

	value, err := json.Marshal(EmailMessage{
		To:       n.Email,
		Subject:  subject,
		Template: template,
		Data: map[string]any{
			"order_id":     n.OrderID.String(),
			"public_id":    n.PublicID,
			"total_amount": n.TotalAmount,
			"currency":     n.Currency,
			"items":        items,
		},
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(n.OrderID.String()),
		Value: value,
	})
}

func (p *EmailNotifier) Close() error {
	return p.writer.Close()
}
