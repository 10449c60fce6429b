package payment

import (
	"context"
	"net/http"
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/service"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

const requestTimeout = 10 * time.Second

// StripeProcessor implements service.PaymentProcessor against the Stripe API.
// It is the only place that touches Stripe types; everything it returns is
// converted to the typed boundary structs.
type StripeProcessor struct {
	api *client.API
	log *zap.Logger
}

func NewStripeProcessor(secretKey string, log *zap.Logger) *StripeProcessor {
	api := &client.API{}
	api.Init(secretKey, stripe.NewBackends(&http.Client{Timeout: requestTimeout}))
	return &StripeProcessor{api: api, log: log}
}

func (p *StripeProcessor) CreateIntent(ctx context.Context, in service.CreateIntentInput) (*service.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{
			Context:        ctx,
			IdempotencyKey: stripe.String(in.IdempotencyKey),
		},
		Amount:   stripe.Int64(in.AmountCents),
		Currency: stripe.String(in.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if in.Description != "" {
		params.Description = stripe.String(in.Description)
	}
	if in.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(in.ReceiptEmail)
	}
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}
	return fromStripeIntent(pi), nil
}

func (p *StripeProcessor) RetrieveIntent(ctx context.Context, id string) (*service.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Params: stripe.Params{Context: ctx},
	}
	params.AddExpand("latest_charge")
	params.AddExpand("payment_method")

	pi, err := p.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, err
	}
	return fromStripeIntent(pi), nil
}

func (p *StripeProcessor) Refund(ctx context.Context, paymentIntentID string) error {
	_, err := p.api.Refunds.New(&stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
	})
	return err
}

// fromStripeIntent converts to the boundary type. Card display extraction
// tolerates missing nested objects: a charge without payment-method details
// simply leaves the display fields blank.
func fromStripeIntent(pi *stripe.PaymentIntent) *service.PaymentIntent {
	out := &service.PaymentIntent{
		ID:             pi.ID,
		ClientSecret:   pi.ClientSecret,
		Status:         string(pi.Status),
		AmountReceived: pi.AmountReceived,
		Currency:       string(pi.Currency),
		Metadata:       pi.Metadata,
	}

	if ch := pi.LatestCharge; ch != nil {
		if pmd := ch.PaymentMethodDetails; pmd != nil && pmd.Card != nil {
			out.Card.Brand = string(pmd.Card.Brand)
			out.Card.Last4 = pmd.Card.Last4
		}
		if bd := ch.BillingDetails; bd != nil {
			out.Card.HolderName = bd.Name
		}
	}
	if out.Card.HolderName == "" && pi.PaymentMethod != nil && pi.PaymentMethod.BillingDetails != nil {
		out.Card.HolderName = pi.PaymentMethod.BillingDetails.Name
	}

	return out
}
