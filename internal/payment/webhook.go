package payment

import (
	"github.com/stripe/stripe-go/v76/webhook"
)

// VerifyWebhook checks the processor's signature over the raw payload and
// returns the event type. The webhook handler only verifies and acknowledges;
// order state transitions are driven by the synchronous commit flow.
func VerifyWebhook(payload []byte, sigHeader, secret string) (string, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, secret)
	if err != nil {
		return "", err
	}
	return string(event.Type), nil
}
