package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"parcelhub/internal/apperr"
)

// StripeGateway creates payment intents through the Stripe API.
type StripeGateway struct {
	api *client.API
}

// NewStripeGateway creates a gateway authenticated with the given secret key.
// Returns nil when no key is configured so the caller can wire a disabled path.
func NewStripeGateway(key string) *StripeGateway {
	if key == "" {
		return nil
	}
	api := &client.API{}
	api.Init(key, nil)
	return &StripeGateway{api: api}
}

// CreateIntent creates a card payment intent for the caller-supplied amount
// in cents and returns the client secret the payer completes payment with.
func (g *StripeGateway) CreateIntent(ctx context.Context, amountInCents int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountInCents),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx
	// Fresh key per call: retries inside the stripe client stay safe, two
	// calls from the frontend stay two intents.
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return "", apperr.Upstream(fmt.Errorf("stripe: create intent: %w", err))
	}
	return intent.ClientSecret, nil
}
