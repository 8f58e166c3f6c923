package paymentgateway

import (
	"context"
	"errors"

	"github.com/dreamlog-app/dreamlog/internal/domain/payment"
)

var (
	// ErrInvalidSignature is returned when a webhook payload fails signature verification
	ErrInvalidSignature = errors.New("invalid webhook signature")

	// ErrWebhookNotConfigured is returned when no webhook signing secret is set
	ErrWebhookNotConfigured = errors.New("payment webhook secret is not configured")

	// ErrCustomerNotFound is returned when no processor customer matches the lookup
	ErrCustomerNotFound = errors.New("payment customer not found")
)

// CheckoutRequest describes a subscription checkout for one user.
type CheckoutRequest struct {
	UserID     string
	Email      string
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// CheckoutSession is the processor-hosted checkout the client is redirected to.
type CheckoutSession struct {
	ID  string
	URL string
}

// PaymentGateway is the payment processor as seen by the billing use cases.
type PaymentGateway interface {
	// CreateCheckoutSession starts a subscription checkout whose completion event
	// carries UserID as its client reference.
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)

	// FindCustomerByEmail returns ErrCustomerNotFound when the processor has no such customer.
	FindCustomerByEmail(ctx context.Context, email string) (string, error)

	// LatestSubscription returns the customer's most recent subscription in any status,
	// or nil when the customer has none.
	LatestSubscription(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error)

	// ParseWebhook verifies the signature over the raw payload and decodes the event.
	// Verification failures return ErrInvalidSignature and nothing is decoded.
	ParseWebhook(payload []byte, signature string) (*payment.Event, error)
}
