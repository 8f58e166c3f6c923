package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	stripelib "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/dreamlog-app/dreamlog/internal/application/payment/paymentgateway"
	"github.com/dreamlog-app/dreamlog/internal/domain/payment"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// Config holds the Stripe credentials used by the gateway.
type Config struct {
	SecretKey     string
	WebhookSecret string
	// Backends overrides the API endpoint, used by tests
	Backends *stripelib.Backends
}

// Gateway implements paymentgateway.PaymentGateway on the Stripe API.
type Gateway struct {
	api           *client.API
	webhookSecret string
	logger        logger.Interface
}

var _ paymentgateway.PaymentGateway = (*Gateway)(nil)

func NewGateway(cfg Config, logger logger.Interface) *Gateway {
	return &Gateway{
		api:           client.New(strings.TrimSpace(cfg.SecretKey), cfg.Backends),
		webhookSecret: strings.TrimSpace(cfg.WebhookSecret),
		logger:        logger,
	}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, req paymentgateway.CheckoutRequest) (*paymentgateway.CheckoutSession, error) {
	params := &stripelib.CheckoutSessionParams{
		Mode:              stripelib.String(string(stripelib.CheckoutSessionModeSubscription)),
		SuccessURL:        stripelib.String(req.SuccessURL),
		CancelURL:         stripelib.String(req.CancelURL),
		ClientReferenceID: stripelib.String(req.UserID),
		LineItems: []*stripelib.CheckoutSessionLineItemParams{
			{
				Price:    stripelib.String(req.PriceID),
				Quantity: stripelib.Int64(1),
			},
		},
		SubscriptionData: &stripelib.CheckoutSessionSubscriptionDataParams{
			Metadata: map[string]string{"user_id": req.UserID},
		},
	}
	switch {
	case req.CustomerID != "":
		params.Customer = stripelib.String(req.CustomerID)
	case req.Email != "":
		params.CustomerEmail = stripelib.String(req.Email)
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &paymentgateway.CheckoutSession{ID: session.ID, URL: session.URL}, nil
}

func (g *Gateway) FindCustomerByEmail(ctx context.Context, email string) (string, error) {
	params := &stripelib.CustomerListParams{Email: stripelib.String(email)}
	params.Limit = stripelib.Int64(1)
	params.Context = ctx

	iter := g.api.Customers.List(params)
	for iter.Next() {
		if c := iter.Customer(); c != nil && c.ID != "" {
			return c.ID, nil
		}
	}
	if err := iter.Err(); err != nil {
		return "", fmt.Errorf("list customers: %w", err)
	}
	return "", paymentgateway.ErrCustomerNotFound
}

func (g *Gateway) LatestSubscription(ctx context.Context, customerID string) (*payment.SubscriptionSnapshot, error) {
	params := &stripelib.SubscriptionListParams{
		Customer: stripelib.String(customerID),
		Status:   stripelib.String("all"),
	}
	params.Limit = stripelib.Int64(1)
	params.Context = ctx

	iter := g.api.Subscriptions.List(params)
	for iter.Next() {
		sub := iter.Subscription()
		if sub == nil {
			continue
		}
		return toSnapshot(sub, customerID), nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	return nil, nil
}

func toSnapshot(sub *stripelib.Subscription, customerID string) *payment.SubscriptionSnapshot {
	snap := &payment.SubscriptionSnapshot{
		ID:         sub.ID,
		CustomerID: customerID,
		Status:     subscription.ProcessorStatus(sub.Status),
		Created:    unixTime(sub.Created),
	}
	if sub.Customer != nil && sub.Customer.ID != "" {
		snap.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil {
		var latest int64
		for _, item := range sub.Items.Data {
			if item != nil && item.CurrentPeriodEnd > latest {
				latest = item.CurrentPeriodEnd
			}
		}
		snap.CurrentPeriodEnd = unixTimePtr(latest)
	}
	return snap
}

// ParseWebhook verifies the Stripe-Signature header and reduces the event to what
// entitlement handling needs. Unhandled types are returned with only ID and Type set.
func (g *Gateway) ParseWebhook(payload []byte, signature string) (*payment.Event, error) {
	if g.webhookSecret == "" {
		return nil, paymentgateway.ErrWebhookNotConfigured
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", paymentgateway.ErrInvalidSignature, err)
	}

	out := &payment.Event{
		ID:      event.ID,
		Type:    payment.EventType(event.Type),
		Payload: payload,
	}
	if event.Data == nil || !out.Type.IsHandled() {
		return out, nil
	}

	switch out.Type {
	case payment.EventCheckoutCompleted:
		var session checkoutSessionObject
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return nil, fmt.Errorf("decode checkout.session: %w", err)
		}
		out.UserID = strings.TrimSpace(session.ClientReferenceID)
		if out.UserID == "" {
			out.UserID = strings.TrimSpace(session.Metadata["user_id"])
		}
		out.CustomerID = session.Customer.ID
		out.SubscriptionID = session.Subscription.ID

	case payment.EventSubscriptionUpdated, payment.EventSubscriptionDeleted:
		var sub subscriptionObject
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return nil, fmt.Errorf("decode subscription: %w", err)
		}
		out.CustomerID = sub.Customer.ID
		out.SubscriptionID = sub.ID
		out.ProcessorStatus = subscription.ProcessorStatus(sub.Status)
		out.CurrentPeriodEnd = unixTimePtr(sub.periodEnd())
	}

	g.logger.Debugw("stripe event verified", "event_id", out.ID, "event_type", out.Type)
	return out, nil
}

// expandable decodes a Stripe reference that is either an ID string or an expanded object.
type expandable struct {
	ID string
}

func (e *expandable) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &e.ID)
	}
	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.ID = obj.ID
	return nil
}

type checkoutSessionObject struct {
	ID                string            `json:"id"`
	ClientReferenceID string            `json:"client_reference_id"`
	Customer          expandable        `json:"customer"`
	Subscription      expandable        `json:"subscription"`
	Metadata          map[string]string `json:"metadata"`
}

type subscriptionObject struct {
	ID       string     `json:"id"`
	Customer expandable `json:"customer"`
	Status   string     `json:"status"`
	// CurrentPeriodEnd is only sent by API versions before 2025-03-31
	CurrentPeriodEnd int64 `json:"current_period_end"`
	Items            struct {
		Data []struct {
			CurrentPeriodEnd int64 `json:"current_period_end"`
		} `json:"data"`
	} `json:"items"`
}

func (s subscriptionObject) periodEnd() int64 {
	end := s.CurrentPeriodEnd
	for _, item := range s.Items.Data {
		if item.CurrentPeriodEnd > end {
			end = item.CurrentPeriodEnd
		}
	}
	return end
}

func unixTime(sec int64) time.Time {
	if sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func unixTimePtr(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
