// Package payment models the lifecycle events delivered by the payment processor.
package payment

import (
	"time"

	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
)

// EventType identifies a processor event envelope.
type EventType string

const (
	EventCheckoutCompleted   EventType = "checkout.session.completed"
	EventSubscriptionUpdated EventType = "customer.subscription.updated"
	EventSubscriptionDeleted EventType = "customer.subscription.deleted"
)

// IsHandled reports whether the event type changes entitlement state.
func (t EventType) IsHandled() bool {
	switch t {
	case EventCheckoutCompleted, EventSubscriptionUpdated, EventSubscriptionDeleted:
		return true
	}
	return false
}

// Event is a verified processor event reduced to the fields entitlement logic needs.
// Payload keeps the raw event JSON for the audit column.
type Event struct {
	ID               string
	Type             EventType
	UserID           string
	CustomerID       string
	SubscriptionID   string
	ProcessorStatus  subscription.ProcessorStatus
	CurrentPeriodEnd *time.Time
	Payload          []byte
}

// SubscriptionSnapshot is the processor's current view of a customer's latest subscription.
type SubscriptionSnapshot struct {
	ID               string
	CustomerID       string
	Status           subscription.ProcessorStatus
	CurrentPeriodEnd *time.Time
	Created          time.Time
}
