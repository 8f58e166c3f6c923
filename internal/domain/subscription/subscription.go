package subscription

import (
	"time"
)

// Record links a user to the payment processor's customer and subscription.
// At most one exists per user. It is supporting evidence for gating; the
// entitlement's status is authoritative. Records are updated in place, never deleted.
type Record struct {
	id               uint
	userID           string
	customerID       string
	subscriptionID   string
	planName         string
	currentPeriodEnd *time.Time
	lastEventPayload []byte
	createdAt        time.Time
	updatedAt        time.Time
}

// NewRecord creates an empty free record for a user.
func NewRecord(userID string) (*Record, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	now := time.Now().UTC()
	return &Record{
		userID:    userID,
		planName:  PlanFree,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructRecord reconstructs a record from persistence
func ReconstructRecord(
	id uint,
	userID, customerID, subscriptionID, planName string,
	currentPeriodEnd *time.Time,
	lastEventPayload []byte,
	createdAt, updatedAt time.Time,
) (*Record, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return &Record{
		id:               id,
		userID:           userID,
		customerID:       customerID,
		subscriptionID:   subscriptionID,
		planName:         planName,
		currentPeriodEnd: currentPeriodEnd,
		lastEventPayload: lastEventPayload,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}, nil
}

func (r *Record) ID() uint                     { return r.id }
func (r *Record) UserID() string               { return r.userID }
func (r *Record) CustomerID() string           { return r.customerID }
func (r *Record) SubscriptionID() string       { return r.subscriptionID }
func (r *Record) PlanName() string             { return r.planName }
func (r *Record) CurrentPeriodEnd() *time.Time { return r.currentPeriodEnd }
func (r *Record) LastEventPayload() []byte     { return r.lastEventPayload }
func (r *Record) CreatedAt() time.Time         { return r.createdAt }
func (r *Record) UpdatedAt() time.Time         { return r.updatedAt }

// HasLiveSubscription reports whether a processor subscription is linked.
func (r *Record) HasLiveSubscription() bool {
	return r.subscriptionID != ""
}

// LinkCheckout records a completed checkout: customer, subscription and the paid plan.
func (r *Record) LinkCheckout(customerID, subscriptionID, planName string, payload []byte) {
	if customerID != "" {
		r.customerID = customerID
	}
	r.subscriptionID = subscriptionID
	r.planName = planName
	r.lastEventPayload = payload
	r.touch()
}

// ApplyPeriod updates the billing period end and audit payload.
func (r *Record) ApplyPeriod(periodEnd *time.Time, payload []byte) {
	r.currentPeriodEnd = periodEnd
	r.lastEventPayload = payload
	r.touch()
}

// ApplySnapshot overwrites the record with the processor's current view of the subscription.
func (r *Record) ApplySnapshot(customerID, subscriptionID, planName string, periodEnd *time.Time) {
	r.customerID = customerID
	r.subscriptionID = subscriptionID
	r.planName = planName
	r.currentPeriodEnd = periodEnd
	r.touch()
}

// Cancel clears the subscription link and returns the record to the free plan.
// The customer ID is kept so later events still resolve to this user.
func (r *Record) Cancel(payload []byte) {
	r.subscriptionID = ""
	r.planName = PlanFree
	if payload != nil {
		r.lastEventPayload = payload
	}
	r.touch()
}

func (r *Record) touch() {
	r.updatedAt = time.Now().UTC()
}
