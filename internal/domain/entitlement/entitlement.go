package entitlement

import (
	"fmt"
	"time"
)

// Entitlement is the per-user gating record: free insight balance plus subscription status.
// It is persisted as a row of the profiles table keyed by the auth provider's user ID.
type Entitlement struct {
	userID             string
	email              string
	username           string
	freeInsightBalance int
	status             SubscriptionStatus
	createdAt          time.Time
}

// NewEntitlement creates the entitlement of a freshly provisioned account:
// the initial free grant and the free status.
func NewEntitlement(userID, email string) (*Entitlement, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	return &Entitlement{
		userID:             userID,
		email:              email,
		freeInsightBalance: InitialFreeInsightGrant,
		status:             SubscriptionStatusFree,
		createdAt:          time.Now().UTC(),
	}, nil
}

// ReconstructEntitlement reconstructs an entitlement from persistence
func ReconstructEntitlement(
	userID, email, username string,
	freeInsightBalance int,
	status SubscriptionStatus,
	createdAt time.Time,
) (*Entitlement, error) {
	if userID == "" {
		return nil, ErrInvalidUserID
	}
	if freeInsightBalance < 0 {
		return nil, ErrNegativeBalance
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
	return &Entitlement{
		userID:             userID,
		email:              email,
		username:           username,
		freeInsightBalance: freeInsightBalance,
		status:             status,
		createdAt:          createdAt,
	}, nil
}

func (e *Entitlement) UserID() string             { return e.userID }
func (e *Entitlement) Email() string              { return e.email }
func (e *Entitlement) Username() string           { return e.username }
func (e *Entitlement) FreeInsightBalance() int    { return e.freeInsightBalance }
func (e *Entitlement) Status() SubscriptionStatus { return e.status }
func (e *Entitlement) CreatedAt() time.Time       { return e.createdAt }
func (e *Entitlement) IsActiveSubscriber() bool   { return e.status == SubscriptionStatusActive }

// CanConsumeInsight applies the gating rule: active subscribers always pass,
// free accounts pass while they have balance left.
func (e *Entitlement) CanConsumeInsight() bool {
	if e.status == SubscriptionStatusActive {
		return true
	}
	return e.freeInsightBalance > 0
}

// Authorize evaluates the gating rule and records the tier it was decided under.
func (e *Entitlement) Authorize() Decision {
	d := Decision{
		UserID:  e.userID,
		Tier:    e.status,
		Balance: e.freeInsightBalance,
	}
	if e.CanConsumeInsight() {
		d.Allowed = true
		return d
	}
	d.Reason = DenyReasonQuotaExhausted
	return d
}

// Snapshot is the client-facing view returned after metered operations.
type Snapshot struct {
	FreeInsightBalance int                `json:"ai_insight_count_free"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status"`
}

func (e *Entitlement) Snapshot() Snapshot {
	return Snapshot{
		FreeInsightBalance: e.freeInsightBalance,
		SubscriptionStatus: e.status,
	}
}
