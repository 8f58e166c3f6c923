package entitlement

// InitialFreeInsightGrant is the number of free insights every account starts with.
// Cancelling a subscription resets the balance to this value.
const InitialFreeInsightGrant = 5

// SubscriptionStatus is the authoritative gating state of an account.
type SubscriptionStatus string

const (
	// SubscriptionStatusFree means insight generation is metered by the free balance
	SubscriptionStatusFree SubscriptionStatus = "free"
	// SubscriptionStatusActive means unmetered access
	SubscriptionStatusActive SubscriptionStatus = "active"
)

// IsValid checks if the subscription status is valid
func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusFree, SubscriptionStatusActive:
		return true
	}
	return false
}

func (s SubscriptionStatus) String() string {
	return string(s)
}

// StatusFromActive maps a processor-derived activity flag to a status.
func StatusFromActive(active bool) SubscriptionStatus {
	if active {
		return SubscriptionStatusActive
	}
	return SubscriptionStatusFree
}

// DenyReason explains why a metered operation was refused.
type DenyReason string

const (
	DenyReasonNone           DenyReason = ""
	DenyReasonQuotaExhausted DenyReason = "quota_exhausted"
)

// Decision is the outcome of authorizing a metered operation.
// Tier records the status observed at authorization time; only free-tier
// decisions are debited after the operation succeeds.
type Decision struct {
	UserID  string
	Allowed bool
	Reason  DenyReason
	Tier    SubscriptionStatus
	Balance int
}

// RequiresDebit reports whether a successful operation must consume one free insight.
func (d Decision) RequiresDebit() bool {
	return d.Allowed && d.Tier == SubscriptionStatusFree
}
