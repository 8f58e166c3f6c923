package subscription

import "strings"

const (
	// PlanFree labels a record with no live subscription
	PlanFree = "free"
	// PlanUnlimitedPro is the paid plan sold through checkout
	PlanUnlimitedPro = "unlimited_pro"
)

// ProcessorStatus is a subscription status as reported by the payment processor.
type ProcessorStatus string

const (
	ProcessorStatusActive            ProcessorStatus = "active"
	ProcessorStatusTrialing          ProcessorStatus = "trialing"
	ProcessorStatusPastDue           ProcessorStatus = "past_due"
	ProcessorStatusCanceled          ProcessorStatus = "canceled"
	ProcessorStatusUnpaid            ProcessorStatus = "unpaid"
	ProcessorStatusIncomplete        ProcessorStatus = "incomplete"
	ProcessorStatusIncompleteExpired ProcessorStatus = "incomplete_expired"
	ProcessorStatusPaused            ProcessorStatus = "paused"
)

// GrantsAccess reports whether the processor status confers unmetered access.
// Only active and trialing subscriptions do.
func (s ProcessorStatus) GrantsAccess() bool {
	switch ProcessorStatus(strings.ToLower(string(s))) {
	case ProcessorStatusActive, ProcessorStatusTrialing:
		return true
	}
	return false
}

// IsTerminal reports whether the subscription has ended for good and no longer
// counts as a live link.
func (s ProcessorStatus) IsTerminal() bool {
	switch ProcessorStatus(strings.ToLower(string(s))) {
	case ProcessorStatusCanceled, ProcessorStatusIncompleteExpired:
		return true
	}
	return false
}

// PlanFor returns the plan label matching an access flag.
func PlanFor(active bool, paidPlan string) string {
	if active {
		if paidPlan == "" {
			return PlanUnlimitedPro
		}
		return paidPlan
	}
	return PlanFree
}
