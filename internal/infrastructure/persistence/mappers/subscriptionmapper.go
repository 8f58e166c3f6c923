package mappers

import (
	"fmt"

	"gorm.io/datatypes"

	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
)

// SubscriptionToModel converts a subscription record to its model. Empty processor
// identifiers are stored as NULL.
func SubscriptionToModel(r *subscription.Record) *models.SubscriptionModel {
	model := &models.SubscriptionModel{
		ID:                   r.ID(),
		UserID:               r.UserID(),
		StripeCustomerID:     nullableString(r.CustomerID()),
		StripeSubscriptionID: nullableString(r.SubscriptionID()),
		CurrentPeriodEnd:     r.CurrentPeriodEnd(),
		PlanName:             r.PlanName(),
		CreatedAt:            r.CreatedAt(),
		UpdatedAt:            r.UpdatedAt(),
	}
	if len(r.LastEventPayload()) > 0 {
		model.LastWebhookEvent = datatypes.JSON(r.LastEventPayload())
	}
	return model
}

// SubscriptionToDomain reconstructs a subscription record from its model
func SubscriptionToDomain(model *models.SubscriptionModel) (*subscription.Record, error) {
	r, err := subscription.ReconstructRecord(
		model.ID,
		model.UserID,
		derefString(model.StripeCustomerID),
		derefString(model.StripeSubscriptionID),
		model.PlanName,
		model.CurrentPeriodEnd,
		[]byte(model.LastWebhookEvent),
		model.CreatedAt,
		model.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription record for user %s: %w", model.UserID, err)
	}
	return r, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
