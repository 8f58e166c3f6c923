package mappers

import (
	"fmt"

	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
)

// EntitlementToModel converts an entitlement to its profiles row
func EntitlementToModel(e *entitlement.Entitlement) *models.ProfileModel {
	model := &models.ProfileModel{
		ID:                 e.UserID(),
		Email:              e.Email(),
		AIInsightCountFree: e.FreeInsightBalance(),
		SubscriptionStatus: e.Status().String(),
		CreatedAt:          e.CreatedAt(),
		UpdatedAt:          e.CreatedAt(),
	}
	if e.Username() != "" {
		username := e.Username()
		model.Username = &username
	}
	return model
}

// EntitlementToDomain reconstructs an entitlement from a profiles row
func EntitlementToDomain(model *models.ProfileModel) (*entitlement.Entitlement, error) {
	username := ""
	if model.Username != nil {
		username = *model.Username
	}
	e, err := entitlement.ReconstructEntitlement(
		model.ID,
		model.Email,
		username,
		model.AIInsightCountFree,
		entitlement.SubscriptionStatus(model.SubscriptionStatus),
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct entitlement %s: %w", model.ID, err)
	}
	return e, nil
}
