package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
)

// SubscriptionModel links a user to the payment processor. user_id is unique,
// which the upsert relies on as its conflict target.
type SubscriptionModel struct {
	ID                   uint    `gorm:"primarykey"`
	UserID               string  `gorm:"not null;size:36;uniqueIndex:idx_subscriptions_user"`
	StripeCustomerID     *string `gorm:"size:255;index:idx_subscriptions_customer"`
	StripeSubscriptionID *string `gorm:"size:255"`
	CurrentPeriodEnd     *time.Time
	PlanName             string `gorm:"not null;size:50;default:free"`
	LastWebhookEvent     datatypes.JSON
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
