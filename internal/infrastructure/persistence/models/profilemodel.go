package models

import (
	"time"

	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
)

// ProfileModel is the persisted entitlement row, one per auth user.
// The balance column name matches the hosted schema.
type ProfileModel struct {
	ID                 string  `gorm:"primaryKey;size:36"`
	Email              string  `gorm:"size:255;index:idx_profiles_email"`
	Username           *string `gorm:"size:100"`
	AIInsightCountFree int     `gorm:"column:ai_insight_count_free;not null;default:5;check:chk_profiles_free_balance,ai_insight_count_free >= 0"`
	SubscriptionStatus string  `gorm:"not null;size:20;default:free"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return constants.TableProfiles
}
