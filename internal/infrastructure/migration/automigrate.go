package migration

import (
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
)

// AutoMigrateModels lists the gorm models in dependency order.
func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.ProfileModel{},
		&models.SubscriptionModel{},
		&models.DreamEntryModel{},
		&models.DreamMetadataModel{},
		&models.DreamInsightModel{},
	}
}
