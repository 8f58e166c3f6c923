package http

import (
	"gorm.io/gorm"

	"github.com/dreamlog-app/dreamlog/internal/domain/dream"
	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
	"github.com/dreamlog-app/dreamlog/internal/domain/subscription"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/repository"
	"github.com/dreamlog-app/dreamlog/internal/shared/db"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	profileRepo      entitlement.Repository
	subscriptionRepo subscription.Repository
	dreamRepo        dream.Repository
	insightRepo      insight.Repository
	txManager        *db.TransactionManager

	// elevated* run on the elevated role's connection and write rows for a
	// user who has no session yet. All nil when that role is not configured.
	elevatedProfileRepo      entitlement.Repository
	elevatedSubscriptionRepo subscription.Repository
	elevatedDreamRepo        dream.Repository
	elevatedTxManager        *db.TransactionManager
}

// newRepositories creates all repository instances. elevated may be nil.
func newRepositories(database, elevated *gorm.DB, log logger.Interface) *repositories {
	repos := &repositories{
		profileRepo:      repository.NewProfileRepository(database, log),
		subscriptionRepo: repository.NewSubscriptionRepository(database, log),
		dreamRepo:        repository.NewDreamRepository(database, log),
		insightRepo:      repository.NewInsightRepository(database, log),
		txManager:        db.NewTransactionManager(database),
	}
	if elevated != nil {
		elevatedLog := log.Named("elevated")
		repos.elevatedProfileRepo = repository.NewProfileRepository(elevated, elevatedLog)
		repos.elevatedSubscriptionRepo = repository.NewSubscriptionRepository(elevated, elevatedLog)
		repos.elevatedDreamRepo = repository.NewDreamRepository(elevated, elevatedLog)
		repos.elevatedTxManager = db.NewTransactionManager(elevated)
	}
	return repos
}

func (r *repositories) hasElevated() bool {
	return r.elevatedTxManager != nil
}
