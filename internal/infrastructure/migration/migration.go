package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// Manager handles database migrations with different strategies
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager picks goose for postgres outside development and gorm AutoMigrate otherwise.
func NewManager(environment, driver string, log logger.Interface) *Manager {
	var strategy Strategy

	isPostgres := driver == "" || strings.EqualFold(driver, "postgres")
	switch {
	case isPostgres && !strings.EqualFold(environment, constants.EnvDevelopment):
		strategy = NewGooseStrategy(log)
	default:
		strategy = NewGormAutoMigrateStrategy(log)
	}

	return NewManagerWithStrategy(strategy, log)
}

// NewManagerWithStrategy creates a new migration manager with a specific strategy
func NewManagerWithStrategy(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.With("component", "migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB, models ...interface{}) error {
	m.logger.Infow("starting database migration",
		"strategy", m.strategy.GetName(),
		"models_count", len(models))

	if err := m.strategy.Migrate(db, models...); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully",
		"strategy", m.strategy.GetName())

	return nil
}

// GetStrategy returns the current migration strategy
func (m *Manager) GetStrategy() Strategy {
	return m.strategy
}
