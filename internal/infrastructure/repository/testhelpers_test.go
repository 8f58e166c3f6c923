package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/dreamlog-app/dreamlog/internal/domain/entitlement"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/persistence/models"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// newTestDB opens a private in-memory database. A single connection keeps every
// statement on the same in-memory schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.AutoMigrate(
		&models.ProfileModel{},
		&models.SubscriptionModel{},
		&models.DreamEntryModel{},
		&models.DreamMetadataModel{},
		&models.DreamInsightModel{},
	))
	return gdb
}

func seedProfile(t *testing.T, repo entitlement.Repository, userID string) {
	t.Helper()
	e, err := entitlement.NewEntitlement(userID, userID+"@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), e))
}

var nopLogger = logger.NewNopLogger()
