package helpers

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/localnerve/tutorbuddy/internal/config"
	"github.com/localnerve/tutorbuddy/internal/database"
	"github.com/localnerve/tutorbuddy/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestGateway creates an in-memory SQLite database with the test tables migrated
// and a Gateway over it. The database is private to the calling test.
func SetupTestGateway(t *testing.T) (*services.Gateway, *gorm.DB) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	tables, err := config.TablesForMode(config.ModeTest)
	if err != nil {
		t.Fatalf("Failed to build tables: %v", err)
	}
	if err := database.AutoMigrate(db, tables); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return services.NewGateway(db, services.Options{Tables: tables, OperationTimeout: 5 * time.Second}), db
}

// TestConfig returns a configuration matching SetupTestGateway
func TestConfig(t *testing.T, secret string) *config.Config {
	t.Helper()

	tables, err := config.TablesForMode(config.ModeTest)
	if err != nil {
		t.Fatalf("Failed to build tables: %v", err)
	}
	return &config.Config{
		Port:               "8080",
		Mode:               config.ModeTest,
		DBType:             "sqlite",
		DBDatabase:         ":memory:",
		DBOperationTimeout: 5 * time.Second,
		AuthCallbackSecret: secret,
		Tables:             tables,
	}
}
