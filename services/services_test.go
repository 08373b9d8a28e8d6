package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Sahil31312/plant-disease-classifier/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Prediction{},
		&models.DiseaseInfo{},
		&models.ContactMessage{},
		&models.AuditLog{},
		&models.RetentionState{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
