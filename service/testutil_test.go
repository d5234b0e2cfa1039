package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "github.com/morichal/MeetingPortal/models"
)

// FixedTime is used to patch time.Now in tests.
var FixedTime = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

// newTestService opens an in-memory sqlite database with the full schema and
// wraps it in a PortalService with no S3 or Elasticsearch client.
func newTestService(t *testing.T) (*PortalService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Client{},
		&model.Meeting{},
		&model.Question{},
		&model.BusinessRule{},
		&model.Decision{},
		&model.ActionItem{},
		&model.AISuggestion{},
		&model.Update{},
		&model.Blocker{},
		&model.Attachment{},
		&model.Sprint{},
		&model.SprintItem{},
		&model.ClientSettings{},
		&model.CodeCounter{},
	); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}

	return &PortalService{db: db}, db
}

func seedClient(t *testing.T, db *gorm.DB, name, slug string) model.Client {
	t.Helper()
	client := model.Client{Name: name, Slug: slug}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("failed to seed client %s: %v", slug, err)
	}
	return client
}

func seedMeeting(t *testing.T, db *gorm.DB, clientID, code, title string) model.Meeting {
	t.Helper()
	meeting := model.Meeting{
		ClientID:    clientID,
		MeetingCode: code,
		Title:       title,
		Date:        FixedTime,
	}
	if err := db.Create(&meeting).Error; err != nil {
		t.Fatalf("failed to seed meeting %s: %v", code, err)
	}
	return meeting
}
