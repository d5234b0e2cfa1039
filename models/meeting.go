package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Meeting is a meeting record with an optional transcript. Transcript
// ingestion and analysis happen outside this service; the columns are here so
// the external analysis worker and this API share one table.
type Meeting struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    string         `gorm:"type:uuid;not null;index" json:"-"`
	MeetingCode string         `gorm:"not null" json:"meeting_code"`
	Date        time.Time      `gorm:"type:date;not null" json:"date"`
	Title       string         `gorm:"not null" json:"title"`
	Attendees   datatypes.JSON `json:"attendees"`
	Agenda      string         `json:"agenda"`
	Notes       string         `json:"notes"`
	// Status is one of scheduled, in_progress, completed, cancelled.
	Status string `gorm:"default:scheduled" json:"status"`

	TranscriptText       string     `json:"transcript_text,omitempty"`
	TranscriptFilename   string     `json:"transcript_filename,omitempty"`
	TranscriptUploadedAt *time.Time `json:"transcript_uploaded_at,omitempty"`
	TranscriptSource     string     `json:"transcript_source,omitempty"`
	TranscriptDuration   *float64   `json:"transcript_duration,omitempty"`
	TranscriptLanguage   string     `json:"transcript_language,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *Meeting) TableName() string { return "meetings" }

func (m *Meeting) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
