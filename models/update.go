package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Update is a progress report tied to a meeting.
type Update struct {
	ID         string  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID   string  `gorm:"type:uuid;not null;index" json:"-"`
	UpdateCode string  `gorm:"not null" json:"update_code"`
	MeetingID  *string `gorm:"type:uuid" json:"meeting"`
	Author     string  `json:"author"`
	Content    string  `gorm:"not null" json:"content"`
	// Category is one of development, design, testing, documentation,
	// infrastructure, general.
	Category string `gorm:"default:general" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *Update) TableName() string { return "updates" }

func (u *Update) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Blocker is a risk or impediment raised in a meeting.
type Blocker struct {
	ID          string  `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    string  `gorm:"type:uuid;not null;index" json:"-"`
	BlockerCode string  `gorm:"not null" json:"blocker_code"`
	MeetingID   *string `gorm:"type:uuid" json:"meeting"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	// Severity is one of critical, high, medium, low.
	Severity string `gorm:"default:medium" json:"severity"`
	// Status is one of open, in_progress, resolved.
	Status     string     `gorm:"default:open" json:"status"`
	Owner      string     `json:"owner"`
	Resolution string     `json:"resolution"`
	ResolvedAt *time.Time `json:"resolved_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Blocker) TableName() string { return "blockers" }

func (b *Blocker) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// Attachment is a file stored in S3 and linked to a meeting.
type Attachment struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  string `gorm:"type:uuid;not null;index" json:"-"`
	MeetingID string `gorm:"type:uuid;not null;index" json:"meeting"`
	Filename  string `gorm:"not null" json:"filename"`
	// FileType is one of pdf, doc, image, spreadsheet, presentation, link,
	// other; inferred from the filename extension at upload time.
	FileType    string `json:"file_type"`
	FileURL     string `gorm:"not null" json:"file_url"`
	Description string `json:"description"`
	UploadedBy  string `json:"uploaded_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *Attachment) TableName() string { return "attachments" }

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
