package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionItem is a follow-up task coming out of a meeting.
type ActionItem struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    string `gorm:"type:uuid;not null;index" json:"-"`
	ActionCode  string `gorm:"not null" json:"action_code"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to"`

	DueDate *time.Time `gorm:"type:date" json:"due_date"`
	// Status is one of pending, in_progress, completed, cancelled.
	Status   string `gorm:"default:pending" json:"status"`
	Priority string `gorm:"default:medium" json:"priority"`

	FromMeetingID *string `gorm:"type:uuid;column:from_meeting" json:"from_meeting"`

	CompletedDate *time.Time `gorm:"type:date" json:"completed_date"`
	Notes         string     `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *ActionItem) TableName() string { return "action_items" }

func (a *ActionItem) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
