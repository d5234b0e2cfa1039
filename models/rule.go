package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BusinessRule captures a business rule discovered in a meeting, either
// entered by hand or materialized from an approved AI suggestion.
type BusinessRule struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    string `gorm:"type:uuid;not null;index" json:"-"`
	RuleCode    string `gorm:"not null" json:"rule_code"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`

	DiscoveredInMeetingID *string `gorm:"type:uuid;column:discovered_in_meeting" json:"discovered_in_meeting"`

	// Source records where the rule came from, e.g. "AI Suggestion".
	Source string `json:"source"`
	// Status is one of confirmed, draft, deprecated.
	Status string `gorm:"default:confirmed" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *BusinessRule) TableName() string { return "business_rules" }

func (r *BusinessRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// Decision made in a meeting.
type Decision struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     string `gorm:"type:uuid;not null;index" json:"-"`
	DecisionCode string `gorm:"not null" json:"decision_code"`
	Title        string `gorm:"not null" json:"title"`
	Description  string `json:"description"`

	MadeInMeetingID *string `gorm:"type:uuid;column:made_in_meeting" json:"made_in_meeting"`

	MadeBy string `json:"made_by"`
	// Status is one of approved, pending, rejected.
	Status              string `gorm:"default:approved" json:"status"`
	ImplementationNotes string `json:"implementation_notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Decision) TableName() string { return "decisions" }

func (d *Decision) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
