package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Suggestion types.
const (
	SuggestionAnswer       = "answer"
	SuggestionBusinessRule = "business_rule"
	SuggestionDecision     = "decision"
	SuggestionActionItem   = "action_item"
)

// Suggestion review states.
const (
	SuggestionPending  = "pending"
	SuggestionApproved = "approved"
	SuggestionRejected = "rejected"
)

// AISuggestion is an AI-proposed change produced by transcript analysis and
// awaiting human review. Rows are only created by the external analysis
// worker; this service reads, reviews and deletes them.
//
// SuggestedContent is JSONB whose shape depends on SuggestionType; the
// service decodes it into the typed payload structs before applying.
type AISuggestion struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  string `gorm:"type:uuid;not null;index" json:"-"`
	MeetingID string `gorm:"type:uuid;not null;index" json:"meeting"`

	SuggestionType   string         `gorm:"not null" json:"suggestion_type"`
	TargetQuestionID *string        `gorm:"type:uuid" json:"target_question"`
	SuggestedContent datatypes.JSON `gorm:"not null" json:"suggested_content"`
	Confidence       *float64       `json:"confidence"`

	Status     string     `gorm:"default:pending" json:"status"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	ReviewedBy *string    `json:"reviewed_by"`

	CreatedAt time.Time `json:"created_at"`
}

func (s *AISuggestion) TableName() string { return "ai_suggestions" }

func (s *AISuggestion) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
