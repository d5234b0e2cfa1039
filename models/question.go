package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Question raised in a meeting. Answer-type AI suggestions mutate these rows
// on approval.
type Question struct {
	ID           string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID     string `gorm:"type:uuid;not null;index" json:"-"`
	QuestionCode string `gorm:"not null" json:"question_code"`
	Category     string `json:"category"`
	Question     string `gorm:"not null" json:"question"`
	// Status is one of pending, answered, needs-follow-up, deferred.
	Status   string `gorm:"default:pending" json:"status"`
	Priority string `gorm:"default:medium" json:"priority"`

	AskedInMeetingID *string `gorm:"type:uuid;column:asked_in_meeting" json:"asked_in_meeting"`

	Answer       string     `json:"answer"`
	AnsweredBy   string     `json:"answered_by"`
	AnsweredDate *time.Time `gorm:"type:date" json:"answered_date"`
	Notes        string     `json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (q *Question) TableName() string { return "questions" }

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
