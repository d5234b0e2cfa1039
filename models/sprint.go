package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sprint groups deliverable items for a client.
type Sprint struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    string    `gorm:"type:uuid;not null;index" json:"-"`
	SprintCode  string    `gorm:"not null" json:"sprint_code"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate     time.Time `gorm:"type:date;not null" json:"end_date"`
	// Status is one of planned, in_progress, delivered, cancelled.
	Status string `gorm:"default:planned" json:"status"`
	Order  int    `gorm:"column:sort_order;default:0" json:"order"`
	Color  string `gorm:"default:#3B82F6" json:"color"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Sprint) TableName() string { return "sprints" }

func (s *Sprint) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// SprintItem is a single piece of work inside a sprint.
type SprintItem struct {
	ID          string `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID    string `gorm:"type:uuid;not null;index" json:"-"`
	SprintID    string `gorm:"type:uuid;not null;index" json:"sprint"`
	ItemCode    string `gorm:"not null" json:"item_code"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	// ItemType is one of agent, feature, task, bugfix, milestone.
	ItemType string `gorm:"default:feature" json:"item_type"`
	// Status is one of planned, in_progress, completed, blocked, cancelled.
	Status   string `gorm:"default:planned" json:"status"`
	Priority string `gorm:"default:medium" json:"priority"`
	Order    int    `gorm:"column:sort_order;default:0" json:"order"`

	AssignedTo     string     `json:"assigned_to"`
	EstimatedHours *float64   `json:"estimated_hours"`
	ActualHours    *float64   `json:"actual_hours"`
	Notes          string     `json:"notes"`
	StartDate      *time.Time `gorm:"type:date" json:"start_date"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date"`
	CompletedAt    *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *SprintItem) TableName() string { return "sprint_items" }

func (i *SprintItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
