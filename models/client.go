package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Client is an isolated customer workspace. Every other entity belongs to
// exactly one client and is addressed through its slug in the URL.
type Client struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;not null" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Client) TableName() string { return "clients" }

// BeforeCreate assigns a UUID when the database default is not available
// (the sqlite test driver has no gen_random_uuid()).
func (c *Client) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
