package models

// CodeCounter is the per-client, per-entity-type sequence behind the
// human-readable codes (ACT-104, BR-101, ...). NextValue is the number the
// next allocation will use; the row is locked for the duration of the
// creating transaction so concurrent creates cannot mint duplicate codes.
type CodeCounter struct {
	ClientID   string `gorm:"type:uuid;primaryKey"`
	EntityType string `gorm:"primaryKey"`
	NextValue  int    `gorm:"not null"`
}

func (c *CodeCounter) TableName() string { return "code_counters" }
