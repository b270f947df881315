package models

import "time"

// Tutor is the profile row marking a user as a tutor. It has no attributes of its own.
type Tutor struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name for Tutor
func (Tutor) TableName() string {
	return "tutors"
}
