package models

import (
	"time"
)

// User is an identity created on first external login.
// SessionID is set on login and cleared on logout; TutorProfileID is set at most once.
type User struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName      string    `gorm:"size:255;not null" json:"first_name"`
	LastName       string    `gorm:"size:255;not null" json:"last_name"`
	Email          string    `gorm:"size:255" json:"email"`
	ExternalID     string    `gorm:"column:facebook_id;size:64;not null;uniqueIndex" json:"facebook_id"`
	ExternalToken  string    `gorm:"column:facebook_token;size:512" json:"-"`
	SessionID      *string   `gorm:"column:session_id;size:64;index" json:"-"`
	TutorProfileID *uint64   `gorm:"column:tutor_profile_id" json:"tutor_profile_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// IsTutor reports whether the user has been linked to a tutor profile
func (u *User) IsTutor() bool {
	return u.TutorProfileID != nil && *u.TutorProfileID != 0
}
