package models

import "time"

// Student is a learner enrolled through a batch. Verified starts false.
type Student struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"size:255;not null" json:"first_name"`
	LastName  string    `gorm:"size:255;not null" json:"last_name"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Email     string    `gorm:"size:255" json:"email"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
}

// BatchStudentMap records batch membership
type BatchStudentMap struct {
	BatchID   uint64 `gorm:"not null;index"`
	StudentID uint64 `gorm:"not null;index"`
}

// TableName overrides the table name for Student
func (Student) TableName() string {
	return "students"
}

// TableName overrides the table name for BatchStudentMap
func (BatchStudentMap) TableName() string {
	return "batch_student_map"
}
