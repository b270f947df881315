package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a fee payment by a student in a batch, recorded by the tutor
type Payment struct {
	ID           uint64          `gorm:"primaryKey;autoIncrement" json:"id"`
	BatchID      uint64          `gorm:"not null;index" json:"batch_id"`
	StudentID    uint64          `gorm:"not null;index" json:"student_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency     string          `gorm:"size:3;not null" json:"currency"`
	PaidAt       time.Time       `gorm:"not null" json:"time"`
	TutorComment string          `gorm:"size:1024" json:"tutor_comment"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TableName overrides the table name for Payment
func (Payment) TableName() string {
	return "payments"
}
