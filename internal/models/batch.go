package models

import "time"

// Batch is a named teaching group. Ownership lives in TutorBatchMap, not on the batch row.
type Batch struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Subject     string    `gorm:"size:255" json:"subject"`
	AddressText string    `gorm:"column:address_text;size:1024" json:"address_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// TutorBatchMap records batch ownership. One row per batch by convention; the schema does not enforce it.
type TutorBatchMap struct {
	TutorID uint64 `gorm:"not null;index"`
	BatchID uint64 `gorm:"not null;index"`
}

// TableName overrides the table name for Batch
func (Batch) TableName() string {
	return "batches"
}

// TableName overrides the table name for TutorBatchMap
func (TutorBatchMap) TableName() string {
	return "tutor_batch_map"
}
