package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/localnerve/tutorbuddy/internal/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultCurrency is used when a payment is recorded without one
const DefaultCurrency = "INR"

// RecordPaymentInput carries a payment recorded by the tutor
type RecordPaymentInput struct {
	Amount       decimal.Decimal
	Currency     string
	PaidAt       time.Time
	TutorComment string
}

// RecordPayment stores a payment by a student of the batch.
// The student must be mapped to the batch, otherwise NotFoundError is returned.
func (g *Gateway) RecordPayment(ctx context.Context, batchID, studentID uint64, in RecordPaymentInput) (uint64, error) {
	const op = "RecordPayment"

	ctx, cancel := g.opContext(ctx)
	defer cancel()

	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = DefaultCurrency
	}
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	var paymentID uint64
	err := g.withTx(ctx, op, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Table(g.tables.BatchStudentMap).
			Where("batch_id = ? AND student_id = ?", batchID, studentID).
			Count(&count).Error; err != nil {
			return stepErr(op, "check batch membership", err)
		}
		if count == 0 {
			return &NotFoundError{Entity: "student in batch", Key: fmt.Sprintf("%d/%d", batchID, studentID)}
		}

		payment := models.Payment{
			BatchID:      batchID,
			StudentID:    studentID,
			Amount:       in.Amount,
			Currency:     currency,
			PaidAt:       paidAt.UTC(),
			TutorComment: in.TutorComment,
		}
		if err := tx.Table(g.tables.Payments).Create(&payment).Error; err != nil {
			return stepErr(op, "insert payment", err)
		}

		paymentID = payment.ID
		return nil
	})
	if err != nil {
		return 0, err
	}

	return paymentID, nil
}

// ListPaymentsForBatch returns the payments recorded for a batch in payment order
func (g *Gateway) ListPaymentsForBatch(ctx context.Context, batchID uint64) ([]models.Payment, error) {
	ctx, cancel := g.opContext(ctx)
	defer cancel()

	payments := []models.Payment{}
	err := g.read(ctx).Table(g.tables.Payments).
		Where("batch_id = ?", batchID).
		Order("paid_at, id").
		Find(&payments).Error
	if err != nil {
		return nil, queryFailed("ListPaymentsForBatch", err)
	}

	return payments, nil
}
