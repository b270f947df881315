package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/tests/helpers"
	"github.com/shopspring/decimal"
)

func setupBatchWithStudent(t *testing.T, gw *services.Gateway, externalID string) (batchID, studentID uint64) {
	t.Helper()
	ctx := context.Background()
	_, tutorID := createTutor(t, gw, externalID)

	batchID, err := gw.CreateBatch(ctx, tutorID, services.CreateBatchInput{Name: "Payments"})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	studentID, err = gw.AddStudentToBatch(ctx, batchID, services.AddStudentInput{FirstName: "Meera", LastName: "Nair"})
	if err != nil {
		t.Fatalf("AddStudentToBatch failed: %v", err)
	}
	return batchID, studentID
}

func TestRecordAndListPayments(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)
	ctx := context.Background()
	batchID, studentID := setupBatchWithStudent(t, gw, "fb-pay")

	later := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	earlier := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	first, err := gw.RecordPayment(ctx, batchID, studentID, services.RecordPaymentInput{
		Amount:       decimal.RequireFromString("1500.50"),
		PaidAt:       later,
		TutorComment: "March fees",
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}
	second, err := gw.RecordPayment(ctx, batchID, studentID, services.RecordPaymentInput{
		Amount:   decimal.NewFromInt(200),
		Currency: " usd ",
		PaidAt:   earlier,
	})
	if err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	payments, err := gw.ListPaymentsForBatch(ctx, batchID)
	if err != nil {
		t.Fatalf("ListPaymentsForBatch failed: %v", err)
	}
	if len(payments) != 2 {
		t.Fatalf("Expected 2 payments, got %d", len(payments))
	}

	if payments[0].ID != second || payments[1].ID != first {
		t.Errorf("Expected payments ordered by paid time, got %d then %d", payments[0].ID, payments[1].ID)
	}
	if payments[0].Currency != "USD" {
		t.Errorf("Expected normalized currency USD, got %q", payments[0].Currency)
	}
	if payments[1].Currency != services.DefaultCurrency {
		t.Errorf("Expected default currency, got %q", payments[1].Currency)
	}
	if !payments[1].Amount.Equal(decimal.RequireFromString("1500.5")) {
		t.Errorf("Expected amount 1500.50, got %s", payments[1].Amount)
	}
	if !payments[1].PaidAt.Equal(later) || payments[1].TutorComment != "March fees" {
		t.Errorf("Unexpected payment %+v", payments[1])
	}
}

func TestRecordPaymentRequiresMembership(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	ctx := context.Background()
	batchID, studentID := setupBatchWithStudent(t, gw, "fb-pay-member")

	_, err := gw.RecordPayment(ctx, batchID+1, studentID, services.RecordPaymentInput{Amount: decimal.NewFromInt(10)})
	if !services.IsNotFound(err) {
		t.Fatalf("Expected NotFoundError for a student outside the batch, got %v", err)
	}
	if n := countRows(t, db, gw.Tables().Payments); n != 0 {
		t.Errorf("Expected no payments, found %d", n)
	}
}

func TestRecordPaymentDefaultsPaidAt(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)
	ctx := context.Background()
	batchID, studentID := setupBatchWithStudent(t, gw, "fb-pay-now")

	before := time.Now().Add(-time.Minute)
	if _, err := gw.RecordPayment(ctx, batchID, studentID, services.RecordPaymentInput{Amount: decimal.NewFromInt(99)}); err != nil {
		t.Fatalf("RecordPayment failed: %v", err)
	}

	payments, err := gw.ListPaymentsForBatch(ctx, batchID)
	if err != nil || len(payments) != 1 {
		t.Fatalf("Expected one payment, got %v, %v", payments, err)
	}
	if payments[0].PaidAt.Before(before) {
		t.Errorf("Expected paid time to default to now, got %v", payments[0].PaidAt)
	}
}
