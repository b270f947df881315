package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/tests/helpers"
	"gorm.io/gorm"
)

// failOn makes every statement of kind against table fail
func failOn(t *testing.T, db *gorm.DB, kind, table string) {
	t.Helper()

	name := "test:fail_" + kind + "_" + table
	inject := func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(errors.New("injected failure"))
		}
	}

	var err error
	switch kind {
	case "create":
		err = db.Callback().Create().Before("gorm:create").Register(name, inject)
	case "update":
		err = db.Callback().Update().Before("gorm:update").Register(name, inject)
	case "delete":
		err = db.Callback().Delete().Before("gorm:delete").Register(name, inject)
	default:
		t.Fatalf("unknown statement kind %s", kind)
	}
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return n
}

func createUser(t *testing.T, gw *services.Gateway, externalID string) uint64 {
	t.Helper()
	id, err := gw.CreateUser(context.Background(), services.CreateUserInput{
		FirstName:     "Tess",
		LastName:      "Tutor",
		Email:         externalID + "@example.com",
		ExternalID:    externalID,
		ExternalToken: "token-" + externalID,
	})
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	return id
}

func createTutor(t *testing.T, gw *services.Gateway, externalID string) (userID, tutorID uint64) {
	t.Helper()
	userID = createUser(t, gw, externalID)
	tutorID, err := gw.CreateTutorProfile(context.Background(), userID)
	if err != nil {
		t.Fatalf("CreateTutorProfile failed: %v", err)
	}
	return userID, tutorID
}

// TestTutorBatchStudentLifecycle walks a tutor from sign-up to deleting a batch
func TestTutorBatchStudentLifecycle(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)
	ctx := context.Background()

	u1 := createUser(t, gw, "fb-1001")

	t1, err := gw.CreateTutorProfile(ctx, u1)
	if err != nil {
		t.Fatalf("CreateTutorProfile failed: %v", err)
	}

	b1, err := gw.CreateBatch(ctx, t1, services.CreateBatchInput{Name: "Algebra I", Subject: "Math", AddressText: "12 Elm St"})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	owner, err := gw.GetBatchOwner(ctx, b1)
	if err != nil {
		t.Fatalf("GetBatchOwner failed: %v", err)
	}
	if owner.Status != services.OwnerFound || owner.TutorID != t1 {
		t.Fatalf("Expected owner %d, got %+v", t1, owner)
	}

	s1, err := gw.AddStudentToBatch(ctx, b1, services.AddStudentInput{FirstName: "Ann", LastName: "Lee", Phone: "555-0100", Email: "ann@example.com"})
	if err != nil {
		t.Fatalf("AddStudentToBatch failed: %v", err)
	}

	students, err := gw.ListStudentsForBatch(ctx, b1)
	if err != nil {
		t.Fatalf("ListStudentsForBatch failed: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("Expected 1 student, got %d", len(students))
	}
	st := students[0]
	if st.ID != s1 || st.Verified || st.FirstName != "Ann" || st.LastName != "Lee" || st.Phone != "555-0100" || st.Email != "ann@example.com" {
		t.Errorf("Unexpected student %+v", st)
	}

	batches, err := gw.ListBatchesForTutor(ctx, t1)
	if err != nil {
		t.Fatalf("ListBatchesForTutor failed: %v", err)
	}
	if len(batches) != 1 || batches[0].ID != b1 || batches[0].AddressText != "12 Elm St" {
		t.Fatalf("Unexpected batches %+v", batches)
	}

	if err := gw.DeleteBatch(ctx, b1); err != nil {
		t.Fatalf("DeleteBatch failed: %v", err)
	}

	owner, err = gw.GetBatchOwner(ctx, b1)
	if err != nil {
		t.Fatalf("GetBatchOwner failed: %v", err)
	}
	if owner.Status != services.OwnerNotFound {
		t.Errorf("Expected no owner after delete, got %v", owner.Status)
	}

	batches, err = gw.ListBatchesForTutor(ctx, t1)
	if err != nil {
		t.Fatalf("ListBatchesForTutor failed: %v", err)
	}
	if batches == nil || len(batches) != 0 {
		t.Errorf("Expected an empty, non-nil batch list, got %#v", batches)
	}
}

func TestWithTxRecoversPanics(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	tables := gw.Tables()

	err := db.Callback().Create().Before("gorm:create").Register("test:panic", func(tx *gorm.DB) {
		if tx.Statement.Table == tables.BatchStudentMap {
			panic("mapping exploded")
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}

	_, err = gw.AddStudentToBatch(context.Background(), 1, services.AddStudentInput{FirstName: "Ann", LastName: "Lee"})
	var se *services.StatementError
	if !errors.As(err, &se) || se.Step != "panic" {
		t.Fatalf("Expected a recovered StatementError, got %v", err)
	}
	if n := countRows(t, db, tables.Students); n != 0 {
		t.Errorf("Expected the student insert to be rolled back, found %d rows", n)
	}
}

func TestWithTxCommitFailure(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	tables := gw.Tables()

	// A deferred foreign key lets every statement succeed and fails the COMMIT
	stmts := []string{
		"PRAGMA foreign_keys = ON",
		"CREATE TABLE commit_parent (id INTEGER PRIMARY KEY)",
		"CREATE TABLE commit_guard (parent_id INTEGER REFERENCES commit_parent(id) DEFERRABLE INITIALLY DEFERRED)",
		fmt.Sprintf("CREATE TRIGGER commit_guard_insert AFTER INSERT ON %s BEGIN INSERT INTO commit_guard (parent_id) VALUES (NEW.id); END", tables.Students),
	}
	for _, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("Failed to run %q: %v", stmt, err)
		}
	}

	_, err := gw.AddStudentToBatch(context.Background(), 1, services.AddStudentInput{FirstName: "Ann", LastName: "Lee"})
	var ce *services.CommitError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected CommitError, got %v", err)
	}

	for _, table := range []string{tables.Students, tables.BatchStudentMap, "commit_guard"} {
		if n := countRows(t, db, table); n != 0 {
			t.Errorf("Expected no rows in %s after failed commit, found %d", table, n)
		}
	}
}

func TestCancelledContext(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.FindUserByExternalID(ctx, "fb-1")
	var qe *services.QueryError
	if !errors.As(err, &qe) || !errors.Is(err, context.Canceled) {
		t.Errorf("Expected a QueryError wrapping context.Canceled, got %v", err)
	}

	_, err = gw.CreateBatch(ctx, 1, services.CreateBatchInput{Name: "x"})
	var tse *services.TransactionStartError
	if !errors.As(err, &tse) {
		t.Errorf("Expected TransactionStartError, got %v", err)
	}
}
