package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/localnerve/tutorbuddy/internal/models"
	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/tests/helpers"
)

func TestCreateBatchRollsBackWhenMappingFails(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	tables := gw.Tables()
	_, tutorID := createTutor(t, gw, "fb-batch-fail")

	failOn(t, db, "create", tables.TutorBatchMap)

	_, err := gw.CreateBatch(context.Background(), tutorID, services.CreateBatchInput{Name: "Physics", Subject: "Science"})
	var se *services.StatementError
	if !errors.As(err, &se) || se.Step != "insert tutor batch mapping" {
		t.Fatalf("Expected StatementError at mapping insert, got %v", err)
	}

	if n := countRows(t, db, tables.Batches); n != 0 {
		t.Errorf("Expected the batch insert to be rolled back, found %d rows", n)
	}
}

func TestDeleteBatchRollsBackWhenMappingDeleteFails(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	ctx := context.Background()
	tables := gw.Tables()
	_, tutorID := createTutor(t, gw, "fb-delete-fail")

	batchID, err := gw.CreateBatch(ctx, tutorID, services.CreateBatchInput{Name: "Chemistry"})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	failOn(t, db, "delete", tables.TutorBatchMap)

	err = gw.DeleteBatch(ctx, batchID)
	var se *services.StatementError
	if !errors.As(err, &se) || se.Step != "delete tutor batch mapping" {
		t.Fatalf("Expected StatementError at mapping delete, got %v", err)
	}

	if n := countRows(t, db, tables.Batches); n != 1 {
		t.Errorf("Expected the batch delete to be rolled back, found %d rows", n)
	}
	owner, err := gw.GetBatchOwner(ctx, batchID)
	if err != nil || owner.Status != services.OwnerFound || owner.TutorID != tutorID {
		t.Errorf("Expected ownership to survive, got %+v, %v", owner, err)
	}
}

func TestDeleteMissingBatchSucceeds(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)

	if err := gw.DeleteBatch(context.Background(), 12345); err != nil {
		t.Errorf("Expected deleting a missing batch to succeed, got %v", err)
	}
}

func TestGetBatchOwnerMultipleOwners(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	ctx := context.Background()
	_, tutorA := createTutor(t, gw, "fb-owner-a")
	_, tutorB := createTutor(t, gw, "fb-owner-b")

	batchID, err := gw.CreateBatch(ctx, tutorA, services.CreateBatchInput{Name: "Shared"})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	// Corrupt the mapping table the way the schema allows
	if err := db.Table(gw.Tables().TutorBatchMap).Create(&models.TutorBatchMap{TutorID: tutorB, BatchID: batchID}).Error; err != nil {
		t.Fatalf("Failed to insert extra mapping: %v", err)
	}

	owner, err := gw.GetBatchOwner(ctx, batchID)
	if err != nil {
		t.Fatalf("Expected no error for multiple owners, got %v", err)
	}
	if owner.Status != services.OwnerConflict || owner.TutorID != 0 {
		t.Errorf("Expected OwnerConflict, got %+v", owner)
	}

	// Deletion removes every mapping row
	if err := gw.DeleteBatch(ctx, batchID); err != nil {
		t.Fatalf("DeleteBatch failed: %v", err)
	}
	if n := countRows(t, db, gw.Tables().TutorBatchMap); n != 0 {
		t.Errorf("Expected all mappings deleted, found %d", n)
	}
}

func TestListBatchesForTutorIsolation(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)
	ctx := context.Background()
	_, tutorA := createTutor(t, gw, "fb-list-a")
	_, tutorB := createTutor(t, gw, "fb-list-b")

	names := []string{"Morning", "Evening"}
	for _, name := range names {
		if _, err := gw.CreateBatch(ctx, tutorA, services.CreateBatchInput{Name: name}); err != nil {
			t.Fatalf("CreateBatch failed: %v", err)
		}
	}
	if _, err := gw.CreateBatch(ctx, tutorB, services.CreateBatchInput{Name: "Other"}); err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	batches, err := gw.ListBatchesForTutor(ctx, tutorA)
	if err != nil {
		t.Fatalf("ListBatchesForTutor failed: %v", err)
	}
	if len(batches) != len(names) {
		t.Fatalf("Expected %d batches, got %d", len(names), len(batches))
	}
	for i, b := range batches {
		if b.Name != names[i] {
			t.Errorf("Expected batch %d to be %s, got %s", i, names[i], b.Name)
		}
	}
}

func TestConcurrentCreateBatch(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)
	ctx := context.Background()
	_, tutorID := createTutor(t, gw, "fb-concurrent")

	const n = 8
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := gw.CreateBatch(ctx, tutorID, services.CreateBatchInput{Name: "Batch"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Errorf("CreateBatch failed: %v", err)
		}
	}

	batches, err := gw.ListBatchesForTutor(ctx, tutorID)
	if err != nil {
		t.Fatalf("ListBatchesForTutor failed: %v", err)
	}
	if len(batches) != n {
		t.Errorf("Expected %d batches, got %d", n, len(batches))
	}
	for _, b := range batches {
		owner, err := gw.GetBatchOwner(ctx, b.ID)
		if err != nil || owner.Status != services.OwnerFound || owner.TutorID != tutorID {
			t.Errorf("Batch %d has unexpected owner %+v, %v", b.ID, owner, err)
		}
	}
}

func TestOwnerStatusString(t *testing.T) {
	if services.OwnerFound.String() != "found" || services.OwnerNotFound.String() != "not_found" || services.OwnerConflict.String() != "conflict" {
		t.Error("Unexpected OwnerStatus strings")
	}
}
