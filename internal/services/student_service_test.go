package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/tests/helpers"
)

func TestAddStudentRollsBackWhenMappingFails(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	tables := gw.Tables()
	ctx := context.Background()
	_, tutorID := createTutor(t, gw, "fb-student-fail")

	batchID, err := gw.CreateBatch(ctx, tutorID, services.CreateBatchInput{Name: "Geometry"})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	failOn(t, db, "create", tables.BatchStudentMap)

	_, err = gw.AddStudentToBatch(ctx, batchID, services.AddStudentInput{FirstName: "Raj", LastName: "Patel"})
	var se *services.StatementError
	if !errors.As(err, &se) || se.Step != "insert batch student mapping" {
		t.Fatalf("Expected StatementError at mapping insert, got %v", err)
	}

	if n := countRows(t, db, tables.Students); n != 0 {
		t.Errorf("Expected the student insert to be rolled back, found %d rows", n)
	}
}

func TestListStudentsForBatch(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)
	ctx := context.Background()
	_, tutorID := createTutor(t, gw, "fb-students")

	b1, err := gw.CreateBatch(ctx, tutorID, services.CreateBatchInput{Name: "One"})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}
	b2, err := gw.CreateBatch(ctx, tutorID, services.CreateBatchInput{Name: "Two"})
	if err != nil {
		t.Fatalf("CreateBatch failed: %v", err)
	}

	for _, name := range []string{"Asha", "Bala"} {
		if _, err := gw.AddStudentToBatch(ctx, b1, services.AddStudentInput{FirstName: name, LastName: "S"}); err != nil {
			t.Fatalf("AddStudentToBatch failed: %v", err)
		}
	}
	if _, err := gw.AddStudentToBatch(ctx, b2, services.AddStudentInput{FirstName: "Chitra", LastName: "S"}); err != nil {
		t.Fatalf("AddStudentToBatch failed: %v", err)
	}

	students, err := gw.ListStudentsForBatch(ctx, b1)
	if err != nil {
		t.Fatalf("ListStudentsForBatch failed: %v", err)
	}
	if len(students) != 2 || students[0].FirstName != "Asha" || students[1].FirstName != "Bala" {
		t.Errorf("Unexpected students %+v", students)
	}

	empty, err := gw.ListStudentsForBatch(ctx, 9999)
	if err != nil {
		t.Fatalf("ListStudentsForBatch failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected an empty, non-nil list, got %#v", empty)
	}
}
