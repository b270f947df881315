package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/localnerve/tutorbuddy/internal/services"
	"github.com/localnerve/tutorbuddy/tests/helpers"
)

func TestCreateTutorProfileLinksUser(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)
	ctx := context.Background()

	userID, tutorID := createTutor(t, gw, "fb-link")

	tutor, err := gw.GetTutorProfile(ctx, userID)
	if err != nil {
		t.Fatalf("GetTutorProfile failed: %v", err)
	}
	if tutor.ID != tutorID {
		t.Errorf("Expected tutor %d, got %d", tutorID, tutor.ID)
	}
}

func TestGetTutorProfileWithoutLink(t *testing.T) {
	gw, _ := helpers.SetupTestGateway(t)

	userID := createUser(t, gw, "fb-nolink")
	if _, err := gw.GetTutorProfile(context.Background(), userID); !services.IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestCreateTutorProfileRollsBackWhenInsertFails(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	tables := gw.Tables()
	userID := createUser(t, gw, "fb-insert-fail")

	failOn(t, db, "create", tables.Tutors)

	_, err := gw.CreateTutorProfile(context.Background(), userID)
	var se *services.StatementError
	if !errors.As(err, &se) || se.Step != "insert tutor" {
		t.Fatalf("Expected StatementError at insert tutor, got %v", err)
	}

	if n := countRows(t, db, tables.Tutors); n != 0 {
		t.Errorf("Expected no tutor rows, found %d", n)
	}
	isTutor, err := gw.IsTutor(context.Background(), userID)
	if err != nil || isTutor {
		t.Errorf("Expected user to remain unlinked, got %v, %v", isTutor, err)
	}
}

func TestCreateTutorProfileRollsBackWhenLinkFails(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	tables := gw.Tables()
	userID := createUser(t, gw, "fb-link-fail")

	failOn(t, db, "update", tables.Users)

	_, err := gw.CreateTutorProfile(context.Background(), userID)
	var se *services.StatementError
	if !errors.As(err, &se) || se.Step != "link user" {
		t.Fatalf("Expected StatementError at link user, got %v", err)
	}

	if n := countRows(t, db, tables.Tutors); n != 0 {
		t.Errorf("Expected the tutor insert to be rolled back, found %d rows", n)
	}
	isTutor, err := gw.IsTutor(context.Background(), userID)
	if err != nil || isTutor {
		t.Errorf("Expected user to remain unlinked, got %v, %v", isTutor, err)
	}
}

func TestCreateTutorProfileUnknownUser(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)

	if _, err := gw.CreateTutorProfile(context.Background(), 777); !services.IsNotFound(err) {
		t.Fatalf("Expected NotFoundError, got %v", err)
	}
	if n := countRows(t, db, gw.Tables().Tutors); n != 0 {
		t.Errorf("Expected no orphan tutor rows, found %d", n)
	}
}

func TestCreateTutorProfileOnlyOnce(t *testing.T) {
	gw, db := helpers.SetupTestGateway(t)
	userID, tutorID := createTutor(t, gw, "fb-once")

	if _, err := gw.CreateTutorProfile(context.Background(), userID); !services.IsConflict(err) {
		t.Fatalf("Expected ConflictError on second call, got %v", err)
	}
	if n := countRows(t, db, gw.Tables().Tutors); n != 1 {
		t.Errorf("Expected exactly one tutor row, found %d", n)
	}

	tutor, err := gw.GetTutorProfile(context.Background(), userID)
	if err != nil || tutor.ID != tutorID {
		t.Errorf("Expected original tutor %d to remain linked, got %+v, %v", tutorID, tutor, err)
	}
}
