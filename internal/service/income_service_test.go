package service

import (
	"errors"
	"testing"

	"anoa.com/tutorcabinet/internal/model"
	"anoa.com/tutorcabinet/internal/repository"
	"anoa.com/tutorcabinet/pkg/apperror"
	"gorm.io/gorm"
)

func newIncomeService(t *testing.T, db *gorm.DB) IncomeService {
	t.Helper()
	return NewIncomeService(repository.NewIncomeRepository(db), nopLogger())
}

func TestAddIncomeDefaultsToPending(t *testing.T) {
	db := openTestDB(t)
	svc := newIncomeService(t, db)
	tutor := seedTutor(t, db, "tutor")

	record, err := svc.Add(testContext(), tutor, AddIncomeInput{
		Date:    "2026-03-05",
		Student: "Ivan Sidorov",
		Exam:    "oge",
		Price:   1500,
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if record.Status != model.IncomePending {
		t.Errorf("status = %q, want pending", record.Status)
	}
	if record.TutorID != tutor.UserID {
		t.Errorf("tutor_id = %d, want %d", record.TutorID, tutor.UserID)
	}
}

func TestUpdateIncomeStatusPolicy(t *testing.T) {
	db := openTestDB(t)
	svc := newIncomeService(t, db)
	owner := seedTutor(t, db, "owner")
	intruder := seedTutor(t, db, "intruder")

	record, err := svc.Add(testContext(), owner, AddIncomeInput{
		Date:    "2026-03-05",
		Student: "Ivan Sidorov",
		Price:   1500,
	})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if err := svc.UpdateStatus(testContext(), intruder, record.ID, model.IncomePaid); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("foreign update error = %v, want ErrForbidden", err)
	}
	var unchanged model.IncomeRecord
	db.First(&unchanged, record.ID)
	if unchanged.Status != model.IncomePending {
		t.Errorf("status after foreign update = %q, want pending", unchanged.Status)
	}

	if err := svc.UpdateStatus(testContext(), owner, 99999, model.IncomePaid); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("missing record update error = %v, want ErrNotFound", err)
	}

	if err := svc.UpdateStatus(testContext(), owner, record.ID, "weird"); !errors.Is(err, apperror.ErrInvalidInput) {
		t.Errorf("invalid status update error = %v, want ErrInvalidInput", err)
	}

	if err := svc.UpdateStatus(testContext(), owner, record.ID, model.IncomePaid); err != nil {
		t.Fatalf("owner update error = %v", err)
	}
	var updated model.IncomeRecord
	db.First(&updated, record.ID)
	if updated.Status != model.IncomePaid {
		t.Errorf("status after owner update = %q, want paid", updated.Status)
	}
}

func TestResetClearsOnlyActorLedger(t *testing.T) {
	db := openTestDB(t)
	svc := newIncomeService(t, db)
	tutorA := seedTutor(t, db, "tutor_a")
	tutorB := seedTutor(t, db, "tutor_b")

	for _, tutor := range []model.Identity{tutorA, tutorA, tutorB} {
		if _, err := svc.Add(testContext(), tutor, AddIncomeInput{
			Date:    "2026-03-05",
			Student: "Ivan Sidorov",
			Price:   1500,
		}); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}

	if err := svc.Reset(testContext(), tutorA); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	mine, err := svc.List(testContext(), tutorA)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("records after reset = %d, want 0", len(mine))
	}

	theirs, err := svc.List(testContext(), tutorB)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(theirs) != 1 {
		t.Errorf("other tutor's records = %d, want 1", len(theirs))
	}
}

func TestIncomeEndpointsRequireTutorRole(t *testing.T) {
	db := openTestDB(t)
	svc := newIncomeService(t, db)
	student := studentIdentity(7)

	if _, err := svc.List(testContext(), student); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("List() as student error = %v, want ErrForbidden", err)
	}
	if _, err := svc.Add(testContext(), student, AddIncomeInput{Date: "2026-03-05", Student: "x", Price: 1}); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Add() as student error = %v, want ErrForbidden", err)
	}
	if err := svc.Reset(testContext(), student); !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("Reset() as student error = %v, want ErrForbidden", err)
	}
}
