package service

import (
	"context"
	"errors"
	"testing"

	"weekboard/internal/dto"
	"weekboard/internal/model"
)

func departmentFixture(t *testing.T) (DepartmentService, *mockScheduleRepo, *mockDepartmentRepo) {
	t.Helper()
	repo, _, schedules, _, depts := newTestRepo()
	return NewDepartmentService(repo, testLogger()), schedules, depts
}

func TestDepartmentCreate(t *testing.T) {
	svc, _, _ := departmentFixture(t)

	created, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "Engineering"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created department has no id")
	}

	if _, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "engineering"}); !errors.Is(err, ErrDepartmentNameExists) {
		t.Fatalf("duplicate Create = %v, want %v", err, ErrDepartmentNameExists)
	}
}

func TestDepartmentRename(t *testing.T) {
	svc, schedules, _ := departmentFixture(t)

	eng, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "Engineering"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "Operations"}); err != nil {
		t.Fatal(err)
	}

	// Renaming over another department's name conflicts.
	if _, err := svc.Update(context.Background(), eng.ID, &dto.UpdateDepartmentRequest{Name: "Operations"}); !errors.Is(err, ErrDepartmentNameExists) {
		t.Fatalf("Update = %v, want %v", err, ErrDepartmentNameExists)
	}

	// Renaming to itself (case change) is allowed.
	if _, err := svc.Update(context.Background(), eng.ID, &dto.UpdateDepartmentRequest{Name: "ENGINEERING"}); err != nil {
		t.Fatalf("case-only rename: %v", err)
	}

	// A rename leaves existing entries' denormalized names alone.
	entry := &model.ScheduleEntry{
		Date: mustDate("2026-08-26"), StartTime: "09:00", EndTime: "10:00",
		Content: "Review", AreaID: "area-1", Department: "ENGINEERING",
		HostEmail: "u@example.com", CreatorEmail: "u@example.com",
		Status: model.EntryPending,
	}
	if err := schedules.Create(context.Background(), entry); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(context.Background(), eng.ID, &dto.UpdateDepartmentRequest{Name: "Platform"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	stored, _ := schedules.GetByID(context.Background(), entry.EntryID)
	if stored.Department != "ENGINEERING" {
		t.Errorf("entry department = %q, want untouched", stored.Department)
	}
}

func TestDepartmentDeleteReferenceGuard(t *testing.T) {
	svc, schedules, depts := departmentFixture(t)

	eng, err := svc.Create(context.Background(), &dto.CreateDepartmentRequest{Name: "Engineering"})
	if err != nil {
		t.Fatal(err)
	}

	entry := &model.ScheduleEntry{
		Date: mustDate("2026-08-26"), StartTime: "09:00", EndTime: "10:00",
		Content: "Review", AreaID: "area-1", Department: "Engineering",
		HostEmail: "u@example.com", CreatorEmail: "u@example.com",
		Status: model.EntryPending,
	}
	if err := schedules.Create(context.Background(), entry); err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(context.Background(), eng.ID); !errors.Is(err, ErrDepartmentReferenced) {
		t.Fatalf("Delete = %v, want %v", err, ErrDepartmentReferenced)
	}
	if _, err := depts.GetByID(context.Background(), eng.ID); err != nil {
		t.Fatal("department vanished after rejected delete")
	}

	if err := schedules.Delete(context.Background(), entry.EntryID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(context.Background(), eng.ID); err != nil {
		t.Fatalf("Delete after unreference: %v", err)
	}
	if err := svc.Delete(context.Background(), eng.ID); !errors.Is(err, ErrDepartmentNotFound) {
		t.Fatalf("second Delete = %v, want %v", err, ErrDepartmentNotFound)
	}
}
