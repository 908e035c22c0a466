package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"weekboard/internal/access"
	"weekboard/internal/dto"
	"weekboard/internal/model"
	"weekboard/pkg/apperr"
)

func userIdentity() Identity {
	return Identity{
		AccountID:  "acct-user",
		Email:      "user@example.com",
		Name:       "Nguyen Van A",
		Role:       access.RoleUser,
		Department: "Engineering",
	}
}

func managerIdentity() Identity {
	return Identity{
		AccountID:  "acct-manager",
		Email:      "manager@example.com",
		Name:       "Tran Thi B",
		Role:       access.RoleManager,
		Department: "Operations",
	}
}

// scheduleFixture seeds one area with one room plus the Engineering
// department and returns a service whose clock is pinned to a Tuesday.
func scheduleFixture(t *testing.T) (*scheduleService, *mockScheduleRepo, string, string) {
	t.Helper()
	repo, _, schedules, areas, depts := newTestRepo()

	area := &model.Area{Name: "Main Building"}
	if err := areas.CreateArea(context.Background(), area); err != nil {
		t.Fatalf("seed area: %v", err)
	}
	room := &model.Room{AreaID: area.AreaID, Name: "Room 101"}
	if err := areas.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("seed room: %v", err)
	}
	if err := depts.Create(context.Background(), &model.Department{Name: "Engineering"}); err != nil {
		t.Fatalf("seed department: %v", err)
	}

	svc := NewScheduleService(repo, testLogger()).(*scheduleService)
	svc.now = func() time.Time { return mustDate("2026-08-25") } // Tuesday of 2026-W34
	return svc, schedules, area.AreaID, room.RoomID
}

func createEntry(t *testing.T, svc *scheduleService, areaID, date string, actor Identity) *dto.ScheduleEntryResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		Date:      date,
		StartTime: "09:00",
		EndTime:   "10:30",
		Content:   "Weekly review",
		AreaID:    areaID,
	}, actor)
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}
	return resp
}

func TestScheduleCreateDefaultsHostToActor(t *testing.T) {
	svc, _, areaID, roomID := scheduleFixture(t)
	actor := userIdentity()

	resp, err := svc.Create(context.Background(), &dto.CreateScheduleRequest{
		Date:      "2026-08-26",
		StartTime: "8:00",
		EndTime:   "9.30",
		Content:   "Planning",
		AreaID:    areaID,
		RoomID:    &roomID,
	}, actor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if resp.Status != string(model.EntryPending) {
		t.Errorf("new entry status = %q, want pending", resp.Status)
	}
	if resp.HostEmail != actor.Email || resp.HostName != actor.Name {
		t.Errorf("host = %q/%q, want actor %q/%q", resp.HostEmail, resp.HostName, actor.Email, actor.Name)
	}
	if resp.CreatorEmail != actor.Email {
		t.Errorf("creator = %q, want %q", resp.CreatorEmail, actor.Email)
	}
	if resp.Department != actor.Department {
		t.Errorf("department = %q, want actor's %q", resp.Department, actor.Department)
	}
	if resp.StartTime != "08:00" || resp.EndTime != "09:30" {
		t.Errorf("times = %q-%q, want normalized 08:00-09:30", resp.StartTime, resp.EndTime)
	}
	if resp.Room == nil || resp.Room.Name != "Room 101" {
		t.Errorf("room not resolved: %+v", resp.Room)
	}
}

func TestScheduleCreateValidation(t *testing.T) {
	svc, _, areaID, roomID := scheduleFixture(t)
	actor := userIdentity()

	base := func() *dto.CreateScheduleRequest {
		return &dto.CreateScheduleRequest{
			Date:      "2026-08-26",
			StartTime: "09:00",
			EndTime:   "10:00",
			Content:   "Planning",
			AreaID:    areaID,
		}
	}

	cases := []struct {
		name    string
		mutate  func(*dto.CreateScheduleRequest)
		wantErr error
	}{
		{"bad date", func(r *dto.CreateScheduleRequest) { r.Date = "26/08/2026" }, ErrInvalidDate},
		{"end before start", func(r *dto.CreateScheduleRequest) { r.StartTime, r.EndTime = "10:00", "09:00" }, ErrInvalidTimeRange},
		{"equal times", func(r *dto.CreateScheduleRequest) { r.EndTime = "09:00" }, ErrInvalidTimeRange},
		{"unknown area", func(r *dto.CreateScheduleRequest) { r.AreaID = "missing" }, ErrAreaNotFound},
		{"unknown room", func(r *dto.CreateScheduleRequest) { id := "missing"; r.RoomID = &id }, ErrRoomNotFound},
		{"unknown department", func(r *dto.CreateScheduleRequest) { r.Department = "Nonexistent" }, ErrDepartmentUnknown},
		{"host not on roster", func(r *dto.CreateScheduleRequest) { r.HostEmail = "ghost@example.com" }, ErrHostNotActive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(req)
			_, err := svc.Create(context.Background(), req, actor)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Create = %v, want %v", err, tc.wantErr)
			}
		})
	}

	t.Run("room from another area", func(t *testing.T) {
		other := &model.Area{Name: "Annex"}
		areas := svc.repo.Area.(*mockAreaRepo)
		if err := areas.CreateArea(context.Background(), other); err != nil {
			t.Fatal(err)
		}
		req := base()
		req.AreaID = other.AreaID
		req.RoomID = &roomID
		if _, err := svc.Create(context.Background(), req, actor); !errors.Is(err, ErrRoomNotInArea) {
			t.Errorf("Create = %v, want %v", err, ErrRoomNotInArea)
		}
	})
}

func TestScheduleCreateExplicitHostMustBeActive(t *testing.T) {
	svc, _, areaID, _ := scheduleFixture(t)
	accounts := svc.repo.Account.(*mockAccountRepo)

	pending := &model.Account{Email: "pending@example.com", Name: "Pending P", Status: model.AccountPending}
	active := &model.Account{Email: "active@example.com", Name: "Active A", Status: model.AccountActive}
	for _, a := range []*model.Account{pending, active} {
		if err := accounts.Create(context.Background(), a); err != nil {
			t.Fatal(err)
		}
	}

	req := &dto.CreateScheduleRequest{
		Date: "2026-08-26", StartTime: "09:00", EndTime: "10:00",
		Content: "Review", AreaID: areaID, HostEmail: "pending@example.com",
	}
	if _, err := svc.Create(context.Background(), req, userIdentity()); !errors.Is(err, ErrHostNotActive) {
		t.Fatalf("pending host: got %v, want %v", err, ErrHostNotActive)
	}

	req.HostEmail = "active@example.com"
	resp, err := svc.Create(context.Background(), req, userIdentity())
	if err != nil {
		t.Fatalf("active host: %v", err)
	}
	if resp.HostEmail != "active@example.com" || resp.HostName != "Active A" {
		t.Errorf("host = %q/%q, want roster identity", resp.HostEmail, resp.HostName)
	}
}

func TestScheduleApprove(t *testing.T) {
	svc, schedules, areaID, _ := scheduleFixture(t)
	entry := createEntry(t, svc, areaID, "2026-08-26", userIdentity())

	if err := svc.Approve(context.Background(), entry.ID, userIdentity()); !errors.Is(err, ErrScheduleForbidden) {
		t.Fatalf("user approve = %v, want %v", err, ErrScheduleForbidden)
	}
	if apperr.StatusOf(ErrScheduleForbidden) != 403 {
		t.Fatalf("forbidden error maps to %d, want 403", apperr.StatusOf(ErrScheduleForbidden))
	}

	if err := svc.Approve(context.Background(), entry.ID, managerIdentity()); err != nil {
		t.Fatalf("manager approve: %v", err)
	}
	got, _ := schedules.GetByID(context.Background(), entry.ID)
	if got.Status != model.EntryApproved {
		t.Fatalf("status = %q, want approved", got.Status)
	}

	// Re-approving is a no-op success.
	if err := svc.Approve(context.Background(), entry.ID, managerIdentity()); err != nil {
		t.Fatalf("second approve: %v", err)
	}

	// A canceled entry stays canceled through an approve attempt.
	if err := svc.Cancel(context.Background(), entry.ID, managerIdentity()); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := svc.Approve(context.Background(), entry.ID, managerIdentity()); err != nil {
		t.Fatalf("approve after cancel: %v", err)
	}
	got, _ = schedules.GetByID(context.Background(), entry.ID)
	if got.Status != model.EntryCanceled {
		t.Fatalf("status = %q, want canceled to stick", got.Status)
	}

	if err := svc.Approve(context.Background(), "missing", managerIdentity()); !errors.Is(err, ErrEntryNotFound) {
		t.Fatalf("approve missing = %v, want %v", err, ErrEntryNotFound)
	}
}

func TestScheduleCancel(t *testing.T) {
	svc, schedules, areaID, _ := scheduleFixture(t)
	creator := userIdentity()

	t.Run("creator withdraws pending", func(t *testing.T) {
		entry := createEntry(t, svc, areaID, "2026-08-26", creator)
		if err := svc.Cancel(context.Background(), entry.ID, creator); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
		got, _ := schedules.GetByID(context.Background(), entry.ID)
		if got.Status != model.EntryCanceled {
			t.Fatalf("status = %q, want canceled", got.Status)
		}
		// Idempotent.
		if err := svc.Cancel(context.Background(), entry.ID, creator); err != nil {
			t.Fatalf("second Cancel: %v", err)
		}
	})

	t.Run("creator cannot withdraw approved", func(t *testing.T) {
		entry := createEntry(t, svc, areaID, "2026-08-27", creator)
		if err := svc.Approve(context.Background(), entry.ID, managerIdentity()); err != nil {
			t.Fatal(err)
		}
		if err := svc.Cancel(context.Background(), entry.ID, creator); !errors.Is(err, ErrScheduleForbidden) {
			t.Fatalf("Cancel = %v, want %v", err, ErrScheduleForbidden)
		}
	})

	t.Run("manager cancels anything", func(t *testing.T) {
		entry := createEntry(t, svc, areaID, "2026-08-28", creator)
		if err := svc.Approve(context.Background(), entry.ID, managerIdentity()); err != nil {
			t.Fatal(err)
		}
		if err := svc.Cancel(context.Background(), entry.ID, managerIdentity()); err != nil {
			t.Fatalf("Cancel: %v", err)
		}
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		entry := createEntry(t, svc, areaID, "2026-08-29", creator)
		other := userIdentity()
		other.Email = "other@example.com"
		if err := svc.Cancel(context.Background(), entry.ID, other); !errors.Is(err, ErrScheduleForbidden) {
			t.Fatalf("Cancel = %v, want %v", err, ErrScheduleForbidden)
		}
	})
}

func TestScheduleDelete(t *testing.T) {
	svc, schedules, areaID, _ := scheduleFixture(t)
	creator := userIdentity()

	t.Run("creator deletes own pending", func(t *testing.T) {
		entry := createEntry(t, svc, areaID, "2026-08-26", creator)
		if err := svc.Delete(context.Background(), entry.ID, creator); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := schedules.GetByID(context.Background(), entry.ID); err == nil {
			t.Fatal("entry still present after delete")
		}
	})

	t.Run("creator cannot delete approved", func(t *testing.T) {
		entry := createEntry(t, svc, areaID, "2026-08-27", creator)
		if err := svc.Approve(context.Background(), entry.ID, managerIdentity()); err != nil {
			t.Fatal(err)
		}
		if err := svc.Delete(context.Background(), entry.ID, creator); !errors.Is(err, ErrScheduleForbidden) {
			t.Fatalf("Delete = %v, want %v", err, ErrScheduleForbidden)
		}
	})

	t.Run("manager deletes approved", func(t *testing.T) {
		entry := createEntry(t, svc, areaID, "2026-08-28", creator)
		if err := svc.Approve(context.Background(), entry.ID, managerIdentity()); err != nil {
			t.Fatal(err)
		}
		if err := svc.Delete(context.Background(), entry.ID, managerIdentity()); err != nil {
			t.Fatalf("Delete: %v", err)
		}
	})

	t.Run("missing entry", func(t *testing.T) {
		if err := svc.Delete(context.Background(), "missing", managerIdentity()); !errors.Is(err, ErrEntryNotFound) {
			t.Fatalf("Delete = %v, want %v", err, ErrEntryNotFound)
		}
	})
}

func TestScheduleListByWeek(t *testing.T) {
	svc, _, areaID, _ := scheduleFixture(t)
	creator := userIdentity()

	// 2026 week 33 runs Mon 2026-08-17 through Sun 2026-08-23.
	inWeek := []string{"2026-08-17", "2026-08-20", "2026-08-23"}
	for _, d := range inWeek {
		createEntry(t, svc, areaID, d, creator)
	}
	createEntry(t, svc, areaID, "2026-08-16", creator) // Sunday before
	createEntry(t, svc, areaID, "2026-08-24", creator) // Monday after

	resp, err := svc.ListByWeek(context.Background(), &dto.ScheduleListRequest{Year: 2026, Week: 33}, creator)
	if err != nil {
		t.Fatalf("ListByWeek: %v", err)
	}
	if resp.StartDate != "2026-08-17" || resp.EndDate != "2026-08-23" {
		t.Errorf("bounds = %s..%s, want 2026-08-17..2026-08-23", resp.StartDate, resp.EndDate)
	}
	if len(resp.Entries) != len(inWeek) {
		t.Fatalf("got %d entries, want %d", len(resp.Entries), len(inWeek))
	}
	for i, e := range resp.Entries {
		if e.Date != inWeek[i] {
			t.Errorf("entry %d date = %s, want %s", i, e.Date, inWeek[i])
		}
	}
}

func TestScheduleListByWeekDefaultsToCurrentWeek(t *testing.T) {
	svc, _, areaID, _ := scheduleFixture(t)
	creator := userIdentity()
	createEntry(t, svc, areaID, "2026-08-25", creator) // same week as the pinned clock

	resp, err := svc.ListByWeek(context.Background(), &dto.ScheduleListRequest{}, creator)
	if err != nil {
		t.Fatalf("ListByWeek: %v", err)
	}
	if len(resp.Entries) != 1 {
		t.Fatalf("got %d entries, want 1 in the current week", len(resp.Entries))
	}
	if resp.Year != 2026 {
		t.Errorf("resolved year = %d, want 2026", resp.Year)
	}
}

func TestScheduleListByWeekInvalidWeek(t *testing.T) {
	svc, _, _, _ := scheduleFixture(t)
	for _, week := range []int{-1, 54, 100} {
		if _, err := svc.ListByWeek(context.Background(), &dto.ScheduleListRequest{Year: 2026, Week: week}, userIdentity()); !errors.Is(err, ErrInvalidWeek) {
			t.Errorf("week %d: got %v, want %v", week, err, ErrInvalidWeek)
		}
	}
}

func TestScheduleListByWeekFilters(t *testing.T) {
	svc, _, areaID, _ := scheduleFixture(t)
	mine := userIdentity()
	other := userIdentity()
	other.Email, other.Name = "other@example.com", "Other O"

	createEntry(t, svc, areaID, "2026-08-25", mine)
	createEntry(t, svc, areaID, "2026-08-25", other)
	canceled := createEntry(t, svc, areaID, "2026-08-26", mine)
	if err := svc.Cancel(context.Background(), canceled.ID, mine); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.ListByWeek(context.Background(), &dto.ScheduleListRequest{Year: 2026, Week: 34, IsMySchedule: true}, mine)
	if err != nil {
		t.Fatalf("ListByWeek: %v", err)
	}
	if len(resp.Entries) != 1 || resp.Entries[0].HostEmail != mine.Email {
		t.Fatalf("my-schedule filter returned %d entries", len(resp.Entries))
	}

	// Canceled entries appear only when asked for.
	resp, err = svc.ListByWeek(context.Background(), &dto.ScheduleListRequest{Year: 2026, Week: 34, IsMySchedule: true, IsFilterCanceled: true}, mine)
	if err != nil {
		t.Fatalf("ListByWeek: %v", err)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("with canceled: got %d entries, want 2", len(resp.Entries))
	}
}

func TestDateSpans(t *testing.T) {
	d1, d2 := mustDate("2026-08-24"), mustDate("2026-08-25")
	entry := func(d time.Time) model.ScheduleEntry { return model.ScheduleEntry{Date: d} }

	cases := []struct {
		name    string
		entries []model.ScheduleEntry
		want    []int
	}{
		{"empty", nil, []int{}},
		{"single", []model.ScheduleEntry{entry(d1)}, []int{1}},
		{"run then run", []model.ScheduleEntry{entry(d1), entry(d1), entry(d1), entry(d2), entry(d2)}, []int{3, 0, 0, 2, 0}},
		{"interleaved dates stay separate runs", []model.ScheduleEntry{entry(d1), entry(d2), entry(d1)}, []int{1, 1, 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DateSpans(tc.entries)
			if len(got) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("spans = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestNormalizeClock(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"09:00", "09:00", true},
		{"9:00", "09:00", true},
		{"15.04", "15:04", true},
		{"8.5", "", false},
		{"24:00", "", false},
		{"nine", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeClock(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("NormalizeClock(%q) = %q,%v, want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
