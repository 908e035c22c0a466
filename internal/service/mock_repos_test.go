package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"weekboard/internal/model"
	"weekboard/internal/repository"
)

// Map-backed repository doubles. They keep just enough ordering and
// filtering behavior for the services to be tested without a database.

type mockAccountRepo struct {
	accounts map[string]*model.Account // keyed by AccountID
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{accounts: make(map[string]*model.Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, a *model.Account) error {
	if a.AccountID == "" {
		a.AccountID = uuid.NewString()
	}
	cp := *a
	m.accounts[a.AccountID] = &cp
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id string) (*model.Account, error) {
	a, ok := m.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*model.Account, error) {
	for _, a := range m.accounts {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAccountRepo) Update(_ context.Context, a *model.Account) error {
	if _, ok := m.accounts[a.AccountID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *a
	m.accounts[a.AccountID] = &cp
	return nil
}

func (m *mockAccountRepo) Delete(_ context.Context, id string) error {
	delete(m.accounts, id)
	return nil
}

func (m *mockAccountRepo) List(_ context.Context, filters *repository.AccountListFilters, offset, limit int) ([]model.Account, int64, error) {
	var out []model.Account
	for _, a := range m.accounts {
		if filters != nil {
			if filters.Status != "" && a.Status != filters.Status {
				continue
			}
			if filters.Keyword != "" {
				kw := strings.ToLower(filters.Keyword)
				if !strings.Contains(strings.ToLower(a.Name), kw) && !strings.Contains(strings.ToLower(a.Email), kw) {
					continue
				}
			}
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	total := int64(len(out))
	if offset >= len(out) {
		return nil, total, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, total, nil
}

func (m *mockAccountRepo) ListActive(_ context.Context) ([]model.Account, error) {
	var out []model.Account
	for _, a := range m.accounts {
		if a.Status == model.AccountActive {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type mockScheduleRepo struct {
	entries map[string]*model.ScheduleEntry
	areas   *mockAreaRepo // for preload emulation on reads
}

func newMockScheduleRepo(areas *mockAreaRepo) *mockScheduleRepo {
	return &mockScheduleRepo{entries: make(map[string]*model.ScheduleEntry), areas: areas}
}

func (m *mockScheduleRepo) attach(e *model.ScheduleEntry) {
	if m.areas == nil {
		return
	}
	if a, ok := m.areas.areas[e.AreaID]; ok {
		cp := *a
		cp.Rooms = nil
		e.Area = &cp
	}
	if e.RoomID != nil {
		if r, ok := m.areas.rooms[*e.RoomID]; ok {
			cp := *r
			e.Room = &cp
		}
	}
}

func (m *mockScheduleRepo) Create(_ context.Context, e *model.ScheduleEntry) error {
	if e.EntryID == "" {
		e.EntryID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = model.EntryPending
	}
	cp := *e
	cp.Area, cp.Room = nil, nil
	m.entries[e.EntryID] = &cp
	return nil
}

func (m *mockScheduleRepo) GetByID(_ context.Context, id string) (*model.ScheduleEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *e
	m.attach(&cp)
	return &cp, nil
}

func (m *mockScheduleRepo) Update(_ context.Context, e *model.ScheduleEntry) error {
	if _, ok := m.entries[e.EntryID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *e
	cp.Area, cp.Room = nil, nil
	m.entries[e.EntryID] = &cp
	return nil
}

func (m *mockScheduleRepo) Delete(_ context.Context, id string) error {
	delete(m.entries, id)
	return nil
}

func (m *mockScheduleRepo) ListByDateRange(_ context.Context, start, end time.Time, filters *repository.ScheduleListFilters) ([]model.ScheduleEntry, error) {
	var out []model.ScheduleEntry
	for _, e := range m.entries {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		if filters != nil {
			if filters.Status != "" {
				if e.Status != filters.Status {
					continue
				}
			} else if !filters.IncludeCanceled && e.Status == model.EntryCanceled {
				continue
			}
			if filters.HostEmail != "" && e.HostEmail != filters.HostEmail {
				continue
			}
			if filters.CreatorEmail != "" && e.CreatorEmail != filters.CreatorEmail {
				continue
			}
			if filters.Department != "" && e.Department != filters.Department {
				continue
			}
		} else if e.Status == model.EntryCanceled {
			continue
		}
		cp := *e
		m.attach(&cp)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (m *mockScheduleRepo) ExistsByAreaID(_ context.Context, areaID string) (bool, error) {
	for _, e := range m.entries {
		if e.AreaID == areaID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockScheduleRepo) ExistsByRoomID(_ context.Context, roomID string) (bool, error) {
	for _, e := range m.entries {
		if e.RoomID != nil && *e.RoomID == roomID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockScheduleRepo) ExistsByDepartment(_ context.Context, name string) (bool, error) {
	for _, e := range m.entries {
		if e.Department == name {
			return true, nil
		}
	}
	return false, nil
}

type mockAreaRepo struct {
	areas map[string]*model.Area
	rooms map[string]*model.Room
}

func newMockAreaRepo() *mockAreaRepo {
	return &mockAreaRepo{areas: make(map[string]*model.Area), rooms: make(map[string]*model.Room)}
}

func (m *mockAreaRepo) withRooms(a *model.Area) *model.Area {
	cp := *a
	cp.Rooms = nil
	for _, r := range m.rooms {
		if r.AreaID == cp.AreaID {
			cp.Rooms = append(cp.Rooms, *r)
		}
	}
	sort.Slice(cp.Rooms, func(i, j int) bool { return cp.Rooms[i].Name < cp.Rooms[j].Name })
	return &cp
}

func (m *mockAreaRepo) CreateArea(_ context.Context, a *model.Area) error {
	if a.AreaID == "" {
		a.AreaID = uuid.NewString()
	}
	cp := *a
	cp.Rooms = nil
	m.areas[a.AreaID] = &cp
	return nil
}

func (m *mockAreaRepo) GetAreaByID(_ context.Context, id string) (*model.Area, error) {
	a, ok := m.areas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return m.withRooms(a), nil
}

func (m *mockAreaRepo) GetAreaByName(_ context.Context, name string) (*model.Area, error) {
	for _, a := range m.areas {
		if strings.EqualFold(a.Name, name) {
			return m.withRooms(a), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAreaRepo) ListAreas(_ context.Context) ([]model.Area, error) {
	var out []model.Area
	for _, a := range m.areas {
		out = append(out, *m.withRooms(a))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockAreaRepo) DeleteArea(_ context.Context, id string) error {
	delete(m.areas, id)
	for rid, r := range m.rooms {
		if r.AreaID == id {
			delete(m.rooms, rid)
		}
	}
	return nil
}

func (m *mockAreaRepo) CreateRoom(_ context.Context, r *model.Room) error {
	if r.RoomID == "" {
		r.RoomID = uuid.NewString()
	}
	cp := *r
	m.rooms[r.RoomID] = &cp
	return nil
}

func (m *mockAreaRepo) GetRoomByID(_ context.Context, id string) (*model.Room, error) {
	r, ok := m.rooms[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *mockAreaRepo) ListRoomsByArea(_ context.Context, areaID string) ([]model.Room, error) {
	var out []model.Room
	for _, r := range m.rooms {
		if r.AreaID == areaID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockAreaRepo) DeleteRoom(_ context.Context, id string) error {
	delete(m.rooms, id)
	return nil
}

type mockDepartmentRepo struct {
	depts map[string]*model.Department
}

func newMockDepartmentRepo() *mockDepartmentRepo {
	return &mockDepartmentRepo{depts: make(map[string]*model.Department)}
}

func (m *mockDepartmentRepo) Create(_ context.Context, d *model.Department) error {
	if d.DepartmentID == "" {
		d.DepartmentID = uuid.NewString()
	}
	cp := *d
	m.depts[d.DepartmentID] = &cp
	return nil
}

func (m *mockDepartmentRepo) GetByID(_ context.Context, id string) (*model.Department, error) {
	d, ok := m.depts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *mockDepartmentRepo) GetByName(_ context.Context, name string) (*model.Department, error) {
	for _, d := range m.depts {
		if strings.EqualFold(d.Name, name) {
			cp := *d
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) List(_ context.Context) ([]model.Department, error) {
	var out []model.Department
	for _, d := range m.depts {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *mockDepartmentRepo) Update(_ context.Context, d *model.Department) error {
	if _, ok := m.depts[d.DepartmentID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *d
	m.depts[d.DepartmentID] = &cp
	return nil
}

func (m *mockDepartmentRepo) Delete(_ context.Context, id string) error {
	delete(m.depts, id)
	return nil
}

// newTestRepo wires the mocks into the aggregate the services expect.
func newTestRepo() (*repository.Repository, *mockAccountRepo, *mockScheduleRepo, *mockAreaRepo, *mockDepartmentRepo) {
	accounts := newMockAccountRepo()
	areas := newMockAreaRepo()
	schedules := newMockScheduleRepo(areas)
	depts := newMockDepartmentRepo()
	repo := &repository.Repository{
		Account:    accounts,
		Schedule:   schedules,
		Area:       areas,
		Department: depts,
	}
	return repo, accounts, schedules, areas, depts
}

func testLogger() *zap.Logger { return zap.NewNop() }

func mustDate(t string) time.Time {
	d, err := time.Parse("2006-01-02", t)
	if err != nil {
		panic(err)
	}
	return d
}
