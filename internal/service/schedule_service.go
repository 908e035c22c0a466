package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"weekboard/internal/access"
	"weekboard/internal/calendar"
	"weekboard/internal/dto"
	"weekboard/internal/model"
	"weekboard/internal/repository"
	"weekboard/pkg/apperr"
)

var (
	ErrEntryNotFound     = apperr.New(apperr.KindNotFound, "schedule entry not found")
	ErrAreaNotFound      = apperr.New(apperr.KindNotFound, "area not found")
	ErrRoomNotFound      = apperr.New(apperr.KindNotFound, "room not found")
	ErrRoomNotInArea     = apperr.New(apperr.KindValidation, "room does not belong to the given area")
	ErrDepartmentUnknown = apperr.New(apperr.KindValidation, "department does not exist")
	ErrHostNotActive     = apperr.New(apperr.KindValidation, "host is not an active account")
	ErrInvalidDate       = apperr.New(apperr.KindValidation, "date must be YYYY-MM-DD")
	ErrInvalidTimeRange  = apperr.New(apperr.KindValidation, "start time must precede end time")
	ErrInvalidWeek       = apperr.New(apperr.KindValidation, "week number out of range")
	ErrScheduleForbidden = apperr.New(apperr.KindAuthorization, "not allowed to modify this schedule entry")
)

// ScheduleService owns the schedule-entry lifecycle.
type ScheduleService interface {
	Create(ctx context.Context, req *dto.CreateScheduleRequest, actor Identity) (*dto.ScheduleEntryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ScheduleEntryResponse, error)
	ListByWeek(ctx context.Context, req *dto.ScheduleListRequest, actor Identity) (*dto.ScheduleWeekResponse, error)
	Approve(ctx context.Context, id string, actor Identity) error
	Cancel(ctx context.Context, id string, actor Identity) error
	Delete(ctx context.Context, id string, actor Identity) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewScheduleService creates the ScheduleService.
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{repo: repo, logger: logger, now: time.Now}
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, req *dto.CreateScheduleRequest, actor Identity) (*dto.ScheduleEntryResponse, error) {
	date, err := time.ParseInLocation("2006-01-02", req.Date, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}

	start, okStart := NormalizeClock(req.StartTime)
	end, okEnd := NormalizeClock(req.EndTime)
	if !okStart || !okEnd || start >= end {
		return nil, ErrInvalidTimeRange
	}

	// Location references must exist; a room must belong to its area.
	if _, err := s.repo.Area.GetAreaByID(ctx, req.AreaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("load area failed", zap.String("area_id", req.AreaID), zap.Error(err))
		return nil, err
	}
	if req.RoomID != nil {
		room, err := s.repo.Area.GetRoomByID(ctx, *req.RoomID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrRoomNotFound
			}
			s.logger.Error("load room failed", zap.String("room_id", *req.RoomID), zap.Error(err))
			return nil, err
		}
		if room.AreaID != req.AreaID {
			return nil, ErrRoomNotInArea
		}
	}

	department := req.Department
	if department == "" {
		department = actor.Department
	} else if _, err := s.repo.Department.GetByName(ctx, department); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentUnknown
		}
		s.logger.Error("load department failed", zap.String("name", department), zap.Error(err))
		return nil, err
	}

	// Host defaults to the caller; an explicit host must come from the
	// active roster. The display name may be free text and is kept even
	// if the host account is later renamed.
	hostEmail := actor.Email
	hostName := actor.Name
	if req.HostEmail != "" && req.HostEmail != actor.Email {
		host, err := s.repo.Account.GetByEmail(ctx, req.HostEmail)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrHostNotActive
			}
			s.logger.Error("load host failed", zap.String("email", req.HostEmail), zap.Error(err))
			return nil, err
		}
		if host.Status != model.AccountActive {
			return nil, ErrHostNotActive
		}
		hostEmail = host.Email
		hostName = host.Name
	}
	if req.HostName != "" {
		hostName = req.HostName
	}

	entry := &model.ScheduleEntry{
		Date:         calendar.DateOnly(date),
		StartTime:    start,
		EndTime:      end,
		Content:      req.Content,
		Participants: req.Participants,
		AreaID:       req.AreaID,
		RoomID:       req.RoomID,
		Department:   department,
		HostEmail:    hostEmail,
		HostName:     hostName,
		CreatorEmail: actor.Email,
		Status:       model.EntryPending,
		IsAddendum:   req.IsAddendum,
		IsSupplement: req.IsSupplement,
	}

	if err := s.repo.Schedule.Create(ctx, entry); err != nil {
		s.logger.Error("create schedule entry failed", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Schedule.GetByID(ctx, entry.EntryID)
	if err != nil {
		return nil, err
	}

	resp := toEntryResponse(created, 1)
	return &resp, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *scheduleService) GetByID(ctx context.Context, id string) (*dto.ScheduleEntryResponse, error) {
	entry, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		s.logger.Error("load schedule entry failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	resp := toEntryResponse(entry, 1)
	return &resp, nil
}

// ────────────────────── ListByWeek ──────────────────────

func (s *scheduleService) ListByWeek(ctx context.Context, req *dto.ScheduleListRequest, actor Identity) (*dto.ScheduleWeekResponse, error) {
	year, week := req.Year, req.Week
	if year == 0 || week == 0 {
		year, week = calendar.CurrentWeek(s.now())
	}
	if !calendar.ValidWeek(week) {
		return nil, ErrInvalidWeek
	}

	start, end := calendar.WeekRange(year, week)

	filters := &repository.ScheduleListFilters{
		Status:          model.EntryStatus(req.Status),
		HostEmail:       req.Host,
		IncludeCanceled: req.IsFilterCanceled,
	}
	if req.IsMySchedule {
		filters.HostEmail = actor.Email
	}
	if req.IsMyCreation {
		filters.CreatorEmail = actor.Email
	}
	if req.IsFilterUnit {
		filters.Department = actor.Department
	}

	entries, err := s.repo.Schedule.ListByDateRange(ctx, start, end, filters)
	if err != nil {
		s.logger.Error("list schedule entries failed",
			zap.Int("year", year), zap.Int("week", week), zap.Error(err))
		return nil, err
	}

	spans := DateSpans(entries)
	list := make([]dto.ScheduleEntryResponse, 0, len(entries))
	for i := range entries {
		list = append(list, toEntryResponse(&entries[i], spans[i]))
	}

	return &dto.ScheduleWeekResponse{
		Year:      year,
		Week:      week,
		StartDate: start.Format("2006-01-02"),
		EndDate:   end.Format("2006-01-02"),
		Entries:   list,
	}, nil
}

// ────────────────────── Approve ──────────────────────

func (s *scheduleService) Approve(ctx context.Context, id string, actor Identity) error {
	if !access.Can(actor.Role, access.OpScheduleApprove) {
		return ErrScheduleForbidden
	}

	entry, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("load schedule entry failed", zap.String("id", id), zap.Error(err))
		return err
	}

	// Idempotent: re-approving, or approving a canceled entry, is a
	// no-op success.
	if entry.Status != model.EntryPending {
		return nil
	}

	entry.Status = model.EntryApproved
	if err := s.repo.Schedule.Update(ctx, entry); err != nil {
		s.logger.Error("approve schedule entry failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Cancel ──────────────────────

func (s *scheduleService) Cancel(ctx context.Context, id string, actor Identity) error {
	entry, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("load schedule entry failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if !access.Can(actor.Role, access.OpScheduleCancelAny) {
		// The creator may withdraw an entry that has not been approved.
		if entry.CreatorEmail != actor.Email || entry.Status != model.EntryPending {
			return ErrScheduleForbidden
		}
	}

	if entry.Status == model.EntryCanceled {
		return nil
	}

	entry.Status = model.EntryCanceled
	if err := s.repo.Schedule.Update(ctx, entry); err != nil {
		s.logger.Error("cancel schedule entry failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, id string, actor Identity) error {
	entry, err := s.repo.Schedule.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("load schedule entry failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if !access.Can(actor.Role, access.OpScheduleDeleteAny) {
		if entry.CreatorEmail != actor.Email || entry.Status == model.EntryApproved {
			return ErrScheduleForbidden
		}
	}

	// Permanent removal; callers wanting history must keep it
	// themselves.
	if err := s.repo.Schedule.Delete(ctx, id); err != nil {
		s.logger.Error("delete schedule entry failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── display grouping ──────────────────────

// DateSpans assigns each entry the length of the run of consecutive
// same-date entries it opens; entries continuing a run get 0. Input
// must already be ordered by date — equal dates separated by another
// date form independent runs on purpose.
func DateSpans(entries []model.ScheduleEntry) []int {
	spans := make([]int, len(entries))
	for i := 0; i < len(entries); {
		j := i + 1
		for j < len(entries) && entries[j].Date.Equal(entries[i].Date) {
			j++
		}
		spans[i] = j - i
		i = j
	}
	return spans
}

// NormalizeClock validates a time-of-day string and renders it as
// zero-padded HH:MM so string comparison matches time order.
func NormalizeClock(s string) (string, bool) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		if t, err = time.Parse("15.04", s); err != nil {
			return "", false
		}
	}
	return t.Format("15:04"), true
}

// ────────────────────── helpers ──────────────────────

func toEntryResponse(e *model.ScheduleEntry, span int) dto.ScheduleEntryResponse {
	resp := dto.ScheduleEntryResponse{
		ID:           e.EntryID,
		Date:         e.Date.Format("2006-01-02"),
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		Content:      e.Content,
		Participants: e.Participants,
		Department:   e.Department,
		HostEmail:    e.HostEmail,
		HostName:     e.HostName,
		CreatorEmail: e.CreatorEmail,
		Status:       string(e.Status),
		IsAddendum:   e.IsAddendum,
		IsSupplement: e.IsSupplement,
		CreatedAt:    e.CreatedAt.Format(time.RFC3339),
		DateSpan:     span,
	}
	if e.Area != nil {
		resp.Area = &dto.AreaBrief{ID: e.Area.AreaID, Name: e.Area.Name}
	}
	if e.Room != nil {
		resp.Room = &dto.RoomBrief{ID: e.Room.RoomID, Name: e.Room.Name}
	}
	return resp
}
