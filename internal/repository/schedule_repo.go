package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"weekboard/internal/model"
)

// ScheduleListFilters narrows a date-range listing. Zero values mean
// "no restriction"; canceled entries are excluded unless asked for.
type ScheduleListFilters struct {
	Status          model.EntryStatus
	HostEmail       string
	CreatorEmail    string
	Department      string
	IncludeCanceled bool
}

// ScheduleRepository is the schedule-entry data-access interface.
type ScheduleRepository interface {
	Create(ctx context.Context, entry *model.ScheduleEntry) error
	GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error)
	Update(ctx context.Context, entry *model.ScheduleEntry) error
	Delete(ctx context.Context, id string) error
	ListByDateRange(ctx context.Context, start, end time.Time, filters *ScheduleListFilters) ([]model.ScheduleEntry, error)
	ExistsByAreaID(ctx context.Context, areaID string) (bool, error)
	ExistsByRoomID(ctx context.Context, roomID string) (bool, error)
	ExistsByDepartment(ctx context.Context, name string) (bool, error)
}

type scheduleRepo struct {
	db *gorm.DB
}

// NewScheduleRepo creates the GORM-backed ScheduleRepository.
func NewScheduleRepo(db *gorm.DB) ScheduleRepository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) Create(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (*model.ScheduleEntry, error) {
	var entry model.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("Area").
		Preload("Room").
		Where("entry_id = ?", id).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *scheduleRepo) Update(ctx context.Context, entry *model.ScheduleEntry) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

func (r *scheduleRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&model.ScheduleEntry{}).Error
}

func (r *scheduleRepo) ListByDateRange(ctx context.Context, start, end time.Time, filters *ScheduleListFilters) ([]model.ScheduleEntry, error) {
	db := r.db.WithContext(ctx).
		Preload("Area").
		Preload("Room").
		Where("date BETWEEN ? AND ?", start, end)

	if filters != nil {
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		} else if !filters.IncludeCanceled {
			db = db.Where("status <> ?", model.EntryCanceled)
		}
		if filters.HostEmail != "" {
			db = db.Where("host_email = ?", filters.HostEmail)
		}
		if filters.CreatorEmail != "" {
			db = db.Where("creator_email = ?", filters.CreatorEmail)
		}
		if filters.Department != "" {
			db = db.Where("department = ?", filters.Department)
		}
	} else {
		db = db.Where("status <> ?", model.EntryCanceled)
	}

	var entries []model.ScheduleEntry
	err := db.Order("date ASC, start_time ASC").Find(&entries).Error
	return entries, err
}

func (r *scheduleRepo) ExistsByAreaID(ctx context.Context, areaID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("area_id = ?", areaID).
		Count(&count).Error
	return count > 0, err
}

func (r *scheduleRepo) ExistsByRoomID(ctx context.Context, roomID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count > 0, err
}

func (r *scheduleRepo) ExistsByDepartment(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ScheduleEntry{}).
		Where("department = ?", name).
		Count(&count).Error
	return count > 0, err
}
