package repository

import (
	"context"

	"gorm.io/gorm"

	"weekboard/internal/model"
)

// AreaRepository is the area/room data-access interface.
type AreaRepository interface {
	CreateArea(ctx context.Context, area *model.Area) error
	GetAreaByID(ctx context.Context, id string) (*model.Area, error)
	GetAreaByName(ctx context.Context, name string) (*model.Area, error)
	ListAreas(ctx context.Context) ([]model.Area, error)
	DeleteArea(ctx context.Context, id string) error

	CreateRoom(ctx context.Context, room *model.Room) error
	GetRoomByID(ctx context.Context, id string) (*model.Room, error)
	ListRoomsByArea(ctx context.Context, areaID string) ([]model.Room, error)
	DeleteRoom(ctx context.Context, id string) error
}

type areaRepo struct {
	db *gorm.DB
}

// NewAreaRepo creates the GORM-backed AreaRepository.
func NewAreaRepo(db *gorm.DB) AreaRepository {
	return &areaRepo{db: db}
}

func (r *areaRepo) CreateArea(ctx context.Context, area *model.Area) error {
	return r.db.WithContext(ctx).Create(area).Error
}

func (r *areaRepo) GetAreaByID(ctx context.Context, id string) (*model.Area, error) {
	var area model.Area
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("area_id = ?", id).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *areaRepo) GetAreaByName(ctx context.Context, name string) (*model.Area, error) {
	var area model.Area
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Where("LOWER(name) = LOWER(?)", name).
		First(&area).Error
	if err != nil {
		return nil, err
	}
	return &area, nil
}

func (r *areaRepo) ListAreas(ctx context.Context) ([]model.Area, error) {
	var areas []model.Area
	err := r.db.WithContext(ctx).
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Order("name ASC").
		Find(&areas).Error
	return areas, err
}

// DeleteArea removes an area; its rooms cascade at the database level.
func (r *areaRepo) DeleteArea(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("area_id = ?", id).
		Delete(&model.Area{}).Error
}

func (r *areaRepo) CreateRoom(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *areaRepo) GetRoomByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("room_id = ?", id).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *areaRepo) ListRoomsByArea(ctx context.Context, areaID string) ([]model.Room, error) {
	var rooms []model.Room
	err := r.db.WithContext(ctx).
		Where("area_id = ?", areaID).
		Order("name ASC").
		Find(&rooms).Error
	return rooms, err
}

func (r *areaRepo) DeleteRoom(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("room_id = ?", id).
		Delete(&model.Room{}).Error
}
