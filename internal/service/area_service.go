package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"weekboard/internal/dto"
	"weekboard/internal/model"
	"weekboard/internal/repository"
	"weekboard/pkg/apperr"
)

var (
	ErrAreaNameExists = apperr.New(apperr.KindConflict, "area name already exists")
	ErrAreaReferenced = apperr.New(apperr.KindConflict, "area or its rooms are referenced by schedule entries")
	ErrRoomReferenced = apperr.New(apperr.KindConflict, "room is referenced by schedule entries")
)

// AreaService owns areas and their rooms. Role gating for mutation is
// enforced at the route level; the reference guards live here because
// they need the schedule repository.
type AreaService interface {
	List(ctx context.Context) ([]dto.AreaResponse, error)
	Create(ctx context.Context, req *dto.CreateAreaRequest) (*dto.AreaResponse, error)
	Delete(ctx context.Context, id string) error
	CreateRoom(ctx context.Context, areaID string, req *dto.CreateRoomRequest) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID string) error
}

type areaService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAreaService creates the AreaService.
func NewAreaService(repo *repository.Repository, logger *zap.Logger) AreaService {
	return &areaService{repo: repo, logger: logger}
}

func (s *areaService) List(ctx context.Context) ([]dto.AreaResponse, error) {
	areas, err := s.repo.Area.ListAreas(ctx)
	if err != nil {
		s.logger.Error("list areas failed", zap.Error(err))
		return nil, err
	}

	result := make([]dto.AreaResponse, 0, len(areas))
	for i := range areas {
		result = append(result, toAreaResponse(&areas[i]))
	}
	return result, nil
}

func (s *areaService) Create(ctx context.Context, req *dto.CreateAreaRequest) (*dto.AreaResponse, error) {
	if _, err := s.repo.Area.GetAreaByName(ctx, req.Name); err == nil {
		return nil, ErrAreaNameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("area lookup failed", zap.Error(err))
		return nil, err
	}

	area := &model.Area{Name: req.Name}
	if err := s.repo.Area.CreateArea(ctx, area); err != nil {
		s.logger.Error("create area failed", zap.Error(err))
		return nil, err
	}

	resp := toAreaResponse(area)
	return &resp, nil
}

// Delete removes an area and, by cascade, its rooms — unless the area
// or any of its rooms is referenced by a schedule entry, which is a
// conflict, not a silent orphaning.
func (s *areaService) Delete(ctx context.Context, id string) error {
	area, err := s.repo.Area.GetAreaByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAreaNotFound
		}
		s.logger.Error("area lookup failed", zap.String("id", id), zap.Error(err))
		return err
	}

	referenced, err := s.repo.Schedule.ExistsByAreaID(ctx, id)
	if err != nil {
		s.logger.Error("area reference check failed", zap.String("id", id), zap.Error(err))
		return err
	}
	if referenced {
		return ErrAreaReferenced
	}
	for _, room := range area.Rooms {
		referenced, err := s.repo.Schedule.ExistsByRoomID(ctx, room.RoomID)
		if err != nil {
			s.logger.Error("room reference check failed", zap.String("room_id", room.RoomID), zap.Error(err))
			return err
		}
		if referenced {
			return ErrAreaReferenced
		}
	}

	if err := s.repo.Area.DeleteArea(ctx, id); err != nil {
		s.logger.Error("delete area failed", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *areaService) CreateRoom(ctx context.Context, areaID string, req *dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	if _, err := s.repo.Area.GetAreaByID(ctx, areaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAreaNotFound
		}
		s.logger.Error("area lookup failed", zap.String("id", areaID), zap.Error(err))
		return nil, err
	}

	room := &model.Room{AreaID: areaID, Name: req.Name}
	if err := s.repo.Area.CreateRoom(ctx, room); err != nil {
		s.logger.Error("create room failed", zap.Error(err))
		return nil, err
	}

	return &dto.RoomResponse{ID: room.RoomID, AreaID: room.AreaID, Name: room.Name}, nil
}

func (s *areaService) DeleteRoom(ctx context.Context, roomID string) error {
	if _, err := s.repo.Area.GetRoomByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRoomNotFound
		}
		s.logger.Error("room lookup failed", zap.String("id", roomID), zap.Error(err))
		return err
	}

	referenced, err := s.repo.Schedule.ExistsByRoomID(ctx, roomID)
	if err != nil {
		s.logger.Error("room reference check failed", zap.String("id", roomID), zap.Error(err))
		return err
	}
	if referenced {
		return ErrRoomReferenced
	}

	if err := s.repo.Area.DeleteRoom(ctx, roomID); err != nil {
		s.logger.Error("delete room failed", zap.String("id", roomID), zap.Error(err))
		return err
	}
	return nil
}

func toAreaResponse(a *model.Area) dto.AreaResponse {
	rooms := make([]dto.RoomResponse, 0, len(a.Rooms))
	for _, r := range a.Rooms {
		rooms = append(rooms, dto.RoomResponse{ID: r.RoomID, AreaID: r.AreaID, Name: r.Name})
	}
	return dto.AreaResponse{ID: a.AreaID, Name: a.Name, Rooms: rooms}
}
