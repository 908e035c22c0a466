package handler

import (
	"weekboard/config"
	"weekboard/internal/service"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth       *AuthHandler
	Account    *AccountHandler
	Schedule   *ScheduleHandler
	Area       *AreaHandler
	Department *DepartmentHandler
	Import     *ImportHandler
	Export     *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service, cfg *config.Config) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Account:    NewAccountHandler(svc.Account),
		Schedule:   NewScheduleHandler(svc.Schedule),
		Area:       NewAreaHandler(svc.Area),
		Department: NewDepartmentHandler(svc.Department),
		Import:     NewImportHandler(svc.Import, cfg),
		Export:     NewExportHandler(svc.Export),
	}
}
