package handler

import (
	"github.com/gin-gonic/gin"

	"weekboard/config"
	"weekboard/internal/service"
	"weekboard/pkg/response"
)

// ImportHandler serves the schedule import endpoint.
type ImportHandler struct {
	importSvc service.ImportService
	cfg       *config.Config
}

// NewImportHandler creates the ImportHandler.
func NewImportHandler(importSvc service.ImportService, cfg *config.Config) *ImportHandler {
	return &ImportHandler{importSvc: importSvc, cfg: cfg}
}

// Schedules handles POST /api/v1/import/schedules. The workbook comes
// as multipart field "file".
func (h *ImportHandler) Schedules(c *gin.Context) {
	id, ok := MustGetIdentity(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Invalid(c, "missing upload field \"file\"")
		return
	}
	if fileHeader.Size > h.cfg.Import.MaxUploadBytes {
		response.Invalid(c, "uploaded file too large")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Invalid(c, "cannot read uploaded file")
		return
	}
	defer f.Close()

	result, err := h.importSvc.ImportSchedules(c.Request.Context(), f, id)
	if err != nil {
		response.AppError(c, err)
		return
	}
	response.OK(c, result)
}
