package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"weekboard/internal/service"
	"weekboard/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the week export downloads.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates the ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

func weekParams(c *gin.Context) (int, int) {
	year, _ := strconv.Atoi(c.Query("year"))
	week, _ := strconv.Atoi(c.Query("week"))
	return year, week
}

// Excel handles GET /api/v1/export/schedules.xlsx.
func (h *ExportHandler) Excel(c *gin.Context) {
	year, week := weekParams(c)

	name, data, err := h.exportSvc.ExportWeekExcel(c.Request.Context(), year, week)
	if err != nil {
		response.AppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(200, xlsxContentType, data)
}

// ICS handles GET /api/v1/export/schedules.ics.
func (h *ExportHandler) ICS(c *gin.Context) {
	year, week := weekParams(c)

	name, data, err := h.exportSvc.ExportWeekICS(c.Request.Context(), year, week)
	if err != nil {
		response.AppError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(200, "text/calendar; charset=utf-8", data)
}
