package service

import (
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"weekboard/internal/calendar"
	"weekboard/internal/model"
	"weekboard/internal/repository"
)

// ExportService renders a week's approved entries as downloadable
// documents. Only approved entries are exported: pending and canceled
// entries never leave the system through this surface.
type ExportService interface {
	ExportWeekExcel(ctx context.Context, year, week int) (filename string, data []byte, err error)
	ExportWeekICS(ctx context.Context, year, week int) (filename string, data []byte, err error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates the ExportService.
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) approvedWeek(ctx context.Context, year, week int) ([]model.ScheduleEntry, time.Time, time.Time, error) {
	if year == 0 || week == 0 {
		year, week = calendar.CurrentWeek(s.now())
	}
	if !calendar.ValidWeek(week) {
		return nil, time.Time{}, time.Time{}, ErrInvalidWeek
	}
	start, end := calendar.WeekRange(year, week)
	entries, err := s.repo.Schedule.ListByDateRange(ctx, start, end, &repository.ScheduleListFilters{
		Status: model.EntryApproved,
	})
	if err != nil {
		s.logger.Error("list week for export failed", zap.Error(err))
		return nil, time.Time{}, time.Time{}, err
	}
	return entries, start, end, nil
}

var exportHeaders = []string{"Date", "Time", "Content", "Participants", "Location", "Host", "Department"}

// ExportWeekExcel writes the week as a single-sheet workbook. Runs of
// same-date rows get one merged date cell, mirroring the on-screen
// grouping.
func (s *exportService) ExportWeekExcel(ctx context.Context, year, week int) (string, []byte, error) {
	entries, start, _, err := s.approvedWeek(ctx, year, week)
	if err != nil {
		return "", nil, err
	}
	y, w := calendar.CurrentWeek(start)

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, h := range exportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetCellValue(sheet, col+"1", h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	_ = f.SetCellStyle(sheet, "A1", "G1", headerStyle)
	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 14)
	_ = f.SetColWidth(sheet, "C", "C", 48)
	_ = f.SetColWidth(sheet, "D", "E", 24)
	_ = f.SetColWidth(sheet, "F", "G", 20)

	spans := DateSpans(entries)
	for i, e := range entries {
		rowNum := i + 2
		if spans[i] > 0 {
			_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), e.Date.Format("02/01/2006"))
			if spans[i] > 1 {
				_ = f.MergeCell(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum+spans[i]-1))
			}
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), e.StartTime+" - "+e.EndTime)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), e.Content)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), e.Participants)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entryLocation(&e))
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), e.HostName)
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), e.Department)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("write export workbook failed", zap.Error(err))
		return "", nil, err
	}
	return fmt.Sprintf("schedules_%d-W%02d.xlsx", y, w), buf.Bytes(), nil
}

// ExportWeekICS emits the week as an iCalendar feed for subscription
// clients. Event times are interpreted in the server's local zone.
func (s *exportService) ExportWeekICS(ctx context.Context, year, week int) (string, []byte, error) {
	entries, start, _, err := s.approvedWeek(ctx, year, week)
	if err != nil {
		return "", nil, err
	}
	y, w := calendar.CurrentWeek(start)

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//weekboard//schedule export//EN")

	for i := range entries {
		e := &entries[i]
		ev := cal.AddEvent(e.EntryID + "@weekboard")
		ev.SetCreatedTime(e.CreatedAt)
		ev.SetDtStampTime(s.now())
		ev.SetStartAt(entryClock(e.Date, e.StartTime))
		ev.SetEndAt(entryClock(e.Date, e.EndTime))
		ev.SetSummary(e.Content)
		if loc := entryLocation(e); loc != "" {
			ev.SetLocation(loc)
		}
		if e.HostName != "" {
			ev.SetDescription("Host: " + e.HostName)
		}
	}

	return fmt.Sprintf("schedules_%d-W%02d.ics", y, w), []byte(cal.Serialize()), nil
}

// entryClock combines a date-only value with an HH:MM string. Invalid
// clock text falls back to midnight rather than dropping the event.
func entryClock(date time.Time, clock string) time.Time {
	var hour, minute int
	fmt.Sscanf(clock, "%d:%d", &hour, &minute)
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.Local)
}

func entryLocation(e *model.ScheduleEntry) string {
	switch {
	case e.Area != nil && e.Room != nil:
		return e.Area.Name + " - " + e.Room.Name
	case e.Area != nil:
		return e.Area.Name
	default:
		return ""
	}
}
