package service

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"weekboard/config"
	"weekboard/internal/dto"
	"weekboard/internal/repository"
	"weekboard/pkg/apperr"
)

var (
	ErrImportBadFile     = apperr.New(apperr.KindValidation, "cannot parse workbook")
	ErrImportNoHeader    = apperr.New(apperr.KindValidation, "no header row with a content column found")
	ErrImportNoData      = apperr.New(apperr.KindValidation, "workbook has no data rows")
	ErrImportTooManyRows = apperr.New(apperr.KindValidation, "workbook exceeds the row limit")
)

// headerScanRows bounds the search for the header row. Real documents
// put a title and a date line above the table, rarely more.
const headerScanRows = 10

// ImportService reconciles an externally produced weekly schedule
// workbook into schedule-creation requests for the requesting
// identity. It is a batch client of ScheduleService, not a privileged
// path: every candidate passes the same validation as a single create.
type ImportService interface {
	ImportSchedules(ctx context.Context, reader io.Reader, actor Identity) (*dto.ImportScheduleResponse, error)
}

type importService struct {
	cfg      *config.Config
	schedule ScheduleService
	repo     *repository.Repository
	logger   *zap.Logger
	now      func() time.Time
}

// NewImportService creates the ImportService.
func NewImportService(cfg *config.Config, schedule ScheduleService, repo *repository.Repository, logger *zap.Logger) ImportService {
	return &importService{cfg: cfg, schedule: schedule, repo: repo, logger: logger, now: time.Now}
}

// ImportSchedules walks the first sheet of the workbook row by row.
// There is no transaction across the batch: each row succeeds or fails
// on its own and the summary reports both.
func (s *importService) ImportSchedules(ctx context.Context, reader io.Reader, actor Identity) (*dto.ImportScheduleResponse, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, ErrImportBadFile
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, ErrImportBadFile
	}
	if len(rows) == 0 {
		return nil, ErrImportNoData
	}

	headerIdx, cols, ok := findImportHeader(rows)
	if !ok {
		return nil, ErrImportNoHeader
	}
	if len(rows)-headerIdx-1 > s.cfg.Import.MaxRows {
		return nil, ErrImportTooManyRows
	}

	resp := &dto.ImportScheduleResponse{}
	defaultYear := s.now().Year()

	var carriedDate string // raw date text carried over merged-date rows

	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1 // 1-based, as spreadsheets display it

		if isBlankRow(row) {
			continue
		}
		resp.Scanned++

		// Merged-date paper layouts leave the date cell blank on
		// continuation rows.
		if dateText := cellAt(row, cols.date); dateText != "" {
			carriedDate = dateText
		}

		if cellAt(row, cols.content) == "" {
			continue
		}

		if cols.host >= 0 && !MatchesHost(cellAt(row, cols.host), actor.Name) {
			continue
		}
		resp.Matched++

		req, reason := s.buildCandidate(ctx, row, cols, carriedDate, defaultYear)
		if reason != "" {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportRowError{Row: rowNum, Reason: reason})
			continue
		}

		if _, err := s.schedule.Create(ctx, req, actor); err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, dto.ImportRowError{Row: rowNum, Reason: apperr.MessageOf(err)})
			continue
		}
		resp.Created++
	}

	s.logger.Info("schedule import finished",
		zap.String("requester", actor.Email),
		zap.Int("scanned", resp.Scanned),
		zap.Int("matched", resp.Matched),
		zap.Int("created", resp.Created),
		zap.Int("failed", resp.Failed),
	)

	return resp, nil
}

// buildCandidate normalizes one matched row into a create request.
// A non-empty reason means the row failed before submission.
func (s *importService) buildCandidate(ctx context.Context, row []string, cols importColumns, dateText string, defaultYear int) (*dto.CreateScheduleRequest, string) {
	if dateText == "" {
		return nil, "missing date"
	}
	date, ok := ParseImportDate(dateText, defaultYear)
	if !ok {
		return nil, fmt.Sprintf("unparseable date %q", dateText)
	}

	timeText := cellAt(row, cols.timeOfDay)
	start, end, ok := ParseTimeRange(timeText)
	if !ok {
		return nil, fmt.Sprintf("unparseable time %q", timeText)
	}

	locText := cellAt(row, cols.location)
	if locText == "" {
		return nil, "missing location"
	}
	areaName, roomName := splitLocation(locText)
	area, err := s.repo.Area.GetAreaByName(ctx, areaName)
	if err != nil {
		return nil, fmt.Sprintf("unknown location %q", locText)
	}

	req := &dto.CreateScheduleRequest{
		Date:         date.Format("2006-01-02"),
		StartTime:    start,
		EndTime:      end,
		Content:      cellAt(row, cols.content),
		Participants: cellAt(row, cols.participants),
		AreaID:       area.AreaID,
		Department:   cellAt(row, cols.department),
		// Host identity stays the requester's own; the matched host
		// text is never trusted as an identity.
	}
	if roomName != "" {
		for i := range area.Rooms {
			if normalizeName(area.Rooms[i].Name) == normalizeName(roomName) {
				req.RoomID = &area.Rooms[i].RoomID
				break
			}
		}
	}
	return req, ""
}

// ────────────────────── header detection ──────────────────────

type importColumns struct {
	date         int
	timeOfDay    int
	content      int
	participants int
	location     int
	host         int
	department   int
}

// Column role keywords, Vietnamese (accented and plain) plus English.
var headerKeywords = map[string][]string{
	"date":         {"ngày", "ngay", "date"},
	"time":         {"thời gian", "thoi gian", "giờ", "gio", "time"},
	"content":      {"nội dung", "noi dung", "content"},
	"participants": {"thành phần", "thanh phan", "tham dự", "tham du", "participants"},
	"location":     {"địa điểm", "dia diem", "location"},
	"host":         {"chủ trì", "chu tri", "host"},
	"department":   {"đơn vị", "don vi", "department"},
}

// findImportHeader scans the first rows for one containing a content
// column label, then records the index of every recognized role on
// that row. The content column is the anchor: without it there is no
// header.
func findImportHeader(rows [][]string) (int, importColumns, bool) {
	limit := len(rows)
	if limit > headerScanRows {
		limit = headerScanRows
	}

	for i := 0; i < limit; i++ {
		cols := importColumns{date: -1, timeOfDay: -1, content: -1, participants: -1, location: -1, host: -1, department: -1}
		for j, cell := range rows[i] {
			label := normalizeName(cell)
			if label == "" {
				continue
			}
			switch {
			case cols.content < 0 && matchesAny(label, headerKeywords["content"]):
				cols.content = j
			case cols.date < 0 && matchesAny(label, headerKeywords["date"]):
				cols.date = j
			case cols.timeOfDay < 0 && matchesAny(label, headerKeywords["time"]):
				cols.timeOfDay = j
			case cols.participants < 0 && matchesAny(label, headerKeywords["participants"]):
				cols.participants = j
			case cols.location < 0 && matchesAny(label, headerKeywords["location"]):
				cols.location = j
			case cols.host < 0 && matchesAny(label, headerKeywords["host"]):
				cols.host = j
			case cols.department < 0 && matchesAny(label, headerKeywords["department"]):
				cols.department = j
			}
		}
		if cols.content >= 0 {
			return i, cols, true
		}
	}
	return 0, importColumns{}, false
}

func matchesAny(label string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(label, kw) {
			return true
		}
	}
	return false
}

// ────────────────────── host matching ──────────────────────

// MatchesHost reports whether a row's host text refers to the
// requester. Both sides are lowercased with whitespace collapsed; a
// match is a substring relation in either direction, tolerating
// reordered or abbreviated name forms.
func MatchesHost(hostText, requesterName string) bool {
	h := normalizeName(hostText)
	r := normalizeName(requesterName)
	if h == "" || r == "" {
		return false
	}
	return strings.Contains(h, r) || strings.Contains(r, h)
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// ────────────────────── date and time parsing ──────────────────────

var dmyPattern = regexp.MustCompile(`(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)

// ParseImportDate accepts a spreadsheet serial number or a textual
// day/month[/year] date, ignoring surrounding text such as a weekday
// label. Two-digit years are taken as 2000-based; a missing year
// defaults to defaultYear.
func ParseImportDate(s string, defaultYear int) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}

	m := dmyPattern.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := defaultYear
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// Reject rollovers like 31/2.
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}

var clockPattern = regexp.MustCompile(`^(\d{1,2})(?:[h:.](\d{2})?)?$`)

// ParseTimeRange parses a textual range like "8h00 - 9h30",
// "14:00-15:30" or "8h – 11h" into a zero-padded HH:MM pair.
func ParseTimeRange(s string) (string, string, bool) {
	for _, sep := range []string{"–", "—", "~", "đến", "den"} {
		s = strings.ReplaceAll(s, sep, "-")
	}
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return "", "", false
	}

	start, ok := parseClockToken(parts[0])
	if !ok {
		return "", "", false
	}
	end, ok := parseClockToken(parts[1])
	if !ok {
		return "", "", false
	}
	if start >= end {
		return "", "", false
	}
	return start, end, true
}

func parseClockToken(s string) (string, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || minute > 59 {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// ────────────────────── misc helpers ──────────────────────

// splitLocation separates "Area - Room" style location text; the room
// part is optional.
func splitLocation(s string) (area, room string) {
	parts := strings.SplitN(s, "-", 2)
	area = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		room = strings.TrimSpace(parts[1])
	}
	return area, room
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
