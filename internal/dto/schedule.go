package dto

// CreateScheduleRequest registers a new schedule entry. Host fields
// are optional: the entry defaults to the caller as host.
type CreateScheduleRequest struct {
	Date         string  `json:"date" binding:"required"`       // YYYY-MM-DD
	StartTime    string  `json:"start_time" binding:"required"` // HH:MM
	EndTime      string  `json:"end_time" binding:"required"`   // HH:MM
	Content      string  `json:"content" binding:"required"`
	Participants string  `json:"participants"`
	AreaID       string  `json:"area_id" binding:"required,uuid"`
	RoomID       *string `json:"room_id" binding:"omitempty,uuid"`
	Department   string  `json:"department" binding:"omitempty,max=100"`
	HostEmail    string  `json:"host_email" binding:"omitempty,email"`
	HostName     string  `json:"host_name" binding:"omitempty,max=100"`
	IsAddendum   bool    `json:"is_addendum"`
	IsSupplement bool    `json:"is_supplement"`
}

// ScheduleListRequest scopes a week listing.
type ScheduleListRequest struct {
	Year             int    `form:"year" binding:"omitempty,min=2000,max=2200"`
	Week             int    `form:"week" binding:"omitempty,min=1,max=53"`
	Status           string `form:"status" binding:"omitempty,oneof=pending approved canceled"`
	Host             string `form:"host" binding:"omitempty,email"`
	IsMySchedule     bool   `form:"is_my_schedule"`
	IsMyCreation     bool   `form:"is_my_creation"`
	IsFilterUnit     bool   `form:"is_filter_unit"`
	IsFilterCanceled bool   `form:"is_filter_canceled"`
}

// ScheduleEntryResponse is the public view of an entry.
type ScheduleEntryResponse struct {
	ID           string     `json:"id"`
	Date         string     `json:"date"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	Content      string     `json:"content"`
	Participants string     `json:"participants,omitempty"`
	Area         *AreaBrief `json:"area,omitempty"`
	Room         *RoomBrief `json:"room,omitempty"`
	Department   string     `json:"department,omitempty"`
	HostEmail    string     `json:"host_email"`
	HostName     string     `json:"host_name"`
	CreatorEmail string     `json:"creator_email"`
	Status       string     `json:"status"`
	IsAddendum   bool       `json:"is_addendum"`
	IsSupplement bool       `json:"is_supplement"`
	CreatedAt    string     `json:"created_at"`

	// DateSpan is the length of the run of consecutive same-date rows
	// this entry opens, or 0 for rows continuing a run. Callers render
	// one merged date label per run.
	DateSpan int `json:"date_span"`
}

// ScheduleWeekResponse bundles a week listing with its resolved bounds.
type ScheduleWeekResponse struct {
	Year      int                     `json:"year"`
	Week      int                     `json:"week"`
	StartDate string                  `json:"start_date"`
	EndDate   string                  `json:"end_date"`
	Entries   []ScheduleEntryResponse `json:"entries"`
}
