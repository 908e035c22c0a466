package model

import "time"

// EntryStatus is the schedule entry lifecycle state.
type EntryStatus string

const (
	EntryPending  EntryStatus = "pending"
	EntryApproved EntryStatus = "approved"
	EntryCanceled EntryStatus = "canceled"
)

// Valid reports whether s is a known entry status.
func (s EntryStatus) Valid() bool {
	switch s {
	case EntryPending, EntryApproved, EntryCanceled:
		return true
	}
	return false
}

// ScheduleEntry is a time-boxed activity registered against a shared
// area/room for a given date. Content and Participants are opaque
// markup passed through unvalidated. HostName may diverge from the
// host account's current profile name.
type ScheduleEntry struct {
	EntryID      string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	Date         time.Time   `gorm:"type:date;not null;index"                       json:"date"`
	StartTime    string      `gorm:"type:varchar(5);not null"                       json:"start_time"` // HH:MM
	EndTime      string      `gorm:"type:varchar(5);not null"                       json:"end_time"`   // HH:MM
	Content      string      `gorm:"type:text;not null"                             json:"content"`
	Participants string      `gorm:"type:text;not null;default:''"                  json:"participants"`
	AreaID       string      `gorm:"type:uuid;not null"                             json:"area_id"`
	RoomID       *string     `gorm:"type:uuid"                                      json:"room_id,omitempty"`
	Department   string      `gorm:"type:varchar(100);not null;default:''"          json:"department"` // denormalized name
	HostEmail    string      `gorm:"type:varchar(255);not null;index"               json:"host_email"`
	HostName     string      `gorm:"type:varchar(100);not null"                     json:"host_name"`
	CreatorEmail string      `gorm:"type:varchar(255);not null;index"               json:"creator_email"`
	Status       EntryStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	IsAddendum   bool        `gorm:"not null;default:false"                         json:"is_addendum"`
	IsSupplement bool        `gorm:"not null;default:false"                         json:"is_supplement"`
	BaseModel

	Area *Area `gorm:"foreignKey:AreaID;references:AreaID" json:"area,omitempty"`
	Room *Room `gorm:"foreignKey:RoomID;references:RoomID" json:"room,omitempty"`
}

// TableName sets the table name.
func (ScheduleEntry) TableName() string { return "schedule_entries" }
