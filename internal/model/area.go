package model

// Area is a named physical zone owning zero or more rooms.
type Area struct {
	AreaID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"area_id"`
	Name   string `gorm:"type:varchar(100);not null;uniqueIndex"         json:"name"`
	BaseModel

	Rooms []Room `gorm:"foreignKey:AreaID" json:"rooms,omitempty"`
}

// TableName sets the table name.
func (Area) TableName() string { return "areas" }

// Room is a bookable sub-unit of an area.
type Room struct {
	RoomID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	AreaID string `gorm:"type:uuid;not null;index"                       json:"area_id"`
	Name   string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel
}

// TableName sets the table name.
func (Room) TableName() string { return "rooms" }
