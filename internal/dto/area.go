package dto

// CreateAreaRequest creates a named area.
type CreateAreaRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CreateRoomRequest creates a room under an area.
type CreateRoomRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// AreaBrief is the embedded view of an area.
type AreaBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RoomBrief is the embedded view of a room.
type RoomBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AreaResponse is an area with its rooms ordered by name.
type AreaResponse struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Rooms []RoomResponse `json:"rooms"`
}

// RoomResponse is the public view of a room.
type RoomResponse struct {
	ID     string `json:"id"`
	AreaID string `json:"area_id"`
	Name   string `json:"name"`
}
