package models

import "time"

// RoomType enumerates the kinds of rooms a slot can be placed in.
type RoomType string

const (
	RoomTypeClassroom RoomType = "CLASSROOM"
	RoomTypeLab       RoomType = "LAB"
	RoomTypeHall      RoomType = "HALL"
	RoomTypeOnline    RoomType = "ONLINE"
)

// ValidRoomType reports whether the value belongs to the enumerated set.
func ValidRoomType(t RoomType) bool {
	switch t {
	case RoomTypeClassroom, RoomTypeLab, RoomTypeHall, RoomTypeOnline:
		return true
	}
	return false
}

// Room represents a physical or virtual room. Names are unique
// case-insensitively.
type Room struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	RoomType  RoomType  `db:"room_type" json:"room_type"`
	IsActive  bool      `db:"is_active" json:"is_active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
