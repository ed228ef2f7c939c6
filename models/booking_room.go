package models

import (
	"gorm.io/gorm"
)

// BookingRoom attaches one room instance to a booking. A room appears in
// many bookings over time but in at most one active, date-overlapping
// booking at a time; the allocator enforces that.
type BookingRoom struct {
	gorm.Model

	BookingID uint `gorm:"index;column:booking_id" json:"bookingId"`
	RoomID    uint `gorm:"index;column:room_id" json:"roomId"`

	Room Room `gorm:"foreignKey:RoomID;references:ID" json:"room,omitempty"`
}
