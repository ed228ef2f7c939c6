package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room type status values.
const (
	RoomTypeActive   = "active"
	RoomTypeInactive = "inactive"
)

// RoomType is a bookable category of room: the pricing and capacity unit.
// Physical rooms (Room) reference it; it is soft-deleted so historical
// bookings keep a valid reference.
type RoomType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name          string         `gorm:"uniqueIndex;size:100" json:"name"`
	Description   string         `gorm:"type:text" json:"description"`
	PricePerNight float64        `gorm:"column:price_per_night" json:"pricePerNight"`
	MaxAdults     int            `gorm:"column:max_adults;default:2" json:"maxAdults"`
	MaxChildren   int            `gorm:"column:max_children;default:0" json:"maxChildren"`
	Status        string         `gorm:"size:32;default:active" json:"status"`
	Facilities    datatypes.JSON `gorm:"column:facilities" json:"facilities,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (rt *RoomType) IsBookable() bool {
	return rt.Status == RoomTypeActive
}
