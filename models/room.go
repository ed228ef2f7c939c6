package models

import (
	"gorm.io/gorm"
)

// Cleaning status axis (housekeeping).
const (
	CleaningClean      = "clean"
	CleaningDirty      = "dirty"
	CleaningInProgress = "in-progress"
	CleaningInspected  = "inspected"
)

// Maintenance status axis. Anything other than MaintenanceGood removes the
// room from the booking candidate pool regardless of dates.
const (
	MaintenanceGood        = "good"
	MaintenanceNeedsRepair = "needs-repair"
	MaintenanceUnder       = "under-maintenance"
)

// Occupancy status axis (the front-desk view of the room right now).
const (
	OccupancyAvailable = "available"
	OccupancyOccupied  = "occupied"
	OccupancyReserved  = "reserved"
	OccupancyBlocked   = "blocked"
)

// Room is one physical, numbered room. The three status axes are
// independent; invariants between them are enforced by the room service.
type Room struct {
	gorm.Model

	RoomNumber string `gorm:"column:room_number;uniqueIndex;size:50" json:"roomNumber"`
	RoomTypeID uint   `gorm:"column:room_type_id;index" json:"roomTypeId"`
	Floor      string `gorm:"size:10" json:"floor"`

	CleaningStatus    string `gorm:"column:cleaning_status;size:32;default:clean" json:"cleaningStatus"`
	MaintenanceStatus string `gorm:"column:maintenance_status;size:32;default:good" json:"maintenanceStatus"`
	OccupancyStatus   string `gorm:"column:occupancy_status;size:32;default:available" json:"occupancyStatus"`

	// Retirement flag; retired rooms never enter the candidate pool.
	IsActive bool `gorm:"column:is_active;default:true" json:"isActive"`

	Description string `gorm:"type:text" json:"description,omitempty"`

	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"roomType,omitempty"`
}

func ValidCleaningStatus(s string) bool {
	switch s {
	case CleaningClean, CleaningDirty, CleaningInProgress, CleaningInspected:
		return true
	}
	return false
}

func ValidMaintenanceStatus(s string) bool {
	switch s {
	case MaintenanceGood, MaintenanceNeedsRepair, MaintenanceUnder:
		return true
	}
	return false
}

func ValidOccupancyStatus(s string) bool {
	switch s {
	case OccupancyAvailable, OccupancyOccupied, OccupancyReserved, OccupancyBlocked:
		return true
	}
	return false
}
