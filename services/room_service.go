package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"innkeeper-backend/models"
)

// RoomService manages physical room instances and their three status axes.
// Two invariants are enforced on every status write:
//
//   - under-maintenance forces occupancy blocked;
//   - occupancy flipping to available while cleaning is clean forces
//     cleaning dirty (a vacated room always needs housekeeping).
type RoomService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewRoomService(db *gorm.DB, log zerolog.Logger) *RoomService {
	return &RoomService{DB: db, Log: log}
}

func (s *RoomService) Create(room models.Room) (*models.Room, error) {
	room.RoomNumber = strings.TrimSpace(room.RoomNumber)
	if room.RoomNumber == "" {
		return nil, errors.New("room number is required")
	}
	if room.RoomTypeID == 0 {
		return nil, ErrRoomTypeNotFound
	}
	var rt models.RoomType
	if err := s.DB.First(&rt, room.RoomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("load room type %d: %w", room.RoomTypeID, err)
	}

	if room.CleaningStatus == "" {
		room.CleaningStatus = models.CleaningClean
	} else if !models.ValidCleaningStatus(room.CleaningStatus) {
		return nil, ErrInvalidStatus
	}
	if room.MaintenanceStatus == "" {
		room.MaintenanceStatus = models.MaintenanceGood
	} else if !models.ValidMaintenanceStatus(room.MaintenanceStatus) {
		return nil, ErrInvalidStatus
	}
	if room.OccupancyStatus == "" {
		room.OccupancyStatus = models.OccupancyAvailable
	} else if !models.ValidOccupancyStatus(room.OccupancyStatus) {
		return nil, ErrInvalidStatus
	}
	room.IsActive = true
	applyMaintenanceInvariant(&room)

	if err := s.DB.Create(&room).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return &room, nil
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	var rooms []models.Room
	err := s.DB.Preload("RoomType").Order("room_number ASC").Find(&rooms).Error
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("load room %d: %w", id, err)
	}
	return &room, nil
}

// Update mutates descriptive fields only; status axes go through
// UpdateStatus so the invariants cannot be bypassed.
func (s *RoomService) Update(id uint, fields map[string]interface{}) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	allowed := map[string]bool{"room_number": true, "floor": true, "description": true, "room_type_id": true}
	updates := map[string]interface{}{}
	for k, v := range fields {
		if allowed[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		return room, nil
	}

	if err := s.DB.Model(room).Updates(updates).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateRoomNumber
		}
		return nil, fmt.Errorf("update room %d: %w", id, err)
	}
	return s.GetByID(id)
}

// StatusUpdate carries one room status change; nil fields are untouched.
// Cleaning staff send only Cleaning, the front desk only Occupancy,
// maintenance staff only Maintenance.
type StatusUpdate struct {
	Cleaning    *string
	Maintenance *string
	Occupancy   *string
}

func (s *RoomService) UpdateStatus(id uint, upd StatusUpdate) (*models.Room, error) {
	room, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if upd.Cleaning != nil {
		if !models.ValidCleaningStatus(*upd.Cleaning) {
			return nil, ErrInvalidStatus
		}
		room.CleaningStatus = *upd.Cleaning
	}
	if upd.Maintenance != nil {
		if !models.ValidMaintenanceStatus(*upd.Maintenance) {
			return nil, ErrInvalidStatus
		}
		room.MaintenanceStatus = *upd.Maintenance
	}
	if upd.Occupancy != nil {
		if !models.ValidOccupancyStatus(*upd.Occupancy) {
			return nil, ErrInvalidStatus
		}
		room.OccupancyStatus = *upd.Occupancy
	}
	applyMaintenanceInvariant(room)

	// A room that just became free always needs re-cleaning. Checked after
	// the maintenance invariant so a blocked room is not dirtied.
	if upd.Occupancy != nil &&
		room.OccupancyStatus == models.OccupancyAvailable &&
		room.CleaningStatus == models.CleaningClean {
		room.CleaningStatus = models.CleaningDirty
	}

	updates := map[string]interface{}{
		"cleaning_status":    room.CleaningStatus,
		"maintenance_status": room.MaintenanceStatus,
		"occupancy_status":   room.OccupancyStatus,
	}
	if err := s.DB.Model(&models.Room{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("update room %d status: %w", id, err)
	}
	return s.GetByID(id)
}

// Retire soft-deletes a room (is_active = false). Rejected while the room
// is attached to a confirmed or checked-in booking.
func (s *RoomService) Retire(id uint) error {
	room, err := s.GetByID(id)
	if err != nil {
		return err
	}

	var count int64
	err = s.DB.Model(&models.BookingRoom{}).
		Joins("JOIN bookings ON bookings.id = booking_rooms.booking_id").
		Where("bookings.deleted_at IS NULL").
		Where("booking_rooms.room_id = ? AND bookings.status IN ?", id, models.ActiveBookingStatuses).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("check room usage: %w", err)
	}
	if count > 0 {
		return ErrRoomInUse
	}

	if err := s.DB.Model(room).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("retire room %d: %w", id, err)
	}
	return nil
}

func applyMaintenanceInvariant(room *models.Room) {
	if room.MaintenanceStatus == models.MaintenanceUnder {
		room.OccupancyStatus = models.OccupancyBlocked
	}
}

func isDuplicateErr(err error) bool {
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate") || strings.Contains(lc, "unique")
}
