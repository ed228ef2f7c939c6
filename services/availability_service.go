package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"innkeeper-backend/models"
	"innkeeper-backend/utils"
)

// AvailabilityService answers "how many instances of this room type are free
// for these dates". It is read-only; the allocator re-runs the same
// computation under locks before committing a booking.
type AvailabilityService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewAvailabilityService(db *gorm.DB, log zerolog.Logger) *AvailabilityService {
	return &AvailabilityService{DB: db, Log: log}
}

// AvailabilityResult is the outcome of one availability computation.
type AvailabilityResult struct {
	RoomType       *models.RoomType
	AvailableRooms []models.Room
	AvailableCount int
	RoomsNeeded    int
	PricePerNight  float64
	Nights         int
	TotalPrice     float64
	Sufficient     bool
}

// validateStay normalizes both dates to midnight and enforces the date
// rules shared by the availability check and the allocator: check-in today
// or later, check-out strictly after check-in.
func validateStay(checkIn, checkOut time.Time) (time.Time, time.Time, error) {
	ci := utils.StartOfDay(checkIn)
	co := utils.StartOfDay(checkOut)
	if ci.Before(utils.Today()) {
		return ci, co, ErrCheckInPast
	}
	if !co.After(ci) {
		return ci, co, ErrInvalidDateRange
	}
	return ci, co, nil
}

// Compute runs the availability algorithm for a room type and date range.
func (s *AvailabilityService) Compute(roomTypeID uint, checkIn, checkOut time.Time, roomsNeeded int) (*AvailabilityResult, error) {
	if roomsNeeded <= 0 {
		return nil, ErrInvalidRoomCount
	}
	ci, co, err := validateStay(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	var roomType models.RoomType
	if err := s.DB.First(&roomType, roomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("load room type %d: %w", roomTypeID, err)
	}
	if !roomType.IsBookable() {
		return nil, ErrRoomTypeInactive
	}

	free, err := freeRoomsForStay(s.DB, roomTypeID, ci, co, false)
	if err != nil {
		return nil, err
	}

	nights := StayNights(ci, co)
	return &AvailabilityResult{
		RoomType:       &roomType,
		AvailableRooms: free,
		AvailableCount: len(free),
		RoomsNeeded:    roomsNeeded,
		PricePerNight:  roomType.PricePerNight,
		Nights:         nights,
		TotalPrice:     TotalPrice(roomType.PricePerNight, nights, roomsNeeded),
		Sufficient:     len(free) >= roomsNeeded,
	}, nil
}

// freeRoomsForStay returns the instances of a room type that are free for a
// half-open [checkIn, checkOut) interval, ordered by room number.
//
// Candidate pool: active rooms in good maintenance. Rooms under repair or
// maintenance are excluded regardless of dates. From the pool it removes
// every room attached to a confirmed or checked-in booking whose interval
// overlaps (booking.check_in < checkOut AND booking.check_out > checkIn).
//
// With lock set, both reads take row locks (SELECT ... FOR UPDATE) so two
// allocators racing for the same room type serialize instead of both
// claiming the last room. SQLite has no FOR UPDATE; its single-writer
// transactions give the same guarantee, so the clause is applied only on
// dialects that support it.
func freeRoomsForStay(tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time, lock bool) ([]models.Room, error) {
	useLock := lock && tx.Dialector.Name() == "mysql"

	candidateQ := tx.
		Where("room_type_id = ? AND is_active = ? AND maintenance_status = ?",
			roomTypeID, true, models.MaintenanceGood).
		Order("room_number ASC")
	if useLock {
		candidateQ = candidateQ.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var candidates []models.Room
	if err := candidateQ.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("load candidate rooms: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	bookedQ := tx.Model(&models.BookingRoom{}).
		Joins("JOIN bookings ON bookings.id = booking_rooms.booking_id").
		Where("bookings.deleted_at IS NULL").
		Where("bookings.room_type_id = ? AND bookings.status IN ?", roomTypeID, models.ActiveBookingStatuses).
		Where("bookings.check_in < ? AND bookings.check_out > ?", checkOut, checkIn)
	if useLock {
		bookedQ = bookedQ.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var bookedIDs []uint
	if err := bookedQ.Pluck("booking_rooms.room_id", &bookedIDs).Error; err != nil {
		return nil, fmt.Errorf("load overlapping bookings: %w", err)
	}

	booked := make(map[uint]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	free := make([]models.Room, 0, len(candidates))
	for _, r := range candidates {
		if _, taken := booked[r.ID]; !taken {
			free = append(free, r)
		}
	}
	return free, nil
}
