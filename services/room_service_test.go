package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innkeeper-backend/models"
)

func strPtr(s string) *string { return &s }

func TestRoomStatusDirtyOnRelease(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, zerolog.Nop())

	rt := createTestRoomType(t, db, "Standard", 2500, 2, 1)
	room := createTestRooms(t, db, rt.ID, 1)[0]

	_, err := svc.UpdateStatus(room.ID, StatusUpdate{Occupancy: strPtr(models.OccupancyOccupied)})
	require.NoError(t, err)

	// Guest leaves: the room goes back to available and a clean room is
	// forced dirty for housekeeping.
	updated, err := svc.UpdateStatus(room.ID, StatusUpdate{Occupancy: strPtr(models.OccupancyAvailable)})
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyAvailable, updated.OccupancyStatus)
	assert.Equal(t, models.CleaningDirty, updated.CleaningStatus)

	// A room already dirty stays dirty, no double flip.
	updated, err = svc.UpdateStatus(room.ID, StatusUpdate{Occupancy: strPtr(models.OccupancyAvailable)})
	require.NoError(t, err)
	assert.Equal(t, models.CleaningDirty, updated.CleaningStatus)
}

func TestRoomStatusMaintenanceBlocksOccupancy(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, zerolog.Nop())

	rt := createTestRoomType(t, db, "Standard", 2500, 2, 1)
	room := createTestRooms(t, db, rt.ID, 1)[0]

	updated, err := svc.UpdateStatus(room.ID, StatusUpdate{Maintenance: strPtr(models.MaintenanceUnder)})
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyBlocked, updated.OccupancyStatus)

	// Even an explicit occupancy write cannot unblock a room under
	// maintenance.
	updated, err = svc.UpdateStatus(room.ID, StatusUpdate{Occupancy: strPtr(models.OccupancyAvailable)})
	require.NoError(t, err)
	assert.Equal(t, models.OccupancyBlocked, updated.OccupancyStatus)
}

func TestRoomStatusRejectsUnknownValues(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, zerolog.Nop())

	rt := createTestRoomType(t, db, "Standard", 2500, 2, 1)
	room := createTestRooms(t, db, rt.ID, 1)[0]

	_, err := svc.UpdateStatus(room.ID, StatusUpdate{Cleaning: strPtr("sparkling")})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(room.ID, StatusUpdate{Occupancy: strPtr("free")})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRoomCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, zerolog.Nop())

	rt := createTestRoomType(t, db, "Standard", 2500, 2, 1)

	created, err := svc.Create(models.Room{RoomNumber: "101", RoomTypeID: rt.ID})
	require.NoError(t, err)
	assert.Equal(t, models.CleaningClean, created.CleaningStatus)
	assert.Equal(t, models.OccupancyAvailable, created.OccupancyStatus)
	assert.True(t, created.IsActive)

	_, err = svc.Create(models.Room{RoomNumber: "101", RoomTypeID: rt.ID})
	assert.ErrorIs(t, err, ErrDuplicateRoomNumber)

	_, err = svc.Create(models.Room{RoomNumber: "102", RoomTypeID: 9999})
	assert.ErrorIs(t, err, ErrRoomTypeNotFound)

	_, err = svc.Create(models.Room{RoomNumber: "  ", RoomTypeID: rt.ID})
	assert.Error(t, err)
}

func TestRoomCreateRejectsUnknownStatuses(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, zerolog.Nop())

	rt := createTestRoomType(t, db, "Standard", 2500, 2, 1)

	// Explicit status values go through the same enum checks as UpdateStatus.
	_, err := svc.Create(models.Room{RoomNumber: "201", RoomTypeID: rt.ID, CleaningStatus: "sparkling"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Create(models.Room{RoomNumber: "201", RoomTypeID: rt.ID, MaintenanceStatus: "broken"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.Create(models.Room{RoomNumber: "201", RoomTypeID: rt.ID, OccupancyStatus: "free"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	var count int64
	db.Model(&models.Room{}).Count(&count)
	assert.EqualValues(t, 0, count)

	created, err := svc.Create(models.Room{
		RoomNumber:        "201",
		RoomTypeID:        rt.ID,
		CleaningStatus:    models.CleaningInspected,
		MaintenanceStatus: models.MaintenanceNeedsRepair,
		OccupancyStatus:   models.OccupancyBlocked,
	})
	require.NoError(t, err)
	assert.Equal(t, models.CleaningInspected, created.CleaningStatus)
	assert.Equal(t, models.MaintenanceNeedsRepair, created.MaintenanceStatus)
	assert.Equal(t, models.OccupancyBlocked, created.OccupancyStatus)
}

func TestRoomRetireBlockedWhileBooked(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRoomService(db, zerolog.Nop())
	bookings, _ := newTestBookingService(t, db)

	rt := createTestRoomType(t, db, "Standard", 2500, 2, 1)
	room := createTestRooms(t, db, rt.ID, 1)[0]
	client := createTestClient(t, db, "guest@example.com")

	booking, _, err := bookings.Create(client.ID, BookingInput{
		RoomTypeID:  rt.ID,
		CheckIn:     futureDate(10),
		CheckOut:    futureDate(12),
		Adults:      1,
		RoomsBooked: 1,
	}, BookingOptions{})
	require.NoError(t, err)

	err = svc.Retire(room.ID)
	assert.ErrorIs(t, err, ErrRoomInUse)

	_, err = bookings.Cancel(booking.ID, client.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Retire(room.ID))
	retired, err := svc.GetByID(room.ID)
	require.NoError(t, err)
	assert.False(t, retired.IsActive)
}
