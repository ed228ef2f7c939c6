package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"innkeeper-backend/config"
	"innkeeper-backend/models"
	"innkeeper-backend/utils"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

// chanNotifier records staff notifications for assertions.
type chanNotifier struct {
	messages chan string
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{messages: make(chan string, 8)}
}

func (n *chanNotifier) Notify(message string) error {
	n.messages <- message
	return nil
}

func (n *chanNotifier) wait(t *testing.T) string {
	t.Helper()
	select {
	case msg := <-n.messages:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
		return ""
	}
}

func newTestBookingService(t *testing.T, db *gorm.DB) (*BookingService, *chanNotifier) {
	t.Helper()
	log := zerolog.Nop()
	notifier := newChanNotifier()
	return NewBookingService(db, log, notifier, LogMailer{Log: log}, LogPaymentGateway{Log: log}), notifier
}

func createTestRoomType(t *testing.T, db *gorm.DB, name string, price float64, maxAdults, maxChildren int) *models.RoomType {
	t.Helper()
	rt := models.RoomType{
		Name:          name,
		PricePerNight: price,
		MaxAdults:     maxAdults,
		MaxChildren:   maxChildren,
		Status:        models.RoomTypeActive,
	}
	require.NoError(t, db.Create(&rt).Error)
	return &rt
}

func createTestRooms(t *testing.T, db *gorm.DB, roomTypeID uint, count int) []models.Room {
	t.Helper()
	rooms := make([]models.Room, 0, count)
	for i := 0; i < count; i++ {
		room := models.Room{
			RoomNumber:        fmt.Sprintf("%d%02d", roomTypeID, i+1),
			RoomTypeID:        roomTypeID,
			CleaningStatus:    models.CleaningClean,
			MaintenanceStatus: models.MaintenanceGood,
			OccupancyStatus:   models.OccupancyAvailable,
			IsActive:          true,
		}
		require.NoError(t, db.Create(&room).Error)
		rooms = append(rooms, room)
	}
	return rooms
}

func createTestClient(t *testing.T, db *gorm.DB, email string) *models.Client {
	t.Helper()
	client := models.Client{
		FullName: "Test Guest",
		Email:    email,
		Username: email,
		IsActive: true,
	}
	require.NoError(t, db.Create(&client).Error)
	return &client
}

func futureDate(daysAhead int) time.Time {
	return utils.Today().AddDate(0, 0, daysAhead)
}
