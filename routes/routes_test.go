package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"innkeeper-backend/config"
	"innkeeper-backend/controllers"
	"innkeeper-backend/models"
	"innkeeper-backend/services"
	"innkeeper-backend/utils"
)

const testSecret = "test-secret"

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
	client *models.Client
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, config.Migrate(db))

	log := zerolog.Nop()
	availability := services.NewAvailabilityService(db, log)
	clients := services.NewClientService(db, log)
	bookings := services.NewBookingService(db, log,
		services.LogNotifier{Log: log}, services.LogMailer{Log: log}, services.LogPaymentGateway{Log: log})
	rooms := services.NewRoomService(db, log)
	roomTypes := services.NewRoomTypeService(db)
	auth := services.NewAuthService(db, testSecret, time.Hour)

	router := SetupRouter(
		log, testSecret,
		controllers.NewAvailabilityController(availability),
		controllers.NewBookingController(bookings, clients),
		controllers.NewRoomController(rooms),
		controllers.NewRoomTypeController(roomTypes),
		controllers.NewAuthController(auth, clients),
	)

	client := models.Client{FullName: "Guest", Email: "guest@example.com", Username: "guest", IsActive: true}
	require.NoError(t, db.Create(&client).Error)

	return &testEnv{db: db, router: router, client: &client}
}

func (e *testEnv) seedInventory(t *testing.T, rooms int) *models.RoomType {
	t.Helper()
	rt := models.RoomType{Name: "Deluxe", PricePerNight: 5000, MaxAdults: 4, MaxChildren: 2, Status: models.RoomTypeActive}
	require.NoError(t, e.db.Create(&rt).Error)
	for i := 0; i < rooms; i++ {
		room := models.Room{
			RoomNumber:        fmt.Sprintf("5%02d", i+1),
			RoomTypeID:        rt.ID,
			CleaningStatus:    models.CleaningClean,
			MaintenanceStatus: models.MaintenanceGood,
			OccupancyStatus:   models.OccupancyAvailable,
			IsActive:          true,
		}
		require.NoError(t, e.db.Create(&room).Error)
	}
	return &rt
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func guestToken(t *testing.T, clientID uint) string {
	t.Helper()
	token, err := utils.IssueToken(testSecret, clientID, utils.RoleGuest, time.Hour)
	require.NoError(t, err)
	return token
}

func staffToken(t *testing.T) string {
	t.Helper()
	token, err := utils.IssueToken(testSecret, 1, utils.RoleStaff, time.Hour)
	require.NoError(t, err)
	return token
}

func futureDay(days int) string {
	return utils.Today().AddDate(0, 0, days).Format("2006-01-02")
}

func TestAvailabilityEndpoint(t *testing.T) {
	env := newTestEnv(t)
	rt := env.seedInventory(t, 3)

	rec := env.do(t, http.MethodPost, "/api/availability", "", gin.H{
		"roomTypeId":  rt.ID,
		"checkIn":     futureDay(30),
		"checkOut":    futureDay(32),
		"roomsNeeded": 2,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeJSON(t, rec)
	assert.Equal(t, true, body["available"])
	assert.EqualValues(t, 3, body["availableRooms"])
	assert.EqualValues(t, 2, body["nights"])
	assert.EqualValues(t, 20000, body["totalPrice"])
}

func TestAvailabilityValidation(t *testing.T) {
	env := newTestEnv(t)
	rt := env.seedInventory(t, 1)

	rec := env.do(t, http.MethodPost, "/api/availability", "", gin.H{
		"roomTypeId":  rt.ID,
		"checkIn":     futureDay(5),
		"checkOut":    futureDay(3),
		"roomsNeeded": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/availability", "", gin.H{
		"roomTypeId":  9999,
		"checkIn":     futureDay(3),
		"checkOut":    futureDay(5),
		"roomsNeeded": 1,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBookingFlowOverHTTP(t *testing.T) {
	env := newTestEnv(t)
	rt := env.seedInventory(t, 2)
	guest := guestToken(t, env.client.ID)
	staff := staffToken(t)

	// Unauthenticated booking attempts are rejected.
	rec := env.do(t, http.MethodPost, "/api/bookings", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Staff tokens cannot use the guest endpoint.
	rec = env.do(t, http.MethodPost, "/api/bookings", staff, gin.H{})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	payload := gin.H{
		"roomTypeId":  rt.ID,
		"checkIn":     futureDay(30),
		"checkOut":    futureDay(32),
		"adults":      2,
		"roomsBooked": 2,
	}
	rec = env.do(t, http.MethodPost, "/api/bookings", guest, payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeJSON(t, rec)
	booking := body["booking"].(map[string]interface{})
	bookingID := uint(booking["id"].(float64))
	assert.Equal(t, "confirmed", booking["status"])
	assert.EqualValues(t, 20000, booking["totalPrice"])

	// All rooms taken now.
	rec = env.do(t, http.MethodPost, "/api/bookings", guest, payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Deleting a confirmed booking is refused.
	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), staff, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The guest cancels, then staff can delete.
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/cancel", bookingID), guest, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", bookingID), staff, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestManualBookingEndpoint(t *testing.T) {
	env := newTestEnv(t)
	rt := env.seedInventory(t, 1)
	staff := staffToken(t)

	rec := env.do(t, http.MethodPost, "/api/bookings/manual", staff, gin.H{
		"roomTypeId":  rt.ID,
		"checkIn":     futureDay(10),
		"checkOut":    futureDay(11),
		"adults":      1,
		"roomsBooked": 1,
		"clientData": gin.H{
			"fullName": "Walk-in Guest",
			"email":    "walkin@example.com",
			"phone":    "123456",
			"country":  "TH",
		},
		"paymentMethod": "cash",
		"paymentStatus": "paid",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeJSON(t, rec)
	booking := body["booking"].(map[string]interface{})
	ref := booking["referenceCode"].(string)
	assert.Equal(t, "RB", ref[:2])
	assert.Equal(t, "paid", booking["paymentStatus"])

	var client models.Client
	require.NoError(t, env.db.Where("email = ?", "walkin@example.com").First(&client).Error)
	assert.NotEmpty(t, client.PasswordHash)
}

func TestStatusUpdateEndpoint(t *testing.T) {
	env := newTestEnv(t)
	rt := env.seedInventory(t, 1)
	guest := guestToken(t, env.client.ID)
	staff := staffToken(t)

	rec := env.do(t, http.MethodPost, "/api/bookings", guest, gin.H{
		"roomTypeId":  rt.ID,
		"checkIn":     futureDay(10),
		"checkOut":    futureDay(12),
		"adults":      1,
		"roomsBooked": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	booking := decodeJSON(t, rec)["booking"].(map[string]interface{})
	id := uint(booking["id"].(float64))

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/status", id), staff, gin.H{
		"status": "checked-in",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Illegal jump back.
	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/status", id), staff, gin.H{
		"status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, fmt.Sprintf("/api/bookings/%d/status", id), staff, gin.H{
		"paymentStatus": "paid",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decodeJSON(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, "paid", updated["paymentStatus"])
	assert.NotNil(t, updated["paidAt"])
}
