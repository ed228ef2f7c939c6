package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"innkeeper-backend/controllers"
	"innkeeper-backend/middleware"
	"innkeeper-backend/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		if origin := strings.TrimSpace(part); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the HTTP surface: public availability and auth, guest
// booking routes, and staff-only administration routes.
func SetupRouter(
	log zerolog.Logger,
	jwtSecret string,
	ac *controllers.AvailabilityController,
	bc *controllers.BookingController,
	rc *controllers.RoomController,
	rtc *controllers.RoomTypeController,
	authc *controllers.AuthController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	middleware.RegisterMetrics()
	r.Use(middleware.Metrics())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	guestAuth := middleware.RequireAuth(jwtSecret, utils.RoleGuest)
	staffAuth := middleware.RequireAuth(jwtSecret, utils.RoleStaff)

	api := r.Group("/api")
	{
		api.POST("/availability", ac.CheckAvailability)

		auth := api.Group("/auth")
		{
			auth.POST("/login", authc.StaffLogin)
			auth.POST("/register", authc.Register)
			auth.POST("/client/login", authc.ClientLogin)
		}

		bookings := api.Group("/bookings")
		{
			bookings.POST("", guestAuth, bc.CreateBooking)
			bookings.PUT("/:id/cancel", guestAuth, bc.CancelBooking)

			bookings.POST("/manual", staffAuth, bc.CreateManualBooking)
			bookings.GET("", staffAuth, bc.GetBookings)
			bookings.GET("/:id", staffAuth, bc.GetBookingByID)
			bookings.PUT("/:id/status", staffAuth, bc.UpdateStatus)
			bookings.DELETE("/:id", staffAuth, bc.DeleteBooking)
		}

		rooms := api.Group("/rooms", staffAuth)
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoomByID)
			rooms.POST("", rc.CreateRoom)
			rooms.PUT("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id", rc.UpdateRoom)
			rooms.PATCH("/:id/status", rc.UpdateRoomStatus)
			rooms.DELETE("/:id", rc.DeleteRoom)
		}

		roomTypes := api.Group("/room-types")
		{
			// Listing is public so the guest client can show categories.
			roomTypes.GET("", rtc.GetRoomTypes)
			roomTypes.GET("/:id", rtc.GetRoomTypeByID)

			roomTypes.POST("", staffAuth, rtc.CreateRoomType)
			roomTypes.PUT("/:id", staffAuth, rtc.UpdateRoomType)
			roomTypes.DELETE("/:id", staffAuth, rtc.DeleteRoomType)
		}
	}

	return r
}
