package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"innkeeper-backend/config"
	"innkeeper-backend/controllers"
	"innkeeper-backend/routes"
	"innkeeper-backend/services"
	"innkeeper-backend/utils"
)

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(utils.EnvOrDefault("LOG_LEVEL", "info"))); err == nil {
		level = parsed
	}
	var out = zerolog.New(os.Stdout)
	if strings.ToLower(utils.EnvOrDefault("LOG_FORMAT", "json")) == "console" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}
	return out.Level(level).With().Timestamp().Str("app", "innkeeper-backend").Logger()
}

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	log := newLogger()

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		log.Fatal().Msg("JWT_SECRET environment variable is not set")
	}

	db, err := config.ConnectDatabase()
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	log.Info().Msg("database connection established, migrations applied")

	// External collaborators default to log-only implementations; swap in
	// real senders here when the integrations are configured.
	notifier := services.LogNotifier{Log: log}
	mailer := services.LogMailer{Log: log}
	payments := services.LogPaymentGateway{Log: log}

	availabilityService := services.NewAvailabilityService(db, log)
	clientService := services.NewClientService(db, log)
	bookingService := services.NewBookingService(db, log, notifier, mailer, payments)
	roomService := services.NewRoomService(db, log)
	roomTypeService := services.NewRoomTypeService(db)
	authService := services.NewAuthService(db, jwtSecret, 24*time.Hour)

	availabilityController := controllers.NewAvailabilityController(availabilityService)
	bookingController := controllers.NewBookingController(bookingService, clientService)
	roomController := controllers.NewRoomController(roomService)
	roomTypeController := controllers.NewRoomTypeController(roomTypeService)
	authController := controllers.NewAuthController(authService, clientService)

	router := routes.SetupRouter(
		log, jwtSecret,
		availabilityController,
		bookingController,
		roomController,
		roomTypeController,
		authController,
	)

	addr := ":" + utils.EnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen and serve")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}
