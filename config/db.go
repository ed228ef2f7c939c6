package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"innkeeper-backend/models"
	"innkeeper-backend/utils"
)

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := utils.EnvOrDefault("DB_USER", "root")
	pass := utils.EnvOrDefault("DB_PASS", "")
	host := utils.EnvOrDefault("DB_HOST", "127.0.0.1")
	port := utils.EnvOrDefault("DB_PORT", "3306")
	dbName := utils.EnvOrDefault("DB_NAME", "innkeeper_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// ConnectDatabase opens the MySQL connection, runs migrations and seeds the
// baseline records. The handle is returned for explicit injection; there is
// no package-level DB singleton.
func ConnectDatabase() (*gorm.DB, error) {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return nil, err
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs AutoMigrate in parent-before-child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Admin{},
		&models.Client{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.BookingRoom{},
	)
}

// Seed creates a default admin and the starter room types on an empty
// database; it is a no-op otherwise.
func Seed(db *gorm.DB) error {
	var adminCount int64
	db.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := utils.HashPassword(utils.EnvOrDefault("ADMIN_PASSWORD", "admin123"))
		if err != nil {
			return fmt.Errorf("hash default admin password: %w", err)
		}
		admin := models.Admin{
			FullName:     "Admin User",
			Username:     "admin@hotel.local",
			PasswordHash: hash,
			Role:         "owner",
		}
		if err := db.Create(&admin).Error; err != nil {
			return fmt.Errorf("seed default admin: %w", err)
		}
	}

	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard Room", PricePerNight: 2500, MaxAdults: 2, MaxChildren: 1, Status: models.RoomTypeActive},
			{Name: "Superior", Description: "Superior Room", PricePerNight: 3500, MaxAdults: 3, MaxChildren: 2, Status: models.RoomTypeActive},
			{Name: "Deluxe", Description: "Deluxe Room", PricePerNight: 5000, MaxAdults: 4, MaxChildren: 2, Status: models.RoomTypeActive},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			return fmt.Errorf("seed room types: %w", err)
		}
	}

	return nil
}
