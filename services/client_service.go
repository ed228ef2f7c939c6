package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"innkeeper-backend/models"
	"innkeeper-backend/utils"
)

// ClientService manages guest accounts, including the lazy creation path
// used by staff-entered bookings.
type ClientService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewClientService(db *gorm.DB, log zerolog.Logger) *ClientService {
	return &ClientService{DB: db, Log: log}
}

// ClientData is the contact block staff enter on a manual booking.
type ClientData struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
}

func (s *ClientService) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := s.DB.First(&client, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("load client %d: %w", id, err)
	}
	return &client, nil
}

func (s *ClientService) GetByEmail(email string) (*models.Client, error) {
	var client models.Client
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, fmt.Errorf("load client by email: %w", err)
	}
	return &client, nil
}

// ResolveOrCreate finds the client for the given contact details or creates
// one with a random password and a username derived from the email address.
func (s *ClientService) ResolveOrCreate(data ClientData) (*models.Client, error) {
	email := strings.ToLower(strings.TrimSpace(data.Email))
	if email == "" {
		return nil, errors.New("client email is required")
	}

	existing, err := s.GetByEmail(email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrClientNotFound) {
		return nil, err
	}

	password, err := utils.RandomPassword(16)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	username := usernameFromEmail(email)
	var taken int64
	if err := s.DB.Model(&models.Client{}).Where("username = ?", username).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken > 0 {
		username = fmt.Sprintf("%s-%d", username, taken+1)
	}

	client := models.Client{
		FullName:     strings.TrimSpace(data.FullName),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(data.Phone),
		Country:      strings.TrimSpace(data.Country),
		IsActive:     true,
	}
	if err := s.DB.Create(&client).Error; err != nil {
		if isDuplicateErr(err) {
			// Lost a race with a concurrent creation for the same guest.
			return s.GetByEmail(email)
		}
		return nil, fmt.Errorf("create client: %w", err)
	}
	s.Log.Info().Uint("client_id", client.ID).Str("email", email).Msg("client created for staff booking")
	return &client, nil
}

// Register creates a guest account through the public sign-up flow.
func (s *ClientService) Register(fullName, email, username, password string) (*models.Client, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)
	if email == "" || username == "" || password == "" {
		return nil, errors.New("email, username and password are required")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	client := models.Client{
		FullName:     strings.TrimSpace(fullName),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := s.DB.Create(&client).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create client: %w", err)
	}
	return &client, nil
}

func usernameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
