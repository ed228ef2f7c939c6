package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"innkeeper-backend/models"
	"innkeeper-backend/utils"
)

// AuthService is thin glue around token issuance: credential check plus a
// signed JWT. Everything else about identity lives with the external auth
// provider in production.
type AuthService struct {
	DB        *gorm.DB
	JWTSecret string
	TokenTTL  time.Duration
}

func NewAuthService(db *gorm.DB, secret string, ttl time.Duration) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{DB: db, JWTSecret: secret, TokenTTL: ttl}
}

// StaffLogin authenticates an admin and returns a staff-role token.
func (s *AuthService) StaffLogin(username, password string) (string, *models.Admin, error) {
	var admin models.Admin
	err := s.DB.Where("username = ?", strings.TrimSpace(username)).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, fmt.Errorf("load admin: %w", err)
	}
	if !utils.CheckPassword(admin.PasswordHash, password) {
		return "", nil, ErrBadCredentials
	}
	token, err := utils.IssueToken(s.JWTSecret, admin.ID, utils.RoleStaff, s.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &admin, nil
}

// ClientLogin authenticates a guest by username or email.
func (s *AuthService) ClientLogin(login, password string) (string, *models.Client, error) {
	login = strings.TrimSpace(login)
	var client models.Client
	err := s.DB.Where("username = ? OR email = ?", login, strings.ToLower(login)).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, fmt.Errorf("load client: %w", err)
	}
	if !client.IsActive || !utils.CheckPassword(client.PasswordHash, password) {
		return "", nil, ErrBadCredentials
	}
	token, err := utils.IssueToken(s.JWTSecret, client.ID, utils.RoleGuest, s.TokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}
	return token, &client, nil
}
