package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"innkeeper-backend/models"
)

// RoomTypeService manages the bookable categories. Room types are only ever
// soft-deleted so bookings keep a valid reference; there is no cascade.
type RoomTypeService struct {
	DB *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) *RoomTypeService {
	return &RoomTypeService{DB: db}
}

func (s *RoomTypeService) Create(rt models.RoomType) (*models.RoomType, error) {
	rt.Name = strings.TrimSpace(rt.Name)
	if rt.Name == "" {
		return nil, errors.New("room type name is required")
	}
	if rt.PricePerNight < 0 {
		return nil, errors.New("price per night cannot be negative")
	}
	if rt.Status == "" {
		rt.Status = models.RoomTypeActive
	}
	if rt.Status != models.RoomTypeActive && rt.Status != models.RoomTypeInactive {
		return nil, ErrInvalidStatus
	}
	if err := s.DB.Create(&rt).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateRoomType
		}
		return nil, fmt.Errorf("create room type: %w", err)
	}
	return &rt, nil
}

func (s *RoomTypeService) GetAll() ([]models.RoomType, error) {
	var list []models.RoomType
	if err := s.DB.Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return list, nil
}

func (s *RoomTypeService) GetByID(id uint) (*models.RoomType, error) {
	var rt models.RoomType
	if err := s.DB.First(&rt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomTypeNotFound
		}
		return nil, fmt.Errorf("load room type %d: %w", id, err)
	}
	return &rt, nil
}

func (s *RoomTypeService) Update(id uint, fields map[string]interface{}) (*models.RoomType, error) {
	rt, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	allowed := map[string]bool{
		"name": true, "description": true, "price_per_night": true,
		"max_adults": true, "max_children": true, "status": true, "facilities": true,
	}
	updates := map[string]interface{}{}
	for k, v := range fields {
		if allowed[k] {
			updates[k] = v
		}
	}
	if st, ok := updates["status"].(string); ok {
		if st != models.RoomTypeActive && st != models.RoomTypeInactive {
			return nil, ErrInvalidStatus
		}
	}
	if len(updates) == 0 {
		return rt, nil
	}

	if err := s.DB.Model(rt).Updates(updates).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateRoomType
		}
		return nil, fmt.Errorf("update room type %d: %w", id, err)
	}
	return s.GetByID(id)
}

func (s *RoomTypeService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.DB.Delete(&models.RoomType{}, id).Error; err != nil {
		return fmt.Errorf("delete room type %d: %w", id, err)
	}
	return nil
}
